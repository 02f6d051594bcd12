package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/roastery/internal/cli/formatter"
	"github.com/alexanderramin/roastery/internal/service"
	"github.com/alexanderramin/roastery/internal/taxonomy"
)

func newFlavorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flavor",
		Short: "Manage the flavor taxonomy",
	}

	category := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage flavor categories",
	}
	category.AddCommand(
		newFlavorCategoryListCmd(app),
		newFlavorCategoryAddCmd(app),
		newFlavorCategoryDeleteCmd(app),
	)

	note := &cobra.Command{
		Use:   "note",
		Short: "Manage flavor notes",
	}
	note.AddCommand(newFlavorNoteAddCmd(app))

	cmd.AddCommand(category, note, newFlavorSeedCmd(app))
	return cmd
}

func newFlavorCategoryListCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List flavor categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := app.Flavors.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), categories)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCategoryList(categories))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print as JSON")
	return cmd
}

func newFlavorCategoryAddCmd(app *App) *cobra.Command {
	var (
		in            service.FlavorCategoryInput
		parent, color string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a flavor category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			in.ColorHex = optional(cmd, "color", color)
			if parent != "" {
				id, err := resolveCategoryID(cmd.Context(), app, parent)
				if err != nil {
					return err
				}
				in.ParentID = &id
			}

			c, err := app.Flavors.CreateCategory(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created level %d category %s [%s]\n", c.Level, c.Name, formatter.TruncID(c.ID))
			return nil
		},
	}

	cmd.Flags().IntVar(&in.Level, "level", 1, "Ring of the wheel, 1 (inner) to 3 (outer)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent category (name, ID or prefix)")
	cmd.Flags().StringVar(&color, "color", "", "Hex color, e.g. #DA1D23")
	return cmd
}

func newFlavorCategoryDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <category>",
		Aliases: []string{"rm"},
		Short:   "Delete a flavor category",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveCategoryID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Flavors.GetCategory(cmd.Context(), id)
			if err != nil {
				return err
			}
			ok, err := confirm(app, fmt.Sprintf("Delete category %s?", c.Name), yes)
			if err != nil || !ok {
				return err
			}
			if err := app.Flavors.DeleteCategory(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", c.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newFlavorNoteAddCmd(app *App) *cobra.Command {
	var (
		in                    service.FlavorNoteInput
		category, color, desc string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a flavor note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			in.ColorHex = optional(cmd, "color", color)
			in.Description = optional(cmd, "description", desc)
			if category != "" {
				id, err := resolveCategoryID(cmd.Context(), app, category)
				if err != nil {
					return err
				}
				in.CategoryID = &id
			}

			n, err := app.Flavors.CreateNote(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created flavor note %s [%s]\n", n.Name, formatter.TruncID(n.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category (name, ID or prefix)")
	cmd.Flags().StringVar(&color, "color", "", "Hex color")
	cmd.Flags().StringVar(&desc, "description", "", "Description")
	return cmd
}

func newFlavorSeedCmd(app *App) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "seed [file.toml]",
		Short: "Load a flavor taxonomy, the built-in SCA wheel by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := taxonomy.DefaultSeed()
			if len(args) == 1 {
				var err error
				if seed, err = taxonomy.LoadSeed(args[0]); err != nil {
					return err
				}
			}
			if replace && app.interactive() {
				ok, err := confirm(app, "Replace the existing flavor taxonomy?", false)
				if err != nil || !ok {
					return err
				}
			}

			res, err := app.Flavors.Seed(cmd.Context(), seed, replace)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d categories and %d notes\n", res.Categories, res.Notes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing taxonomy")
	return cmd
}
