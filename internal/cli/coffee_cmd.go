package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/roastery/internal/cli/formatter"
	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/alexanderramin/roastery/internal/service"
)

func newCoffeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "coffee",
		Aliases: []string{"coffees"},
		Short:   "Browse, describe and remove coffees",
	}

	cmd.AddCommand(
		newCoffeeListCmd(app),
		newCoffeeShowCmd(app),
		newCoffeeDeleteCmd(app),
		newCoffeeGenerateCmd(app),
	)
	return cmd
}

func newCoffeeListCmd(app *App) *cobra.Command {
	var (
		filter  domain.CoffeeFilter
		region  string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List coffees",
		RunE: func(cmd *cobra.Command, args []string) error {
			if region != "" {
				id, err := resolveRegionID(cmd.Context(), app, region)
				if err != nil {
					return err
				}
				filter.RegionID = id
			}

			coffees, err := app.Coffees.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, coffees)
			}
			if len(coffees) == 0 {
				fmt.Fprintln(out, formatter.Dim("No coffees found."))
				return nil
			}
			fmt.Fprint(out, formatter.FormatCoffeeList(coffees))
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "Only coffees from this region (ID or prefix)")
	cmd.Flags().StringVar(&filter.RoastLevel, "roast", "", "Only coffees with this roast level")
	cmd.Flags().StringVar(&filter.FlavorNoteID, "flavor", "", "Only coffees with this flavor note ID")
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "Search name and description")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print as JSON")
	return cmd
}

func newCoffeeShowCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <slug|id>",
		Short: "Show a coffee with its regions, flavors and brew methods",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveCoffee(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCoffeeDetail(d))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print as JSON")
	return cmd
}

func newCoffeeDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <slug|id>",
		Aliases: []string{"rm"},
		Short:   "Delete a coffee and its stored image",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveCoffee(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			ok, err := confirm(app, fmt.Sprintf("Delete %s?", d.Name), yes)
			if err != nil || !ok {
				return err
			}
			if err := app.Coffees.Delete(cmd.Context(), d.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted coffee %s\n", d.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newCoffeeGenerateCmd(app *App) *cobra.Command {
	var (
		field   string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "generate <slug|id>",
		Short: "Draft descriptions or flavor categories for a coffee",
		Long: `Draft catalog copy for a stored coffee with the LLM. Nothing is saved;
the draft is printed for review. Flavor categories are limited to the
existing taxonomy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Content == nil {
				return errors.New("content generation is not configured")
			}
			d, err := resolveCoffee(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			stop := func() {}
			if app.interactive() && !jsonOut {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Drafting copy for "+d.Name)
			}
			draft, err := app.Content.Generate(cmd.Context(), service.GenerateContentInput{
				CoffeeID:    d.ID,
				TargetField: service.ContentTarget(field),
			})
			stop()
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), draft)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGeneratedContent(draft))
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "Only fill short_description, description or flavor_categories")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the draft as JSON")
	return cmd
}
