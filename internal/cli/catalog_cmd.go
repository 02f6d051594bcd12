package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/roastery/internal/cli/formatter"
	"github.com/alexanderramin/roastery/internal/service"
)

// optional returns nil for an unset flag so the field stays NULL.
func optional(cmd *cobra.Command, flag, value string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &value
}

func newRegionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "region",
		Aliases: []string{"regions"},
		Short:   "Manage growing regions",
	}
	cmd.AddCommand(
		newRegionListCmd(app),
		newRegionAddCmd(app),
		newRegionDeleteCmd(app),
	)
	return cmd
}

func newRegionListCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List regions",
		RunE: func(cmd *cobra.Command, args []string) error {
			regions, err := app.Regions.List(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), regions)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRegionList(regions))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print as JSON")
	return cmd
}

func newRegionAddCmd(app *App) *cobra.Command {
	var (
		in       service.RegionInput
		lat, lng float64
		desc     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a region",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("lat") {
				in.Latitude = &lat
			}
			if cmd.Flags().Changed("lng") {
				in.Longitude = &lng
			}
			in.Description = optional(cmd, "description", desc)

			r, err := app.Regions.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created region %s [%s]\n", r.DisplayName(), formatter.TruncID(r.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Country, "country", "", "Country")
	cmd.Flags().StringVar(&in.RegionName, "name", "", "Region name")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude")
	cmd.Flags().StringVar(&desc, "description", "", "Description")
	_ = cmd.MarkFlagRequired("country")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newRegionDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a region",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveRegionID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			r, err := app.Regions.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			ok, err := confirm(app, fmt.Sprintf("Delete region %s?", r.DisplayName()), yes)
			if err != nil || !ok {
				return err
			}
			if err := app.Regions.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted region %s\n", r.DisplayName())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newBrewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brew",
		Short: "Manage brew methods",
	}
	cmd.AddCommand(newBrewListCmd(app), newBrewAddCmd(app))
	return cmd
}

func newBrewListCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List brew methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			methods, err := app.BrewMethods.List(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), methods)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBrewMethodList(methods))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print as JSON")
	return cmd
}

func newBrewAddCmd(app *App) *cobra.Command {
	var in service.BrewMethodInput

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a brew method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			m, err := app.BrewMethods.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created brew method %s (%s)\n", m.Name, m.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Slug, "slug", "", "Slug (derived from the name when empty)")
	return cmd
}

func newRoastCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roast",
		Short: "Manage roast levels",
	}
	cmd.AddCommand(newRoastListCmd(app), newRoastAddCmd(app))
	return cmd
}

func newRoastListCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List roast levels, lightest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			levels, err := app.RoastLevels.List(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), levels)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoastLevelList(levels))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print as JSON")
	return cmd
}

func newRoastAddCmd(app *App) *cobra.Command {
	var (
		in   service.RoastLevelInput
		desc string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a roast level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			in.Description = optional(cmd, "description", desc)
			l, err := app.RoastLevels.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created roast level %s (%s)\n", l.Name, l.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Slug, "slug", "", "Slug (derived from the name when empty)")
	cmd.Flags().IntVar(&in.SortOrder, "order", 0, "Sort position, lightest first")
	cmd.Flags().StringVar(&desc, "description", "", "Description")
	return cmd
}
