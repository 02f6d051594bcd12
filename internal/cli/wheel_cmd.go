package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/roastery/internal/cli/formatter"
	"github.com/alexanderramin/roastery/internal/flavorwheel"
	"github.com/alexanderramin/roastery/internal/service"
)

func newWheelCmd(app *App) *cobra.Command {
	var (
		names, ids []string
		coffee     string
		topLabels  bool
		layout     bool
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "wheel",
		Short: "Show the flavor wheel, optionally highlighting a flavor profile",
		Example: `  roastery wheel --highlight Cherry --highlight Almond
  roastery wheel --coffee kenia-aa --json --layout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.WheelRequest{
				Highlight:           flavorwheel.Highlight{Names: names, IDs: ids},
				AlwaysShowTopLabels: topLabels,
				Layout:              layout,
			}
			if coffee != "" {
				d, err := resolveCoffee(cmd.Context(), app, coffee)
				if err != nil {
					return err
				}
				req.CoffeeID = d.ID
			}

			res, err := app.Flavors.Wheel(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, res)
			}
			emphasize := coffee != "" || !req.Highlight.Empty()
			fmt.Fprint(out, formatter.RenderWheel(res.Tree, emphasize))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&names, "highlight", nil, "Flavor name to highlight (repeatable)")
	cmd.Flags().StringArrayVar(&ids, "highlight-id", nil, "Flavor category or note ID to highlight (repeatable)")
	cmd.Flags().StringVar(&coffee, "coffee", "", "Highlight the flavor notes of this coffee (slug or ID)")
	cmd.Flags().BoolVar(&topLabels, "top-labels", false, "Keep every top-level label visible")
	cmd.Flags().BoolVar(&layout, "layout", false, "Include arc geometry in JSON output")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the annotated tree as JSON")
	return cmd
}
