package cli

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/roastery/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Import      service.ImportService
	Coffees     service.CoffeeService
	Regions     service.RegionService
	BrewMethods service.BrewMethodService
	RoastLevels service.RoastLevelService
	Flavors     service.FlavorService
	Images      service.ImageService
	Chat        service.ChatService
	Content     service.ContentService

	// Handler is the HTTP API mounted by "roastery serve".
	Handler  http.Handler
	HTTPAddr string
	Log      logrus.FieldLogger

	// IsInteractive reports whether stdin is a terminal. Progress views and
	// confirmation prompts only run when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() logrus.FieldLogger {
	if a.Log == nil {
		return logrus.StandardLogger()
	}
	return a.Log
}

// NewRootCmd creates the top-level "roastery" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "roastery",
		Short:         "Coffee catalog back office",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newImportCmd(app),
		newWheelCmd(app),
		newCoffeeCmd(app),
		newRegionCmd(app),
		newBrewCmd(app),
		newRoastCmd(app),
		newFlavorCmd(app),
		newChatCmd(app),
	)

	return root
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
