package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/roastery/internal/cli/formatter"
	"github.com/alexanderramin/roastery/internal/service"
)

func newChatCmd(app *App) *cobra.Command {
	var (
		mode, locale string
		prefs        service.ChatPreferences
		jsonOut      bool
	)

	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the coffee assistant for a recommendation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Chat == nil {
				return errors.New("chat is not configured")
			}
			req := service.ChatRequest{
				Message:  strings.Join(args, " "),
				Locale:   locale,
				ChatMode: service.ChatMode(mode),
			}
			if prefs != (service.ChatPreferences{}) {
				req.Preferences = &prefs
			}

			out := cmd.OutOrStdout()
			stop := func() {}
			if app.interactive() && !jsonOut {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Brewing an answer")
			}
			resp, err := app.Chat.Chat(cmd.Context(), req)
			stop()
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(out, resp)
			}
			fmt.Fprint(out, formatter.FormatChatResponse(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(service.ChatModeEasy), "Conversation style: easy or advanced")
	cmd.Flags().StringVar(&locale, "locale", "de", "Answer language: de or en")
	cmd.Flags().StringVar(&prefs.RegionID, "region", "", "Preferred region ID")
	cmd.Flags().StringVar(&prefs.RoastLevel, "roast", "", "Preferred roast level")
	cmd.Flags().StringVar(&prefs.BrewMethodID, "brew", "", "Preferred brew method ID")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the raw response as JSON")
	return cmd
}
