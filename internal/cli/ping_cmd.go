package cli

import (
	"fmt"

	"github.com/alexanderramin/promptguard/internal/cli/formatter"
	"github.com/alexanderramin/promptguard/internal/llm"
	"github.com/spf13/cobra"
)

func newPingCmd(app *App) *cobra.Command {
	var endpoint string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the Ollama backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Pinger == nil {
				return errNotConfigured
			}
			if endpoint == "" {
				endpoint = app.Defaults.Endpoint
			}

			out := cmd.OutOrStdout()
			if !app.Pinger.Available(cmd.Context(), endpoint) {
				fmt.Fprintf(out, "%s %s\n", formatter.StyleRed.Render("✗"), endpoint)
				return fmt.Errorf("%w at %s", llm.ErrOllamaUnavailable, endpoint)
			}
			fmt.Fprintf(out, "%s %s %s\n",
				formatter.StyleGreen.Render("✓"), endpoint, formatter.Dim("model "+app.Defaults.Model))
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Ollama base URL to probe")

	return cmd
}
