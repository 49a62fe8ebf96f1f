package cli

import (
	"context"
	"errors"

	"github.com/alexanderramin/promptguard/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assessor, err := app.assessor(SourceMCP)
			if err != nil {
				return err
			}

			srv := mcp.NewServer(assessor, app.Version, app.Logger)
			err = srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			if errors.Is(err, context.Canceled) {
				// Interrupted by a signal.
				return nil
			}
			return err
		},
	}
}
