package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/promptguard/internal/audit"
	"github.com/alexanderramin/promptguard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

var errAuditDisabled = errors.New("audit ledger is disabled; set audit.path or GUARD_AUDIT_DB")

func newAuditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect recorded verdicts",
	}

	cmd.AddCommand(
		newAuditListCmd(app),
		newAuditStatsCmd(app),
	)

	return cmd
}

func newAuditListCmd(app *App) *cobra.Command {
	var (
		limit int
		risk  riskFlag
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent verdicts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Ledger == nil {
				return errAuditDisabled
			}
			entries, err := app.Ledger.ListRecent(cmd.Context(), audit.Filter{
				Limit: limit,
				Risk:  risk.risk,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEntries(entries, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of verdicts to show")
	cmd.Flags().Var(&risk, "risk", "Only show verdicts of this tier (low|medium|high)")

	return cmd
}

func newAuditStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count recorded verdicts per risk tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Ledger == nil {
				return errAuditDisabled
			}
			counts, err := app.Ledger.CountByRisk(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStats(counts))
			return nil
		},
	}
}
