package cli

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/promptguard/internal/assess"
	"github.com/alexanderramin/promptguard/internal/audit"
	"github.com/alexanderramin/promptguard/internal/guard"
	"github.com/alexanderramin/promptguard/internal/llm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Source tags recorded with each verdict, by calling surface.
const (
	SourceMCP = "mcp"
	SourceCLI = "cli"
)

var errNotConfigured = errors.New("promptguard is not configured")

// Assessor is the assessment surface used by the commands.
type Assessor interface {
	Assess(ctx context.Context, req assess.Request, override guard.Config) (*assess.Report, error)
	AssessConversation(ctx context.Context, req assess.ConversationRequest, override guard.Config) (*assess.Report, error)
}

// App holds the dependencies CLI commands run against. Configure, when
// set, runs before any command with the --config path and is expected
// to populate the remaining fields.
type App struct {
	Configure func(configPath string) error

	NewAssessor func(source string) Assessor
	Ledger      audit.Reader
	Pinger      llm.Pinger
	Defaults    guard.Config
	Logger      zerolog.Logger
	Version     string

	IsInteractive    func() bool
	IsTerminalOutput func() bool
	PromptOperation  func() (string, error)
	Now              func() time.Time
}

func (app *App) assessor(source string) (Assessor, error) {
	if app.NewAssessor == nil {
		return nil, errNotConfigured
	}
	return app.NewAssessor(source), nil
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

func (app *App) terminalOutput() bool {
	return app.IsTerminalOutput != nil && app.IsTerminalOutput()
}

func (app *App) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "promptguard" command and registers
// all subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "promptguard",
		Short:         "Risk gate for AI agent operations backed by Llama Guard",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Configure == nil {
				return nil
			}
			return app.Configure(configPath)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default $GUARD_CONFIG)")

	root.AddCommand(
		newServeCmd(app),
		newCheckCmd(app),
		newConversationCmd(app),
		newAuditCmd(app),
		newPingCmd(app),
	)

	return root
}
