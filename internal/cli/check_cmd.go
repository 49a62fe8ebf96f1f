package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/promptguard/internal/assess"
	"github.com/spf13/cobra"
)

func newCheckCmd(app *App) *cobra.Command {
	var (
		contextJSON string
		files       []string
		command     string
		flags       verdictFlags
	)

	cmd := &cobra.Command{
		Use:   "check [operation...]",
		Short: "Assess the risk of a proposed operation",
		Long: `Assess the risk of a proposed operation.

With no arguments the operation is prompted for on a terminal, or read
from stdin otherwise.`,
		Example: `  promptguard check "delete .cursorrules"
  promptguard check --file src/main.go "rewrite the entry point"
  echo "rm -rf build" | promptguard check --command "rm -rf build" --fail-on high`,
		RunE: func(cmd *cobra.Command, args []string) error {
			assessor, err := app.assessor(SourceCLI)
			if err != nil {
				return err
			}

			opContext, err := buildContext(contextJSON, files, command)
			if err != nil {
				return err
			}

			operation, err := readOperation(cmd, app, args)
			if err != nil {
				return err
			}

			report, err := assessor.Assess(cmd.Context(), assess.Request{
				Operation: operation,
				Context:   opContext,
			}, flags.override())
			if err != nil {
				return err
			}
			return flags.emit(cmd, app, report)
		},
	}

	cmd.Flags().StringVar(&contextJSON, "context", "", "Operation context as a JSON object")
	cmd.Flags().StringArrayVar(&files, "file", nil, "File the operation will modify (repeatable)")
	cmd.Flags().StringVar(&command, "command", "", "Shell command the operation will run")
	flags.register(cmd)

	return cmd
}

// buildContext merges --context with the --file and --command
// shorthands. It returns nil when nothing was given.
func buildContext(contextJSON string, files []string, command string) (map[string]any, error) {
	var ctx map[string]any
	if contextJSON != "" {
		if err := json.Unmarshal([]byte(contextJSON), &ctx); err != nil {
			return nil, fmt.Errorf("parsing --context: %w", err)
		}
		if ctx == nil {
			return nil, errors.New("parsing --context: must be a JSON object")
		}
	}
	if len(files) == 0 && command == "" {
		return ctx, nil
	}

	if ctx == nil {
		ctx = make(map[string]any)
	}
	if len(files) > 0 {
		ctx["files"] = files
	}
	if command != "" {
		ctx["command"] = command
	}
	return ctx, nil
}

var errNoOperation = errors.New("no operation given")

// readOperation joins args, or falls back to an interactive prompt on a
// terminal and to stdin otherwise.
func readOperation(cmd *cobra.Command, app *App, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	var op string
	if app.interactive() && app.PromptOperation != nil {
		var err error
		if op, err = app.PromptOperation(); err != nil {
			return "", fmt.Errorf("prompting for operation: %w", err)
		}
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading operation from stdin: %w", err)
		}
		op = string(data)
	}

	op = strings.TrimSpace(op)
	if op == "" {
		return "", errNoOperation
	}
	return op, nil
}
