package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/promptguard/internal/assess"
	"github.com/alexanderramin/promptguard/internal/cli/formatter"
	"github.com/alexanderramin/promptguard/internal/guard"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// riskFlag is a --fail-on threshold. The zero value disables it.
type riskFlag struct {
	risk guard.Risk
}

var _ pflag.Value = (*riskFlag)(nil)

func (f *riskFlag) String() string { return string(f.risk) }

func (f *riskFlag) Type() string { return "risk" }

func (f *riskFlag) Set(s string) error {
	r, ok := guard.ParseRisk(s)
	if !ok {
		return errors.New("must be one of low, medium, high")
	}
	f.risk = r
	return nil
}

// met reports whether risk reaches the threshold. A risk outside the
// vocabulary ranks as high.
func (f *riskFlag) met(risk string) bool {
	return f.risk != "" && guard.Risk(risk).Rank() >= f.risk.Rank()
}

// verdictFlags are shared by the commands that produce a report.
type verdictFlags struct {
	model    string
	endpoint string
	json     bool
	failOn   riskFlag
}

func (v *verdictFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&v.model, "model", "", "Classifier model for this call")
	cmd.Flags().StringVar(&v.endpoint, "endpoint", "", "Ollama base URL for this call")
	cmd.Flags().BoolVar(&v.json, "json", false, "Print the report as JSON")
	cmd.Flags().Var(&v.failOn, "fail-on", "Exit non-zero when risk is at least this tier (low|medium|high)")
}

func (v *verdictFlags) override() guard.Config {
	return guard.Config{Model: v.model, Endpoint: v.endpoint}
}

// emit writes the report and applies the --fail-on threshold.
func (v *verdictFlags) emit(cmd *cobra.Command, app *App, report *assess.Report) error {
	out := cmd.OutOrStdout()
	if v.json || !app.terminalOutput() {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		fmt.Fprint(out, formatter.FormatReport(report))
	}

	if v.failOn.met(report.Risk) {
		return fmt.Errorf("risk %s meets threshold %s", report.Risk, v.failOn.risk)
	}
	return nil
}
