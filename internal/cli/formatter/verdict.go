package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/promptguard/internal/assess"
	"github.com/alexanderramin/promptguard/internal/guard"
	"github.com/charmbracelet/lipgloss"
)

var violationPrefixes = []string{
	guard.ContentLabels.ViolationPrefix,
	guard.ConversationLabels.ViolationPrefix,
}

// HumanizeReason appends the category name to violation reasons,
// e.g. "llama_guard_violation_S1 (Violent Crimes)". Other reasons are
// returned unchanged.
func HumanizeReason(reason string) string {
	for _, prefix := range violationPrefixes {
		code, ok := strings.CutPrefix(reason, prefix)
		if !ok {
			continue
		}
		if name := guard.CategoryName(code); name != "" {
			return fmt.Sprintf("%s (%s)", reason, name)
		}
		return reason
	}
	return reason
}

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		content = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
	}
	return box.Render(content)
}

// FormatReport renders an assessment for a terminal.
func FormatReport(r *assess.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", RiskIndicator(guard.Risk(r.Risk)), Bold(Truncate(r.Operation, 72)))
	b.WriteString("\n")

	b.WriteString(Dim("Reasons") + "\n")
	if len(r.Reasons) == 0 {
		b.WriteString("  " + Dim("none given") + "\n")
	}
	for _, reason := range r.Reasons {
		b.WriteString("  • " + HumanizeReason(reason) + "\n")
	}

	pills := make([]string, len(r.Actions))
	for i, a := range r.Actions {
		pills[i] = ActionPill(a)
	}
	fmt.Fprintf(&b, "%s  %s\n", Dim("Actions"), strings.Join(pills, Dim(", ")))

	if r.SanitizedPrompt != "" {
		fmt.Fprintf(&b, "%s  %s\n", Dim("Sanitized"), StyleBlue.Render(r.SanitizedPrompt))
	}

	b.WriteString("\n")
	b.WriteString(mandatoryStyle(r.Actions).Render(r.MandatoryActions))

	return RenderBox("Risk assessment", b.String()) + "\n"
}

func mandatoryStyle(actions []guard.Action) lipgloss.Style {
	res := guard.Result{Actions: actions}
	switch {
	case res.Has(guard.ActionBlock):
		return StyleRed.Bold(true)
	case res.Has(guard.ActionRequireHumanConfirm):
		return StyleYellow.Bold(true)
	default:
		return StyleGreen.Bold(true)
	}
}
