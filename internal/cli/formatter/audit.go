package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/promptguard/internal/audit"
	"github.com/alexanderramin/promptguard/internal/guard"
)

// HumanTimestamp renders t relative to now for recent times and as a
// date otherwise.
func HumanTimestamp(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Local().Format("Jan 2 15:04")
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Local().Format("Jan 2 15:04")
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatEntries renders recorded verdicts as a table, newest first as
// given.
func FormatEntries(entries []*audit.Entry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No verdicts recorded.") + "\n"
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		actions := make([]string, len(e.Actions))
		for i, a := range e.Actions {
			actions[i] = ActionPill(a)
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			HumanTimestamp(e.CreatedAt, now),
			e.Source,
			string(e.Kind),
			RiskIndicator(e.Risk),
			strings.Join(actions, ","),
			Truncate(e.Operation, 48),
		})
	}
	return RenderTable(
		[]string{"ID", "WHEN", "SOURCE", "KIND", "RISK", "ACTIONS", "OPERATION"},
		rows,
	)
}

// FormatStats renders per-tier verdict counts. Tiers are listed from
// low to high, followed by verdicts that carried no risk.
func FormatStats(counts map[guard.Risk]int) string {
	tiers := []guard.Risk{guard.RiskLow, guard.RiskMedium, guard.RiskHigh}

	total := 0
	rows := make([][]string, 0, len(tiers)+1)
	for _, r := range tiers {
		rows = append(rows, []string{RiskIndicator(r), fmt.Sprint(counts[r])})
		total += counts[r]
	}
	if n := counts[""]; n > 0 {
		rows = append(rows, []string{RiskIndicator(""), fmt.Sprint(n)})
		total += n
	}

	var b strings.Builder
	b.WriteString(Header("Verdicts") + "\n")
	b.WriteString(RenderTable([]string{"RISK", "COUNT"}, rows))
	fmt.Fprintf(&b, "%s %d\n", Dim("Total"), total)
	return b.String()
}
