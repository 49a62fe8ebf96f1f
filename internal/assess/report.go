package assess

import "github.com/alexanderramin/promptguard/internal/guard"

// Summary messages derived from a verdict's actions.
const (
	MessageBlocked = "🚫 Operation should be blocked"
	MessageConfirm = "⚠️ Operation requires human confirmation"
	MessageSafe    = "✅ Operation appears safe"
)

// Report is the caller-facing result of an assessment.
type Report struct {
	Operation        string         `json:"operation"`
	Context          map[string]any `json:"context,omitempty"`
	Risk             string         `json:"risk"`
	Reasons          []string       `json:"reasons"`
	Actions          []guard.Action `json:"actions"`
	SanitizedPrompt  string         `json:"sanitized_prompt,omitempty"`
	MandatoryActions string         `json:"mandatory_actions"`
}

// MandatoryActions summarizes actions in one human-readable line.
// Blocking outranks confirmation.
func MandatoryActions(actions []guard.Action) string {
	r := guard.Result{Actions: actions}
	switch {
	case r.Has(guard.ActionBlock):
		return MessageBlocked
	case r.Has(guard.ActionRequireHumanConfirm):
		return MessageConfirm
	default:
		return MessageSafe
	}
}

// NewReport combines a request with the verdict it received.
func NewReport(req Request, res guard.Result) *Report {
	risk := string(res.Risk)
	if risk == "" {
		risk = "unknown"
	}
	reasons := res.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	actions := res.Actions
	if actions == nil {
		actions = []guard.Action{}
	}
	return &Report{
		Operation:        req.Operation,
		Context:          req.Context,
		Risk:             risk,
		Reasons:          reasons,
		Actions:          actions,
		SanitizedPrompt:  res.SanitizedPrompt,
		MandatoryActions: MandatoryActions(actions),
	}
}
