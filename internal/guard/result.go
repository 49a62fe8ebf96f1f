package guard

// Risk is the severity tier of a verdict.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// Valid reports whether r is one of the known tiers.
func (r Risk) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// Rank orders tiers from least to most severe. Unknown tiers rank as high.
func (r Risk) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	default:
		return 2
	}
}

// ParseRisk converts s into a Risk, reporting whether it was recognized.
func ParseRisk(s string) (Risk, bool) {
	r := Risk(s)
	return r, r.Valid()
}

// Action is a recommended handling of the classified operation.
type Action string

const (
	ActionAllow               Action = "allow"
	ActionBlock               Action = "block"
	ActionRequireHumanConfirm Action = "require_human_confirm"
	ActionStripUntrusted      Action = "strip_untrusted"
)

// Valid reports whether a belongs to the closed action vocabulary.
func (a Action) Valid() bool {
	switch a {
	case ActionAllow, ActionBlock, ActionRequireHumanConfirm, ActionStripUntrusted:
		return true
	default:
		return false
	}
}

// Result is the normalized verdict for one classification call.
// Risk is empty when the classifier output did not determine it.
// Actions always holds at least one element.
type Result struct {
	Risk            Risk     `json:"risk,omitempty"`
	Reasons         []string `json:"reasons,omitempty"`
	Actions         []Action `json:"actions"`
	SanitizedPrompt string   `json:"sanitized_prompt,omitempty"`
}

// Has reports whether a is among the result's actions.
func (r Result) Has(a Action) bool {
	for _, x := range r.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// failClosed is returned when nothing usable can be read from the classifier.
func failClosed(reason string) Result {
	return Result{
		Risk:    RiskHigh,
		Reasons: []string{reason},
		Actions: []Action{ActionBlock},
	}
}
