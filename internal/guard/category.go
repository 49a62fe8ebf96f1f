package guard

// Verdict is the risk tier and actions a category code maps to.
type Verdict struct {
	Risk    Risk
	Actions []Action
}

// categoryNames describes the Llama Guard 3 hazard taxonomy.
var categoryNames = map[string]string{
	"S1":  "Violent Crimes",
	"S2":  "Non-Violent Crimes",
	"S3":  "Sex-Related Crimes",
	"S4":  "Child Sexual Exploitation",
	"S5":  "Defamation",
	"S6":  "Specialized Advice",
	"S7":  "Privacy",
	"S8":  "Intellectual Property",
	"S9":  "Indiscriminate Weapons",
	"S10": "Hate",
	"S11": "Suicide & Self-Harm",
	"S12": "Sexual Content",
	"S13": "Elections",
	"S14": "Code Interpreter Abuse",
}

// CategoryName returns the human-readable name of code, or "" if unknown.
func CategoryName(code string) string {
	return categoryNames[code]
}

// MapCategory maps a classifier category code to a verdict. Unlisted and
// empty codes share the most conservative tier.
func MapCategory(code string) Verdict {
	switch code {
	case "S1", "S3", "S4", "S9", "S11":
		return Verdict{Risk: RiskHigh, Actions: []Action{ActionBlock}}

	case "S2", "S5", "S6", "S7", "S8", "S10", "S13":
		return Verdict{Risk: RiskMedium, Actions: []Action{ActionRequireHumanConfirm}}

	case "S12":
		return Verdict{Risk: RiskMedium, Actions: []Action{ActionStripUntrusted}}

	default:
		return Verdict{Risk: RiskHigh, Actions: []Action{ActionBlock}}
	}
}
