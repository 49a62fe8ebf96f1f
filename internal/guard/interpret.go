package guard

import (
	"strings"

	"github.com/alexanderramin/promptguard/internal/llm"
)

// Labels names the reasons emitted for each interpretation outcome.
type Labels struct {
	Safe            string
	ViolationPrefix string
	Invalid         string
}

var (
	// ContentLabels are used when a single content payload is classified.
	ContentLabels = Labels{
		Safe:            "content_classified_as_safe",
		ViolationPrefix: "llama_guard_violation_",
		Invalid:         "invalid_classifier_output",
	}

	// ConversationLabels are used when an assistant response is classified.
	ConversationLabels = Labels{
		Safe:            "assistant_response_classified_as_safe",
		ViolationPrefix: "assistant_response_violation_",
		Invalid:         "invalid_response_classification",
	}
)

// Interpret turns raw classifier output into a Result. The native dialect
// is a "safe" line, or an "unsafe" line followed by a category code. Any
// other output is searched for a JSON object; when none is found the
// verdict fails closed.
func Interpret(raw string, labels Labels) Result {
	text := strings.TrimSpace(raw)
	first, rest, _ := strings.Cut(text, "\n")

	switch strings.ToLower(strings.TrimSpace(first)) {
	case "safe":
		return Result{
			Risk:    RiskLow,
			Reasons: []string{labels.Safe},
			Actions: []Action{ActionAllow},
		}

	case "unsafe":
		second, _, _ := strings.Cut(rest, "\n")
		category := strings.TrimSpace(second)
		code := category
		if code == "" {
			code = "unknown"
		}
		v := MapCategory(category)
		return Result{
			Risk:    v.Risk,
			Reasons: []string{labels.ViolationPrefix + code},
			Actions: v.Actions,
		}
	}

	obj, err := llm.ParseObject(raw)
	if err != nil {
		return failClosed(labels.Invalid)
	}
	return Coerce(obj)
}
