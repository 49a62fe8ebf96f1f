package guard

// Coerce clamps an untrusted object into a Result. Each field is validated
// on its own and dropped when invalid. Missing or empty actions default
// to block for high risk and allow otherwise.
func Coerce(raw map[string]any) Result {
	var res Result

	if s, ok := raw["risk"].(string); ok {
		if r, ok := ParseRisk(s); ok {
			res.Risk = r
		}
	}

	if items, ok := raw["reasons"].([]any); ok {
		res.Reasons = make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				res.Reasons = append(res.Reasons, s)
			}
		}
	}

	if items, ok := raw["actions"].([]any); ok {
		seen := make(map[Action]bool, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				continue
			}
			a := Action(s)
			if !a.Valid() || seen[a] {
				continue
			}
			seen[a] = true
			res.Actions = append(res.Actions, a)
		}
	}

	if s, ok := raw["sanitized_prompt"].(string); ok {
		res.SanitizedPrompt = s
	}

	if len(res.Actions) == 0 {
		if res.Risk == RiskHigh {
			res.Actions = []Action{ActionBlock}
		} else {
			res.Actions = []Action{ActionAllow}
		}
	}

	return res
}
