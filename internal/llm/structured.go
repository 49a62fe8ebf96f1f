package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseObject recovers a JSON object from raw model output. It first tries
// the whole text, then the span from the first '{' to the last '}', which
// covers code fences and leading or trailing prose. Arrays, scalars and
// null are not objects and are rejected.
func ParseObject(raw string) (map[string]any, error) {
	if obj, ok := decodeObject(raw); ok {
		return obj, nil
	}

	span := braceSpan(raw)
	if span == "" {
		return nil, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	obj, ok := decodeObject(span)
	if !ok {
		return nil, fmt.Errorf("%w: embedded object is not valid JSON", ErrInvalidOutput)
	}
	return obj, nil
}

func decodeObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// braceSpan returns s from its first '{' through its last '}'.
func braceSpan(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}
	end := strings.LastIndexByte(s, '}')
	if end < start {
		return ""
	}
	return s[start : end+1]
}
