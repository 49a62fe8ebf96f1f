package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce_DefaultActionFromRisk(t *testing.T) {
	assert.Equal(t, []Action{ActionBlock}, Coerce(map[string]any{"risk": "high"}).Actions)
	assert.Equal(t, []Action{ActionAllow}, Coerce(map[string]any{"risk": "low"}).Actions)
	assert.Equal(t, []Action{ActionAllow}, Coerce(map[string]any{"risk": "medium"}).Actions)
	assert.Equal(t, []Action{ActionAllow}, Coerce(map[string]any{}).Actions)
}

func TestCoerce_InvalidRiskDropped(t *testing.T) {
	res := Coerce(map[string]any{"risk": "invalid", "actions": []any{"allow"}})
	assert.Empty(t, res.Risk)
	assert.Equal(t, []Action{ActionAllow}, res.Actions)

	res = Coerce(map[string]any{"risk": 3.0})
	assert.Empty(t, res.Risk)

	res = Coerce(map[string]any{"risk": "HIGH"})
	assert.Empty(t, res.Risk)
}

func TestCoerce_ActionVocabularyClamp(t *testing.T) {
	res := Coerce(map[string]any{"actions": []any{"allow", "fly_to_moon"}})
	assert.Equal(t, []Action{ActionAllow}, res.Actions)
}

func TestCoerce_ActionsKeepOrderAndDropDuplicates(t *testing.T) {
	res := Coerce(map[string]any{
		"risk":    "medium",
		"actions": []any{"strip_untrusted", 7.0, "require_human_confirm", "strip_untrusted", nil},
	})
	assert.Equal(t, []Action{ActionStripUntrusted, ActionRequireHumanConfirm}, res.Actions)
}

func TestCoerce_AllActionsInvalidFallsBackToRisk(t *testing.T) {
	res := Coerce(map[string]any{"risk": "high", "actions": []any{"nuke", false}})
	assert.Equal(t, []Action{ActionBlock}, res.Actions)
}

func TestCoerce_ActionsNotArrayIgnored(t *testing.T) {
	res := Coerce(map[string]any{"risk": "high", "actions": "allow"})
	assert.Equal(t, []Action{ActionBlock}, res.Actions)
}

func TestCoerce_Reasons(t *testing.T) {
	res := Coerce(map[string]any{"reasons": []any{"a", 1.0, map[string]any{}, "b"}})
	assert.Equal(t, []string{"a", "b"}, res.Reasons)

	res = Coerce(map[string]any{"reasons": "not a list"})
	assert.Nil(t, res.Reasons)

	res = Coerce(map[string]any{"reasons": []any{1.0}})
	assert.NotNil(t, res.Reasons)
	assert.Empty(t, res.Reasons)
}

func TestCoerce_SanitizedPrompt(t *testing.T) {
	assert.Equal(t, "ls", Coerce(map[string]any{"sanitized_prompt": "ls"}).SanitizedPrompt)
	assert.Empty(t, Coerce(map[string]any{"sanitized_prompt": []any{"ls"}}).SanitizedPrompt)
}
