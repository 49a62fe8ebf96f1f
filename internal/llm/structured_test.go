package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObject_CleanJSON(t *testing.T) {
	obj, err := ParseObject(`{"risk":"low","actions":["allow"],"reasons":["safe"]}`)
	require.NoError(t, err)
	assert.Equal(t, "low", obj["risk"])
}

func TestParseObject_FencedJSON(t *testing.T) {
	raw := "Here is the analysis:\n```json\n{\"risk\":\"high\",\"actions\":[\"block\"]}\n```"
	obj, err := ParseObject(raw)
	require.NoError(t, err)
	assert.Equal(t, "high", obj["risk"])
	assert.Equal(t, []any{"block"}, obj["actions"])
}

func TestParseObject_SpanCoversNestedObjects(t *testing.T) {
	raw := `verdict follows {"risk":"medium","meta":{"source":"guard"}} end`
	obj, err := ParseObject(raw)
	require.NoError(t, err)
	assert.Equal(t, "medium", obj["risk"])
	assert.Equal(t, map[string]any{"source": "guard"}, obj["meta"])
}

func TestParseObject_TwoObjectsIsNotRecoverable(t *testing.T) {
	// First '{' to last '}' spans both objects, which is not one JSON value.
	_, err := ParseObject(`{"risk":"low"} and {"risk":"high"}`)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestParseObject_NoJSON(t *testing.T) {
	_, err := ParseObject("This is not JSON at all")
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestParseObject_BracesReversed(t *testing.T) {
	_, err := ParseObject("} oops {")
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestParseObject_RejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`null`, `[1,2]`, `"risk"`, `42`, `true`} {
		_, err := ParseObject(raw)
		assert.ErrorIs(t, err, ErrInvalidOutput, raw)
	}
}

func TestParseObject_InvalidUTF8(t *testing.T) {
	_, err := ParseObject("\xff\xfe{\xc3\x28")
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestParseObject_LargeInput(t *testing.T) {
	raw := strings.Repeat("noise ", 500000) + `{"risk":"low"}`
	obj, err := ParseObject(raw)
	require.NoError(t, err)
	assert.Equal(t, "low", obj["risk"])
}
