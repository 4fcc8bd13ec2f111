package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	got, err := ExtractJSON(`Here is the analysis: {"compatibilityScore": 88, "flavorProfile": ["sweet"]} hope it helps`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"compatibilityScore": 88, "flavorProfile": ["sweet"]}`, got)
}

func TestExtractJSONArray(t *testing.T) {
	got, err := ExtractJSON("```json\n[{\"title\": \"Swap cream\"}]\n```")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title": "Swap cream"}]`, got)
}

func TestExtractJSONNestedBraces(t *testing.T) {
	got, err := ExtractJSON(`{"outer": {"inner": [1, 2, {"deep": true}]}}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"outer": {"inner": [1, 2, {"deep": true}]}}`, got)
}

func TestExtractJSONIgnoresBracesInStrings(t *testing.T) {
	got, err := ExtractJSON(`{"note": "use a {ratio} of 60/40 \" quoted"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"note": "use a {ratio} of 60/40 \" quoted"}`, got)
}

func TestExtractJSONNoJSON(t *testing.T) {
	_, err := ExtractJSON("sorry, I cannot help with that")
	assert.Error(t, err)
}

func TestUnmarshalResponse(t *testing.T) {
	var out struct {
		Score float64  `json:"compatibilityScore"`
		Tags  []string `json:"flavorProfile"`
	}
	err := UnmarshalResponse(`The result: {"compatibilityScore": 92.5, "flavorProfile": ["umami", "nutty"]}`, &out)
	require.NoError(t, err)
	assert.Equal(t, 92.5, out.Score)
	assert.Equal(t, []string{"umami", "nutty"}, out.Tags)
}

func TestUnmarshalResponseBadTarget(t *testing.T) {
	var out []string
	err := UnmarshalResponse(`{"key": "value"}`, &out)
	assert.Error(t, err)
}
