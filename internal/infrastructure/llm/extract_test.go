package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractObjectFromProse(t *testing.T) {
	t.Parallel()

	text := "Sure! Here is the analysis you asked for:\n```json\n" +
		`{"realMeaning": "they are passing", "confidenceScore": 2}` +
		"\n```\nLet me know if you need anything else."

	var parsed struct {
		RealMeaning     string `json:"realMeaning"`
		ConfidenceScore int    `json:"confidenceScore"`
	}
	require.NoError(t, ExtractObject(text, &parsed))
	require.Equal(t, "they are passing", parsed.RealMeaning)
	require.Equal(t, 2, parsed.ConfidenceScore)
}

func TestExtractObjectNestedBraces(t *testing.T) {
	t.Parallel()

	text := `prefix {"outer": {"inner": "value {not a brace}"}, "n": 1} suffix`

	var parsed map[string]any
	require.NoError(t, ExtractObject(text, &parsed))
	require.Contains(t, parsed, "outer")
	require.EqualValues(t, 1, parsed["n"])
}

func TestExtractObjectBraceInsideString(t *testing.T) {
	t.Parallel()

	text := `{"quote": "say \"hi\" and { keep going"}`

	var parsed struct {
		Quote string `json:"quote"`
	}
	require.NoError(t, ExtractObject(text, &parsed))
	require.Equal(t, `say "hi" and { keep going`, parsed.Quote)
}

func TestExtractObjectNoJSON(t *testing.T) {
	t.Parallel()

	var parsed map[string]any
	err := ExtractObject("the model rambled and returned nothing useful", &parsed)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrAnalysisParse))
}

func TestExtractObjectUnbalanced(t *testing.T) {
	t.Parallel()

	var parsed map[string]any
	err := ExtractObject(`{"truncated": "oops`, &parsed)
	require.True(t, errors.Is(err, ErrAnalysisParse))
}

func TestExtractArray(t *testing.T) {
	t.Parallel()

	text := "Here you go:\n" + `[{"id": "a", "tagline": "one"}, {"id": "b", "tagline": "two"}]`

	var entries []struct {
		ID      string `json:"id"`
		Tagline string `json:"tagline"`
	}
	require.NoError(t, ExtractArray(text, &entries))
	require.Len(t, entries, 2)
	require.Equal(t, "b", entries[1].ID)
}
