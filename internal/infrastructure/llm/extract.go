package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrAnalysisParse signals the model's reply contained no decodable JSON
// payload. Distinct from transport failures so callers can tell
// provider-unreachable apart from malformed output.
var ErrAnalysisParse = errors.New("model output is not valid JSON")

// ExtractObject finds the first balanced top-level JSON object in free-form
// model text (tolerating surrounding prose and markdown fences) and decodes
// it into v.
func ExtractObject(text string, v any) error {
	return extract(text, '{', '}', v)
}

// ExtractArray does the same for a top-level JSON array.
func ExtractArray(text string, v any) error {
	return extract(text, '[', ']', v)
}

func extract(text string, opening, closing byte, v any) error {
	start := strings.IndexByte(text, opening)
	if start < 0 {
		return fmt.Errorf("%w: no %q found", ErrAnalysisParse, string(opening))
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case opening:
			depth++
		case closing:
			depth--
			if depth == 0 {
				if err := json.Unmarshal([]byte(text[start:i+1]), v); err != nil {
					return fmt.Errorf("%w: %v", ErrAnalysisParse, err)
				}
				return nil
			}
		}
	}

	return fmt.Errorf("%w: unbalanced %q", ErrAnalysisParse, string(opening))
}
