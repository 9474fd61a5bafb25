package generate

import (
	"encoding/json"
	"fmt"
)

// ExtractJSON pulls a JSON object out of a free-form model response.
// Models are not contractually obligated to return pure JSON: the
// object may be wrapped in prose or markdown fencing. The scan uses
// brace-depth matching rather than a greedy regex because content
// fields can legitimately contain braces inside quoted strings.
// All parse failures map to ErrMalformedResponse; this function never
// panics past its boundary.
func ExtractJSON(text string) (*RawPost, error) {
	candidate, ok := firstJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found in response", ErrMalformedResponse)
	}

	var raw RawPost
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &raw, nil
}

// firstJSONObject returns the substring covering the first balanced
// {...} in text. Braces inside JSON strings are skipped by tracking
// quote and escape state alongside depth.
func firstJSONObject(text string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
