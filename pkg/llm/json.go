package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// fencePattern matches markdown code fences models wrap around JSON despite
// instructions not to (```json ... ``` or bare ```).
var fencePattern = regexp.MustCompile("(?s)^\\s*```[a-zA-Z]*\\s*(.*?)\\s*```\\s*$")

// StripCodeFences removes a surrounding markdown code fence, if present, and
// trims whitespace.
func StripCodeFences(response string) string {
	if m := fencePattern.FindStringSubmatch(response); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(response)
}

// ExtractJSON pulls the first balanced JSON value out of a model response
// that may carry fences or surrounding prose. Returns false when no valid
// JSON is found.
func ExtractJSON(response string) (string, bool) {
	cleaned := StripCodeFences(response)

	objStart := strings.IndexByte(cleaned, '{')
	arrStart := strings.IndexByte(cleaned, '[')

	if objStart >= 0 && (arrStart < 0 || objStart < arrStart) {
		if jsonStr, ok := extractBalanced(cleaned, '{', '}'); ok && json.Valid([]byte(jsonStr)) {
			return jsonStr, true
		}
	}
	if arrStart >= 0 {
		if jsonStr, ok := extractBalanced(cleaned, '[', ']'); ok && json.Valid([]byte(jsonStr)) {
			return jsonStr, true
		}
	}

	if json.Valid([]byte(cleaned)) {
		return cleaned, true
	}
	return "", false
}

// extractBalanced finds the first balanced JSON structure starting with
// openChar, tracking bracket depth and string/escape state.
func extractBalanced(s string, openChar, closeChar byte) (string, bool) {
	start := strings.IndexByte(s, openChar)
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if c == openChar {
			depth++
		} else if c == closeChar {
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// ParseJSONResponse extracts JSON from a model response and unmarshals it
// into T. Failures surface as invalid-output errors carrying a truncated raw
// excerpt; a default value is never silently substituted.
func ParseJSONResponse[T any](response string) (T, error) {
	var result T

	jsonStr, ok := ExtractJSON(response)
	if !ok {
		return result, NewInvalidOutputError("no valid JSON in model response", response, nil)
	}

	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return result, NewInvalidOutputError("model response does not match expected schema", response, err)
	}
	return result, nil
}
