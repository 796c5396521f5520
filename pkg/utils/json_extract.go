package utils

import (
	"encoding/json"
	"strings"
)

// ParseLLMJSON turns a model response into a JSON value.
// Code fences are stripped and the text is parsed directly; when that fails the earliest
// balanced {...} or [...] substring that is valid JSON is used instead.
func ParseLLMJSON(text string) (json.RawMessage, error) {
	cleaned := stripCodeFences(text)
	if cleaned != "" && json.Valid([]byte(cleaned)) {
		return json.RawMessage(cleaned), nil
	}

	if candidate, ok := extractBalancedJSON(cleaned); ok {
		return json.RawMessage(candidate), nil
	}

	return nil, ErrJSONParse
}

// stripCodeFences removes markdown code block markers (```json, ```JSON, ```).
func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```JSON", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// extractBalancedJSON tries every opener in order of appearance until one closes into
// valid JSON.
func extractBalancedJSON(s string) (string, bool) {
	for start := 0; start < len(s); start++ {
		if s[start] != '{' && s[start] != '[' {
			continue
		}
		end := findMatchingClose(s, start)
		if end == -1 {
			continue
		}
		candidate := s[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}
	return "", false
}

// findMatchingClose returns the index of the bracket closing the one at start,
// skipping brackets inside string literals. -1 when unmatched.
func findMatchingClose(s string, start int) int {
	open := s[start]
	var closing byte
	switch open {
	case '{':
		closing = '}'
	case '[':
		closing = ']'
	default:
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}

		if char == '\\' && inString {
			escaped = true
			continue
		}

		if char == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch char {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
