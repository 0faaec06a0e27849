package analyzer

import (
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when a model reply contains no braces.
var ErrNoJSONObject = errors.New("no JSON object in model reply")

// ExtractJSON returns the substring from the first '{' to the last '}' of
// text. Models sometimes wrap the object in prose or code fences.
func ExtractJSON(text string) ([]byte, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return nil, ErrNoJSONObject
	}
	return []byte(text[start : end+1]), nil
}
