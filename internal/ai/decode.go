package ai

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

var ErrEmptyResponse = errors.New("empty response")

// DecodeJSON parses a structured reply into out after checking that every
// dotted path in required is present and non-null.
func DecodeJSON(text string, required []string, out any) error {
	text = StripFences(text)
	if text == "" {
		return ErrEmptyResponse
	}

	var probe map[string]any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return fmt.Errorf("malformed json: %w", err)
	}
	for _, path := range required {
		if !hasPath(probe, path) {
			return fmt.Errorf("missing required field %q", path)
		}
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("unexpected json shape: %w", err)
	}
	return nil
}

// StripFences removes a ```json ... ``` wrapper some models add around JSON.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func hasPath(m map[string]any, path string) bool {
	cur := any(m)
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return false
		}
		v, ok := obj[key]
		if !ok || v == nil {
			return false
		}
		cur = v
	}
	return true
}
