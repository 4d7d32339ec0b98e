package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSONObject is returned when a model response holds no {...} span.
var ErrNoJSONObject = errors.New("no JSON object in response")

// extractJSONFromMarkdown removes ```json / ``` fences wherever they appear.
func extractJSONFromMarkdown(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```JSON", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// IsolateJSONObject returns the span from the first '{' to the last '}' after
// stripping markdown fences. Prose around the object is discarded.
func IsolateJSONObject(text string) (string, error) {
	text = extractJSONFromMarkdown(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", ErrNoJSONObject
	}
	return text[start : end+1], nil
}

// ExtractJSONObject leniently decodes a model response into v.
func ExtractJSONObject(text string, v interface{}) error {
	raw, err := IsolateJSONObject(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return nil
}
