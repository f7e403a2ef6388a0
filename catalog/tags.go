package catalog

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FallbackCategory labels items that arrive without any tag or category.
const FallbackCategory = "Outros"

// ParseTags normalises the catalog's tags field. It accepts a comma separated
// string, a string holding a JSON array, or a JSON list, and always returns a
// non-empty list of trimmed, non-empty tags. Missing or empty input yields
// []string{FallbackCategory}.
func ParseTags(raw json.RawMessage) []string {
	tags := splitRaw(raw)
	if len(tags) == 0 {
		return []string{FallbackCategory}
	}
	return tags
}

// SplitTags is ParseTags for plain strings, e.g. "Mesas, Cubos".
func SplitTags(s string) []string {
	tags := splitString(s, 0)
	if len(tags) == 0 {
		return []string{FallbackCategory}
	}
	return tags
}

// PrimaryCategory picks the display category: the explicit category when it
// is set, otherwise the first tag.
func PrimaryCategory(explicit string, tags []string) string {
	if c := strings.TrimSpace(explicit); c != "" {
		return c
	}
	if len(tags) > 0 {
		return tags[0]
	}
	return FallbackCategory
}

func splitRaw(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	switch raw[0] {
	case '[':
		var list []interface{}
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil
		}
		return cleanList(list)
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return splitString(s, 0)
	}
	return nil
}

// splitString handles "a, b", "[\"a\",\"b\"]" and a JSON string wrapping
// either of those. depth stops runaway unwrapping of nested quoting.
func splitString(s string, depth int) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if depth < 2 && (strings.HasPrefix(s, "[") || strings.HasPrefix(s, `"[`)) {
		if strings.HasPrefix(s, `"`) {
			var inner string
			if err := json.Unmarshal([]byte(s), &inner); err == nil {
				return splitString(inner, depth+1)
			}
		} else {
			var list []interface{}
			if err := json.Unmarshal([]byte(s), &list); err == nil {
				return cleanList(list)
			}
		}
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func cleanList(list []interface{}) []string {
	var out []string
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func parseGallery(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	switch raw[0] {
	case '[':
		var list []interface{}
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil
		}
		return cleanList(list)
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if strings.HasPrefix(s, "[") {
			var list []interface{}
			if err := json.Unmarshal([]byte(s), &list); err == nil {
				return cleanList(list)
			}
		}
		if s == "" {
			return nil
		}
		return []string{s}
	}
	return nil
}
