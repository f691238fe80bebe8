// Package normalize turns unreliable free-text model output into well-typed
// values. Nothing here returns an error: callers get a degraded value and
// decide on task-specific defaults.
package normalize

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	fencedAnyRe  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// ExtractPayload pulls a JSON object out of raw completion text.
//
// Extraction is attempted in priority order: a fenced block tagged json, any
// fenced block, the widest brace-delimited substring, and finally the whole
// text. The second return value reports whether parsing succeeded.
func ExtractPayload(raw string) (map[string]any, bool) {
	candidate := raw
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		candidate = m[1]
	} else if m = fencedAnyRe.FindStringSubmatch(raw); m != nil {
		candidate = m[1]
	} else if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start != -1 && start < end {
		candidate = raw[start : end+1]
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, false
	}
	return payload, true
}

// String returns the first present, non-empty string under any of the given
// keys. Model output is schema-unstable, so every canonical field carries an
// ordered alias list.
func String(payload map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// StringOr is String with a fallback for when no alias is present.
func StringOr(payload map[string]any, fallback string, keys ...string) string {
	if s := String(payload, keys...); s != "" {
		return s
	}
	return fallback
}

// Map returns the first present object value under any of the given keys.
func Map(payload map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		if m, ok := payload[key].(map[string]any); ok {
			return m
		}
	}
	return nil
}

// List returns the first present list value under any of the given keys.
func List(payload map[string]any, keys ...string) []any {
	for _, key := range keys {
		if l, ok := payload[key].([]any); ok {
			return l
		}
	}
	return nil
}

// StringList returns the first present value under any of the given keys
// coerced to a list of strings. A bare scalar is wrapped into a one-element
// list; non-string elements are dropped.
func StringList(payload map[string]any, keys ...string) []string {
	for _, key := range keys {
		switch v := payload[key].(type) {
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					items = append(items, s)
				}
			}
			if len(items) > 0 {
				return items
			}
		case string:
			if v != "" {
				return []string{v}
			}
		}
	}
	return nil
}

// Int returns the first present value under any of the given keys coerced to
// an integer. JSON numbers and strings of digits both count; anything else
// falls back.
func Int(payload map[string]any, fallback int, keys ...string) int {
	for _, key := range keys {
		switch v := payload[key].(type) {
		case float64:
			return int(v)
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return fallback
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NamesMatch reports whether a free-text entity name refers to a canonical
// one. The model rarely echoes names exactly, so matching is case-insensitive
// substring containment in either direction.
func NamesMatch(candidate, canonical string) bool {
	candidate = strings.ToLower(strings.TrimSpace(candidate))
	canonical = strings.ToLower(strings.TrimSpace(canonical))
	if candidate == "" || canonical == "" {
		return false
	}
	return strings.Contains(candidate, canonical) || strings.Contains(canonical, candidate)
}
