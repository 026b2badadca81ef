package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SafeString converts a decoded JSON value to a string. nil yields def;
// numbers are formatted without a trailing ".0".
func SafeString(v any, def string) string {
	switch typed := v.(type) {
	case nil:
		return def
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return fmt.Sprint(typed)
	}
}

// SafeInt converts a decoded JSON value to an int, truncating floats.
// Values that cannot be converted yield def.
func SafeInt(v any, def int) int {
	if n, ok := toInt(v); ok {
		return n
	}
	return def
}

// SafeFloat converts a decoded JSON value to a float64 or yields def.
func SafeFloat(v any, def float64) float64 {
	if f, ok := toFloat(v); ok {
		return f
	}
	return def
}

// SafeBool accepts booleans, numbers (non-zero is true) and the strings
// "true", "1", "yes" and "on". Anything else yields def.
func SafeBool(v any, def bool) bool {
	switch typed := v.(type) {
	case bool:
		return typed
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "true", "1", "yes", "on":
			return true
		}
		return false
	case float64:
		return typed != 0
	case int:
		return typed != 0
	case int64:
		return typed != 0
	default:
		return def
	}
}

// Nested walks keys through nested objects and returns the value at the
// end of the path, or nil when any step is missing or not an object.
func Nested(data map[string]any, keys ...string) any {
	var current any = data
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}

func toInt(v any) (int, bool) {
	switch typed := v.(type) {
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return 0, false
		}
		return int(typed), true
	case float32:
		return int(typed), true
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case string:
		s := strings.TrimSpace(typed)
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch typed := v.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	return SafeString(src[key], "")
}

func getBool(src map[string]any, key string, def bool) bool {
	if src == nil {
		return def
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return def
	}
	return SafeBool(raw, def)
}

func getInt(src map[string]any, key string, def int) int {
	if src == nil {
		return def
	}
	return SafeInt(src[key], def)
}

// getOptInt returns nil when the key is absent or not numeric
func getOptInt(src map[string]any, key string) *int {
	if src == nil {
		return nil
	}
	n, ok := toInt(src[key])
	if !ok {
		return nil
	}
	return &n
}

func getOptFloat(src map[string]any, key string) *float64 {
	if src == nil {
		return nil
	}
	f, ok := toFloat(src[key])
	if !ok {
		return nil
	}
	return &f
}

func getOptBool(src map[string]any, key string) *bool {
	if src == nil {
		return nil
	}
	b, ok := src[key].(bool)
	if !ok {
		return nil
	}
	return &b
}

// getMap returns the object under key, or nil
func getMap(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	m, _ := src[key].(map[string]any)
	return m
}

// getMaps returns the objects in the array under key, skipping elements
// that are not objects
func getMaps(src map[string]any, key string) []map[string]any {
	if src == nil {
		return nil
	}
	items, ok := src[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func getStrings(src map[string]any, key string) []string {
	if src == nil {
		return nil
	}
	items, ok := src[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// unwrap returns src[key] when it is an object, otherwise src itself
func unwrap(src map[string]any, key string) map[string]any {
	if inner := getMap(src, key); inner != nil {
		return inner
	}
	return src
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
