// FILE: pkg/jsonval/jsonval.go
// PURPOSE: Guarded access helpers over decoded, schema-less JSON values

package jsonval

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// AsString returns a trimmed, non-empty string for strings, numbers and bools.
func AsString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case json.Number:
		return t.String(), true
	case float64:
		return FormatNumber(t), true
	case float32:
		return FormatNumber(float64(t)), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// String is AsString without the ok flag.
func String(v any) string {
	s, _ := AsString(v)
	return s
}

// AsText only accepts real strings; numbers are rejected.
func AsText(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// AsNumber coerces numbers, numeric strings and currency strings.
func AsNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		return ParseCurrency(t)
	}
	return 0, false
}

// ParseCurrency extracts the first decimal number from a price string such as
// "₹1,299.50", "Rs. 40" or "INR 99".
func ParseCurrency(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	m := numberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// AsBool accepts real booleans plus the usual string spellings.
func AsBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
	case float64:
		return t != 0, true
	case int:
		return t != 0, true
	}
	return false, false
}

// AsMap returns v as a JSON object.
func AsMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

// ToArray normalizes array-or-single-object input. Objects are wrapped in a
// one-element slice; anything else yields nil.
func ToArray(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out
	case map[string]any:
		if t == nil {
			return nil
		}
		return []any{t}
	}
	return nil
}

// Lookup walks nested objects along path.
func Lookup(obj map[string]any, path ...string) (any, bool) {
	var cur any = obj
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

// FirstString returns the first key whose value coerces to a non-empty string.
// Dotted keys ("sla.slaString") descend into nested objects.
func FirstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := lookupKey(obj, key); ok {
			if s, ok := AsString(v); ok {
				return s
			}
		}
	}
	return ""
}

// FirstText is FirstString restricted to real strings.
func FirstText(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := lookupKey(obj, key); ok {
			if s, ok := AsText(v); ok {
				return s
			}
		}
	}
	return ""
}

// FirstNumber returns the first key whose value coerces to a number.
func FirstNumber(obj map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := lookupKey(obj, key); ok {
			if f, ok := AsNumber(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

// FirstBool returns the first key holding a boolean-ish value.
func FirstBool(obj map[string]any, keys ...string) (bool, bool) {
	for _, key := range keys {
		if v, ok := lookupKey(obj, key); ok {
			if b, ok := AsBool(v); ok {
				return b, true
			}
		}
	}
	return false, false
}

// HasAny reports whether obj carries a non-nil value for any of keys.
func HasAny(obj map[string]any, keys ...string) bool {
	for _, key := range keys {
		if v, ok := lookupKey(obj, key); ok && !IsEmpty(v) {
			return true
		}
	}
	return false
}

// IsEmpty treats nil, blank strings, empty arrays and empty objects as empty.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// IsInteger reports whether f has no fractional part.
func IsInteger(f float64) bool {
	return f == math.Trunc(f)
}

// FormatNumber renders f without trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Float returns a pointer copy, used for optional numeric fields.
func Float(f float64) *float64 {
	return &f
}

// Compact renders any value as a short single-line string.
func Compact(v any, max int) string {
	if s, ok := AsString(v); ok {
		return clip(s, max)
	}
	if arr, ok := v.([]any); ok {
		parts := make([]string, 0, len(arr))
		scalar := true
		for _, el := range arr {
			s, ok := AsString(el)
			if !ok {
				scalar = false
				break
			}
			parts = append(parts, s)
		}
		if scalar {
			return clip(strings.Join(parts, ", "), max)
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return clip(string(b), max)
}

func clip(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func lookupKey(obj map[string]any, key string) (any, bool) {
	if obj == nil {
		return nil, false
	}
	if v, ok := obj[key]; ok {
		return v, v != nil
	}
	if strings.Contains(key, ".") {
		return Lookup(obj, strings.Split(key, ".")...)
	}
	return nil, false
}

// Slug lowercases s and joins its alphanumeric runs with dashes.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
