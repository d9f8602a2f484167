package tree

import (
	"math"
	"strconv"
	"strings"
)

// ToInt converts integral numbers to int. Strings are not parsed.
func ToInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}

		return int(n), true
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
		if n != math.Trunc(n) || n < math.MinInt64 || n >= 1<<63 {
			return 0, false
		}

		return int(n), true
	default:
		return 0, false
	}
}

// ToFloat converts any number to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		i, ok := ToInt(v)
		return float64(i), ok
	}
}

// IsNumber reports whether v is a numeric scalar.
func IsNumber(v any) bool {
	_, ok := ToFloat(v)
	return ok
}

// ToString renders a scalar as a string.
// Integral floats keep a trailing ".0" so they stay distinguishable from ints.
func ToString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case float64:
		return FormatFloat(s), true
	case float32:
		return FormatFloat(float64(s)), true
	default:
		if i, ok := ToInt(v); ok {
			return strconv.Itoa(i), true
		}

		return "", false
	}
}

// FormatFloat formats f the way YAML resolves it back to a float.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

// LooksNumeric reports whether s would be read back as a number if emitted unquoted.
func LooksNumeric(s string) bool {
	if s == "" || strings.Trim(s, "0123456789+-.eE") != "" {
		return false
	}

	if !strings.ContainsAny(s, "0123456789") {
		return false
	}

	_, err := strconv.ParseFloat(s, 64)

	return err == nil
}
