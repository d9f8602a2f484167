package common

import "strings"

// UnknownStr is the String() result for enum values outside their defined range.
const UnknownStr = "unknown"

// Quote joins names as a comma-separated list of quoted values.
func Quote(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}

	return strings.Join(quoted, ", ")
}

// Sanitize replaces characters that are not letters, digits or underscores with underscores.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
