package entity

import (
	"fmt"
	"strconv"
	"strings"

	"descriptor-translator/internal/tree"
)

// Unit factors relative to one MB.
var sizeFactors = map[string]float64{
	"B":   1.0 / (1024 * 1024),
	"KB":  1.0 / 1024,
	"KIB": 1.0 / 1024,
	"MB":  1,
	"MIB": 1,
	"GB":  1024,
	"GIB": 1024,
	"TB":  1024 * 1024,
	"TIB": 1024 * 1024,
}

// ScalarSize converts a TOSCA scalar-unit size ("512 MB", "4 GB") or a plain
// number to an integer count of unit (MB or GB). Plain numbers are taken as
// already expressed in unit.
func ScalarSize(v any, unit string) (int, error) {
	if n, ok := tree.ToInt(v); ok {
		return n, nil
	}

	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("size %v is neither a number nor a scalar-unit string", v)
	}

	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, fmt.Errorf("size %q is not of the form '<number> <unit>'", s)
	}

	num, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("size %q: %w", s, err)
	}

	from, ok := sizeFactors[strings.ToUpper(fields[1])]
	if !ok {
		return 0, fmt.Errorf("size %q: unknown unit %q", s, fields[1])
	}

	to := sizeFactors[strings.ToUpper(unit)]
	out := num * from / to

	n, ok := tree.ToInt(out)
	if !ok {
		return 0, fmt.Errorf("size %q is not a whole number of %s", s, unit)
	}

	return n, nil
}

// FormatSize renders n units as a TOSCA scalar-unit string.
func FormatSize(n int, unit string) string {
	return strconv.Itoa(n) + " " + unit
}
