package constraint

import (
	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/tree"
)

// Reverse maps one target vocabulary entry back to TOSCA clauses.
// A length entry with different bounds yields two clauses.
func Reverse(entry *tree.Map) ([]Constraint, error) {
	if entry.Len() != 1 {
		return nil, diagnostic.Validationf("", "",
			"constraint entry must have exactly one key, got %d", entry.Len())
	}

	key := entry.Keys()[0]
	val := entry.Value(key)

	switch key {
	case KeyAllowedValues:
		list, ok := val.([]any)
		if !ok || len(list) == 0 {
			return nil, diagnostic.Validationf("", "", "%s must be a non-empty list", key)
		}

		return []Constraint{{Op: OpValidValues, Value: tree.Clone(list)}}, nil
	case KeyRange:
		m, ok := val.(*tree.Map)
		if !ok {
			return nil, diagnostic.Validationf("", "", "%s must be a mapping", key)
		}

		lo, hasLo := m.Get(KeyMin)
		hi, hasHi := m.Get(KeyMax)

		switch {
		case hasLo && hasHi:
			return []Constraint{{Op: OpInRange, Value: []any{lo, hi}}}, nil
		case hasLo:
			return []Constraint{{Op: OpGreaterOrEqual, Value: lo}}, nil
		case hasHi:
			return []Constraint{{Op: OpLessOrEqual, Value: hi}}, nil
		default:
			return nil, diagnostic.Validationf("", "", "%s has neither min nor max", key)
		}
	case KeyLength:
		return reverseLength(val)
	case KeyAllowedPattern:
		re, ok := val.(string)
		if !ok {
			return nil, diagnostic.Validationf("", "", "%s must be a string", key)
		}

		return []Constraint{{Op: OpPattern, Value: re}}, nil
	default:
		return nil, &diagnostic.UnsupportedConstraintError{
			Operator: key,
			Reason:   "not a known target constraint",
		}
	}
}

func reverseLength(val any) ([]Constraint, error) {
	m, ok := val.(*tree.Map)
	if !ok {
		return nil, diagnostic.Validationf("", "", "%s must be a mapping", KeyLength)
	}

	lo, hasLo := m.GetInt(KeyMin)
	hi, hasHi := m.GetInt(KeyMax)

	if (m.Has(KeyMin) && !hasLo) || (m.Has(KeyMax) && !hasHi) {
		return nil, diagnostic.Validationf("", "", "%s bounds must be integers", KeyLength)
	}

	switch {
	case hasLo && hasHi && lo == hi:
		return []Constraint{{Op: OpLength, Value: lo}}, nil
	case hasLo || hasHi:
		var out []Constraint
		if hasLo {
			out = append(out, Constraint{Op: OpMinLength, Value: lo})
		}

		if hasHi {
			out = append(out, Constraint{Op: OpMaxLength, Value: hi})
		}

		return out, nil
	default:
		return nil, diagnostic.Validationf("", "", "%s has neither min nor max", KeyLength)
	}
}

// ReverseAll maps a list of target entries back to TOSCA clauses.
func ReverseAll(entries []*tree.Map) ([]Constraint, error) {
	var out []Constraint

	for _, e := range entries {
		cs, err := Reverse(e)
		if err != nil {
			return nil, err
		}

		out = append(out, cs...)
	}

	return out, nil
}
