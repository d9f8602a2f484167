package constraint

import (
	"fmt"
	"math"

	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/tree"
)

// Target vocabulary keys.
const (
	KeyAllowedValues  = "allowedValues"
	KeyRange          = "range"
	KeyLength         = "length"
	KeyAllowedPattern = "allowedPattern"

	KeyMin = "min"
	KeyMax = "max"
)

// Constraint is one TOSCA constraint clause.
type Constraint struct {
	Op    Op
	Value any
}

// Parse reads a single-key clause such as {in_range: [1, 5]}.
func Parse(clause *tree.Map) (Constraint, error) {
	if clause.Len() != 1 {
		return Constraint{}, diagnostic.Validationf("", "",
			"constraint clause must have exactly one operator, got %d", clause.Len())
	}

	name := clause.Keys()[0]

	op, err := ParseOp(name)
	if err != nil {
		return Constraint{}, err
	}

	return Constraint{Op: op, Value: clause.Value(name)}, nil
}

// ParseAll reads a list of clauses.
func ParseAll(clauses []*tree.Map) ([]Constraint, error) {
	out := make([]Constraint, 0, len(clauses))

	for _, clause := range clauses {
		c, err := Parse(clause)
		if err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, nil
}

// Clause renders c as a single-key TOSCA clause.
func (c Constraint) Clause() *tree.Map {
	return tree.MapOf(c.Op.String(), tree.Clone(c.Value))
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s: %v", c.Op, c.Value)
}

func invalidOperand(op Op, format string, args ...any) error {
	return diagnostic.Validationf("", "", "%s: "+format, append([]any{op}, args...)...)
}

func isScalar(v any) bool {
	switch v.(type) {
	case *tree.Map, []any, map[string]any:
		return false
	default:
		return true
	}
}

// bound accepts any scalar operand. Sizes such as "1 GB" and dates are passed through as written.
func bound(op Op, v any) (any, error) {
	if v == nil || !isScalar(v) {
		return nil, invalidOperand(op, "operand %v is not a scalar", v)
	}

	return v, nil
}

func nonNegativeInt(op Op, v any) (int, error) {
	n, ok := tree.ToInt(v)
	if !ok || n < 0 {
		return 0, invalidOperand(op, "operand %v is not a non-negative integer", v)
	}

	return n, nil
}

// strictBound returns the integer successor (delta 1) or predecessor (delta -1) of v.
func strictBound(op Op, v any, delta int) (int, error) {
	if !tree.IsNumber(v) {
		return 0, invalidOperand(op, "operand %v is not a number", v)
	}

	n, ok := tree.ToInt(v)
	if !ok {
		return 0, &diagnostic.UnsupportedConstraintError{
			Operator: op.String(),
			Reason:   fmt.Sprintf("strict bound %v is not an integer", v),
		}
	}

	if (delta > 0 && n == math.MaxInt) || (delta < 0 && n == math.MinInt) {
		return 0, &diagnostic.UnsupportedConstraintError{
			Operator: op.String(),
			Reason:   fmt.Sprintf("strict bound %v has no integer neighbour", v),
		}
	}

	return n + delta, nil
}

func bounds(lo, hi any) *tree.Map {
	m := tree.NewMap()
	if lo != nil {
		m.Set(KeyMin, lo)
	}

	if hi != nil {
		m.Set(KeyMax, hi)
	}

	return m
}

// Translate maps one TOSCA clause to its target vocabulary entry.
func Translate(c Constraint) (*tree.Map, error) {
	switch c.Op {
	case OpEqual:
		if !isScalar(c.Value) {
			return nil, invalidOperand(c.Op, "operand must be a scalar")
		}

		return tree.MapOf(KeyAllowedValues, []any{c.Value}), nil
	case OpGreaterThan:
		n, err := strictBound(c.Op, c.Value, 1)
		if err != nil {
			return nil, err
		}

		return tree.MapOf(KeyRange, bounds(n, nil)), nil
	case OpGreaterOrEqual:
		n, err := bound(c.Op, c.Value)
		if err != nil {
			return nil, err
		}

		return tree.MapOf(KeyRange, bounds(n, nil)), nil
	case OpLessThan:
		n, err := strictBound(c.Op, c.Value, -1)
		if err != nil {
			return nil, err
		}

		return tree.MapOf(KeyRange, bounds(nil, n)), nil
	case OpLessOrEqual:
		n, err := bound(c.Op, c.Value)
		if err != nil {
			return nil, err
		}

		return tree.MapOf(KeyRange, bounds(nil, n)), nil
	case OpInRange:
		return translateInRange(c)
	case OpValidValues:
		list, ok := c.Value.([]any)
		if !ok || len(list) == 0 {
			return nil, invalidOperand(c.Op, "operand must be a non-empty list")
		}

		return tree.MapOf(KeyAllowedValues, tree.Clone(list)), nil
	case OpLength, OpMinLength, OpMaxLength:
		n, err := nonNegativeInt(c.Op, c.Value)
		if err != nil {
			return nil, err
		}

		switch c.Op {
		case OpMinLength:
			return tree.MapOf(KeyLength, bounds(n, nil)), nil
		case OpMaxLength:
			return tree.MapOf(KeyLength, bounds(nil, n)), nil
		default:
			return tree.MapOf(KeyLength, bounds(n, n)), nil
		}
	case OpPattern:
		re, ok := c.Value.(string)
		if !ok {
			return nil, invalidOperand(c.Op, "operand must be a string")
		}

		return tree.MapOf(KeyAllowedPattern, re), nil
	default:
		return nil, &diagnostic.UnsupportedConstraintError{Operator: c.Op.String()}
	}
}

func translateInRange(c Constraint) (*tree.Map, error) {
	list, ok := c.Value.([]any)
	if !ok || len(list) != 2 {
		return nil, invalidOperand(c.Op, "operand must be a [lower, upper] pair")
	}

	lo, err := bound(c.Op, list[0])
	if err != nil {
		return nil, err
	}

	hi, err := bound(c.Op, list[1])
	if err != nil {
		return nil, err
	}

	// Only numeric pairs are ordered here; other scalars are passed through.
	loF, loNum := tree.ToFloat(lo)
	hiF, hiNum := tree.ToFloat(hi)

	if loNum && hiNum && loF > hiF {
		return nil, invalidOperand(c.Op, "lower bound %v exceeds upper bound %v", lo, hi)
	}

	return tree.MapOf(KeyRange, bounds(lo, hi)), nil
}

// TranslateAll translates clauses in order. A range or length entry is merged
// into the previous entry of the same kind when their bounds do not overlap.
func TranslateAll(cs []Constraint) ([]*tree.Map, error) {
	var out []*tree.Map

	for _, c := range cs {
		entry, err := Translate(c)
		if err != nil {
			return nil, err
		}

		if merged := mergeInto(out, entry); merged {
			continue
		}

		out = append(out, entry)
	}

	return out, nil
}

func mergeInto(entries []*tree.Map, entry *tree.Map) bool {
	key := entry.Keys()[0]
	if key != KeyRange && key != KeyLength {
		return false
	}

	add := entry.GetMap(key)

	for i := len(entries) - 1; i >= 0; i-- {
		existing := entries[i].GetMap(key)
		if existing == nil {
			continue
		}

		for _, k := range add.Keys() {
			if existing.Has(k) {
				return false
			}
		}

		for _, k := range add.Keys() {
			existing.Set(k, add.Value(k))
		}

		sortBounds(existing)

		return true
	}

	return false
}

// sortBounds keeps min before max.
func sortBounds(m *tree.Map) {
	if lo, ok := m.Get(KeyMin); ok && m.Has(KeyMax) {
		hi := m.Value(KeyMax)
		m.Delete(KeyMin)
		m.Delete(KeyMax)
		m.Set(KeyMin, lo)
		m.Set(KeyMax, hi)
	}
}
