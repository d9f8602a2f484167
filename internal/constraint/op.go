package constraint

import (
	"descriptor-translator/internal/diagnostic"
)

//go:generate go tool stringer -type=Op -linecomment -output=op_string.go

// Op is a TOSCA constraint operator.
type Op int

const (
	_ Op = iota // zero value is not a valid operator

	OpEqual          // equal
	OpGreaterThan    // greater_than
	OpGreaterOrEqual // greater_or_equal
	OpLessThan       // less_than
	OpLessOrEqual    // less_or_equal
	OpInRange        // in_range
	OpValidValues    // valid_values
	OpLength         // length
	OpMinLength      // min_length
	OpMaxLength      // max_length
	OpPattern        // pattern
)

// Ops lists every operator in table order.
var Ops = []Op{
	OpEqual, OpGreaterThan, OpGreaterOrEqual, OpLessThan, OpLessOrEqual,
	OpInRange, OpValidValues, OpLength, OpMinLength, OpMaxLength, OpPattern,
}

var opsByName = func() map[string]Op {
	m := make(map[string]Op, len(Ops))
	for _, op := range Ops {
		m[op.String()] = op
	}

	return m
}()

// ParseOp returns the operator with the given TOSCA name.
func ParseOp(name string) (Op, error) {
	if op, ok := opsByName[name]; ok {
		return op, nil
	}

	return 0, &diagnostic.UnsupportedConstraintError{
		Operator: name,
		Reason:   "operator is not in the supported table",
	}
}
