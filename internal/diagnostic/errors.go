package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"descriptor-translator/internal/common"
)

// Kind classifies fatal translation errors.
type Kind int

const (
	// KindInternal is a programming or configuration fault.
	KindInternal Kind = iota
	// KindRegistryLoad is a failure to build the type registry.
	KindRegistryLoad
	// KindValidation is a descriptor that cannot be translated as written.
	KindValidation
	// KindUnsupportedConstraint is a constraint operator or operand outside the supported table.
	KindUnsupportedConstraint
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "InternalError"
	case KindRegistryLoad:
		return "RegistryLoadError"
	case KindValidation:
		return "ValidationError"
	case KindUnsupportedConstraint:
		return "UnsupportedConstraintError"
	default:
		return common.UnknownStr
	}
}

// Error is implemented by every fatal error of the translator.
type Error interface {
	error
	Kind() Kind
}

// RegistryLoadError aborts registry construction.
type RegistryLoadError struct {
	Location   string
	Definition string
	Reason     string
}

func (e *RegistryLoadError) Error() string {
	var b strings.Builder

	b.WriteString("registry load error")

	if e.Location != "" {
		fmt.Fprintf(&b, ": location %q", e.Location)
	}

	if e.Definition != "" {
		fmt.Fprintf(&b, ": definition %q", e.Definition)
	}

	b.WriteString(": ")
	b.WriteString(e.Reason)

	return b.String()
}

// Kind implements Error.
func (e *RegistryLoadError) Kind() Kind { return KindRegistryLoad }

// ValidationError reports a descriptor entity that cannot be translated.
type ValidationError struct {
	Entity      string
	EntityType  string
	Message     string
	Suggestions []string
}

// Validationf creates a ValidationError for the given entity.
func Validationf(entity, entityType, format string, args ...any) *ValidationError {
	return &ValidationError{
		Entity:     entity,
		EntityType: entityType,
		Message:    fmt.Sprintf(format, args...),
	}
}

// WithSuggestions attaches "did you mean" candidates.
func (e *ValidationError) WithSuggestions(s []string) *ValidationError {
	e.Suggestions = s
	return e
}

func (e *ValidationError) Error() string {
	msg := "validation error: "
	if e.Entity != "" {
		msg += fmt.Sprintf("%s (%s): ", e.Entity, e.EntityType)
	}

	msg += e.Message
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + common.Quote(e.Suggestions) + "?)"
	}

	return msg
}

// Kind implements Error.
func (e *ValidationError) Kind() Kind { return KindValidation }

// UnsupportedConstraintError reports a constraint that has no equivalent in the target vocabulary.
type UnsupportedConstraintError struct {
	Entity     string
	EntityType string
	Operator   string
	Reason     string
}

func (e *UnsupportedConstraintError) Error() string {
	msg := fmt.Sprintf("unsupported constraint %q", e.Operator)
	if e.Entity != "" {
		msg += fmt.Sprintf(" on %s (%s)", e.Entity, e.EntityType)
	}

	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

// Kind implements Error.
func (e *UnsupportedConstraintError) Kind() Kind { return KindUnsupportedConstraint }

// InternalError wraps a fault that is not attributable to the input descriptor.
type InternalError struct {
	Entity     string
	EntityType string
	Err        error
}

func (e *InternalError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("internal error: %s (%s): %v", e.Entity, e.EntityType, e.Err)
	}

	return fmt.Sprintf("internal error: %v", e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// Kind implements Error.
func (e *InternalError) Kind() Kind { return KindInternal }

// KindOf returns the kind of the first Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var derr Error
	if errors.As(err, &derr) {
		return derr.Kind()
	}

	return KindInternal
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// Attribute fills in the entity name and type on errors that do not carry one yet.
// Errors outside the taxonomy are wrapped in an InternalError.
func Attribute(err error, entity, entityType string) error {
	if err == nil {
		return nil
	}

	var (
		verr *ValidationError
		cerr *UnsupportedConstraintError
		ierr *InternalError
		rerr *RegistryLoadError
	)

	switch {
	case errors.As(err, &verr):
		if verr.Entity == "" {
			verr.Entity, verr.EntityType = entity, entityType
		}
	case errors.As(err, &cerr):
		if cerr.Entity == "" {
			cerr.Entity, cerr.EntityType = entity, entityType
		}
	case errors.As(err, &ierr):
		if ierr.Entity == "" {
			ierr.Entity, ierr.EntityType = entity, entityType
		}
	case errors.As(err, &rerr):
	default:
		return &InternalError{Entity: entity, EntityType: entityType, Err: err}
	}

	return err
}
