package diagnostic

import (
	"fmt"
	"strings"

	"descriptor-translator/internal/common"
)

// Diagnostic codes.
const (
	CodeGenericEntity      = "generic-entity"
	CodeAppendedKey        = "appended-key"
	CodeUnreferencedVNFD   = "unreferenced-vnfd"
	CodeUnknownList        = "unknown-list"
	CodeMissingDescription = "missing-description"
	CodeIgnoredProperty    = "ignored-property"
)

// Diagnostics holds the non-fatal findings of a translation run.
// Fatal problems are returned as errors instead.
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Entity is the name of the descriptor entity this relates to (if any).
	Entity string
	// EntityType is the source type of that entity (if any).
	EntityType string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return common.UnknownStr
	}
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, entity, entityType string) {
	d.Warnings = append(d.Warnings, newDiagnostic(SeverityWarning, code, message, entity, entityType))
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, entity, entityType string) {
	d.Infos = append(d.Infos, newDiagnostic(SeverityInfo, code, message, entity, entityType))
}

func newDiagnostic(sev Severity, code, message, entity, entityType string) Diagnostic {
	return Diagnostic{
		Severity:   sev,
		Code:       code,
		Message:    message,
		Entity:     entity,
		EntityType: entityType,
	}
}

// All returns every diagnostic, warnings first.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Warnings)+len(d.Infos))
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.EntityType != "" {
		prefix = append(prefix, "["+d.EntityType+"]")
	}

	if d.Entity != "" {
		prefix = append(prefix, d.Entity)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + common.Quote(d.Suggestions) + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
