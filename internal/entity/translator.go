package entity

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/manifest"
	"descriptor-translator/internal/match"
	"descriptor-translator/internal/tosca"
	"descriptor-translator/internal/tree"
)

// Translator translates one descriptor entity.
type Translator interface {
	Name() string
	Type() string
	Kind() Kind
	Source() *Source
	// Properties is the translated record. The resolver appends to its lists.
	Properties() *tree.Map
	HandleProperties(ctx *Context) error
	References() []CrossReference
	GenerateOutput(out *Output) error
}

// Constructor creates the translator for a source entity.
type Constructor func(src *Source) Translator

// Context carries what translators share during one run.
type Context struct {
	Template *tosca.ServiceTemplate
	Keys     *match.KeyMapper
	Log      logrus.FieldLogger
	Diags    *diagnostic.Diagnostics
	Files    *manifest.Set
}

// NewContext creates a Context with defaults for nil collaborators.
func NewContext(st *tosca.ServiceTemplate, log logrus.FieldLogger) *Context {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Context{
		Template: st,
		Keys:     match.Keys,
		Log:      log,
		Diags:    &diagnostic.Diagnostics{},
		Files:    manifest.NewSet(),
	}
}

// Logger returns a logger carrying the entity fields of t.
func (c *Context) Logger(t Translator) logrus.FieldLogger {
	return c.Log.WithFields(logrus.Fields{"entity": t.Name(), "type": t.Type()})
}

// Base implements the bookkeeping part of Translator.
type Base struct {
	src   *Source
	kind  Kind
	props *tree.Map
	refs  []CrossReference
}

func newBase(src *Source, kind Kind) Base {
	return Base{src: src, kind: kind, props: tree.NewMap()}
}

func (b *Base) Name() string                 { return b.src.Name }
func (b *Base) Type() string                 { return b.src.Type }
func (b *Base) Kind() Kind                   { return b.kind }
func (b *Base) Source() *Source              { return b.src }
func (b *Base) Properties() *tree.Map        { return b.props }
func (b *Base) References() []CrossReference { return b.refs }

func (b *Base) addRef(r CrossReference) {
	r.From = b.src.Name
	b.refs = append(b.refs, r)
}

func (b *Base) invalid(format string, args ...any) *diagnostic.ValidationError {
	return diagnostic.Validationf(b.src.Name, b.src.Type, format, args...)
}

// renamed returns the source properties with YANG key names.
func (b *Base) renamed(ctx *Context) *tree.Map {
	return ctx.Keys.RenameMap(b.src.Properties, match.ToYANG)
}

// stringLeaves are YANG leaves typed as strings; numeric-looking TOSCA values
// decode as numbers and are turned back into their document text.
var stringLeaves = []string{"id", "name", "short-name", "vendor", "version", "description", "logo", "type"}

func coerceStringLeaves(m *tree.Map) {
	for _, k := range stringLeaves {
		if s, isScalar := m.GetString(k); isScalar {
			m.Set(k, s)
		}
	}
}

// requireInt reads a mandatory integer property.
func (b *Base) requireInt(m *tree.Map, key string) (int, error) {
	v, ok := m.Get(key)
	if !ok {
		return 0, b.invalid("missing required property %q", key)
	}

	n, ok := tree.ToInt(v)
	if !ok {
		return 0, b.invalid("property %q must be an integer, got %v", key, v)
	}

	return n, nil
}

func (b *Base) String() string {
	return fmt.Sprintf("%s %s (%s)", b.kind, b.src.Name, b.src.Type)
}
