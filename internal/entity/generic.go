package entity

import (
	"fmt"

	"descriptor-translator/internal/diagnostic"
)

// Generic stands for entities of types without a translator. It produces no output.
type Generic struct {
	Base
}

// NewGeneric is the Constructor of Generic.
func NewGeneric(src *Source) Translator {
	return &Generic{Base: newBase(src, KindGeneric)}
}

func (g *Generic) HandleProperties(ctx *Context) error {
	ctx.Diags.AddWarning(diagnostic.CodeGenericEntity,
		fmt.Sprintf("no translator for type %q, entity is not translated", g.src.Type),
		g.src.Name, g.src.Type)
	ctx.Logger(g).Warn("no translator registered for type")

	g.props = g.src.Properties.Clone()

	return nil
}

func (g *Generic) GenerateOutput(*Output) error {
	return nil
}
