package entity

import (
	"descriptor-translator/internal/tree"
)

// ComponentGroup assigns compute nodes to the VNF named by its vnf property.
type ComponentGroup struct {
	Base
}

// NewComponentGroup is the Constructor of ComponentGroup.
func NewComponentGroup(src *Source) Translator {
	return &ComponentGroup{Base: newBase(src, KindComponentGroup)}
}

func (g *ComponentGroup) HandleProperties(ctx *Context) error {
	vnf, ok := g.src.Properties.GetString("vnf")
	if !ok || vnf == "" {
		return g.invalid("missing required property %q", "vnf")
	}

	g.props = tree.MapOf("vnf", vnf)

	for _, m := range g.src.Members {
		g.addRef(CrossReference{Kind: RefHosts, To: m, Owner: vnf})
	}

	ctx.Logger(g).WithField("members", len(g.src.Members)).Debug("component group mapped")

	return nil
}

func (g *ComponentGroup) GenerateOutput(*Output) error {
	return nil
}
