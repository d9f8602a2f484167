package entity

import (
	"descriptor-translator/internal/tosca"
)

// Network translates a virtual link node into an NSD vld entry.
type Network struct {
	Base
}

// NewNetwork is the Constructor of Network.
func NewNetwork(src *Source) Translator {
	return &Network{Base: newBase(src, KindNetwork)}
}

func (n *Network) HandleProperties(ctx *Context) error {
	props := n.renamed(ctx)

	if kind, ok := props.GetString("network-type"); ok && kind != "" {
		props.Delete("network-type")
		props.Set("type", kind)
	}

	if !props.Has("type") {
		props.Set("type", n.kindFromType(ctx.Template))
	}

	props.SetDefault("id", n.src.Name)
	props.SetDefault("name", n.src.Name)
	props.SetDefault("short-name", n.src.Name)

	for _, d := range [][2]string{
		{"description", n.src.Description},
		{"vendor", n.src.Vendor},
		{"version", n.src.Version},
	} {
		if d[1] != "" {
			props.SetDefault(d[0], d[1])
		}
	}

	coerceStringLeaves(props)

	n.props = props

	return nil
}

// kindFromType walks the type chain until a known network kind is found.
func (n *Network) kindFromType(st *tosca.ServiceTemplate) string {
	for _, t := range st.Ancestors(n.src.Type) {
		if kind, ok := tosca.NetworkKind(t); ok {
			return kind
		}
	}

	return tosca.KindELAN
}

func (n *Network) GenerateOutput(out *Output) error {
	out.AppendNSD("vld", n.props)
	return nil
}
