package entity

import (
	"fmt"

	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/tosca"
)

// Port property keys after renaming.
const (
	PortName     = "name"
	PortType     = "type"
	PortIntfName = "vdu-intf-name"
	PortIntfType = "vdu-intf-type"

	defaultPortType = "VPORT"
	defaultIntfType = "VIRTIO"
)

// Port translates a connection point. It has no record of its own: the
// resolver writes it into its VNF, its compute node and its network.
type Port struct {
	Base
}

// NewPort is the Constructor of Port.
func NewPort(src *Source) Translator {
	return &Port{Base: newBase(src, KindPort)}
}

func (p *Port) HandleProperties(ctx *Context) error {
	in := p.renamed(ctx)
	props := p.props

	name := in.StringOr("name", p.src.Name)

	props.Set(PortName, name)
	props.Set(PortType, in.StringOr("cp-type", in.StringOr("type", defaultPortType)))
	props.Set(PortIntfName, in.StringOr(PortIntfName, name))
	props.Set(PortIntfType, in.StringOr(PortIntfType, defaultIntfType))

	for _, k := range in.Keys() {
		switch k {
		case "name", "cp-type", "type", PortIntfName, PortIntfType:
		default:
			ctx.Diags.AddInfo(diagnostic.CodeIgnoredProperty,
				fmt.Sprintf("property %q has no connection-point equivalent", k), p.src.Name, p.src.Type)
		}
	}

	binding := namedRequirements(p.src.Requirements, tosca.ReqVirtualBinding)
	link := namedRequirements(p.src.Requirements, tosca.ReqVirtualLink)

	if len(binding) != 1 {
		return p.invalid("requires exactly one %s relationship, found %d", tosca.ReqVirtualBinding, len(binding))
	}

	if len(link) != 1 {
		return p.invalid("requires exactly one %s relationship, found %d", tosca.ReqVirtualLink, len(link))
	}

	p.addRef(CrossReference{Kind: RefVirtualBinding, To: binding[0]})
	p.addRef(CrossReference{Kind: RefVirtualLink, To: link[0]})

	return nil
}

func namedRequirements(reqs []tosca.Requirement, name string) []string {
	var out []string

	for _, r := range reqs {
		if r.Name == name {
			out = append(out, r.Node)
		}
	}

	return out
}

func (p *Port) GenerateOutput(*Output) error {
	return nil
}
