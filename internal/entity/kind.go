package entity

import "descriptor-translator/internal/common"

// Kind identifies the translator variant.
type Kind int

const (
	KindGeneric Kind = iota
	KindVNF
	KindCompute
	KindPort
	KindNetwork
	KindComponentGroup
	KindScalingGroup
	KindConfigPrimitives
	KindInitialConfigPrimitive
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindVNF:
		return "vnf"
	case KindCompute:
		return "compute"
	case KindPort:
		return "port"
	case KindNetwork:
		return "network"
	case KindComponentGroup:
		return "component-group"
	case KindScalingGroup:
		return "scaling-group"
	case KindConfigPrimitives:
		return "config-primitives"
	case KindInitialConfigPrimitive:
		return "initial-config-primitive"
	default:
		return common.UnknownStr
	}
}

// RefKind identifies the relationship a CrossReference stands for.
type RefKind int

const (
	// RefVirtualBinding binds a Port to the compute node of its VNF.
	RefVirtualBinding RefKind = iota
	// RefVirtualLink attaches a Port to a Network.
	RefVirtualLink
	// RefHosts places a compute node inside a VNF.
	RefHosts
	// RefScalingMember names a VNF replicated by a scaling group.
	RefScalingMember
	// RefConfigAction names the primitive run on a scaling trigger.
	RefConfigAction
)

// String returns a human-readable relationship name.
func (k RefKind) String() string {
	switch k {
	case RefVirtualBinding:
		return "virtualBinding"
	case RefVirtualLink:
		return "virtualLink"
	case RefHosts:
		return "hosts"
	case RefScalingMember:
		return "scalingMember"
	case RefConfigAction:
		return "configAction"
	default:
		return common.UnknownStr
	}
}

// CrossReference is an edge from one entity to a named target, recorded during
// HandleProperties and consumed by the resolver.
type CrossReference struct {
	Kind RefKind
	From string
	To   string
	// Owner is the VNF named by a component group for RefHosts.
	Owner string
	// Count is the instance count of a RefScalingMember.
	Count int
	// Trigger is the scaling trigger of a RefConfigAction.
	Trigger string
}
