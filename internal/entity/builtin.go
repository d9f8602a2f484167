package entity

import (
	"sync"

	"descriptor-translator/internal/registry"
	"descriptor-translator/internal/tosca"
)

// BuiltinLocation is the name of the location holding the built-in translators.
const BuiltinLocation = "builtin"

// Builtin returns the location with the built-in translators. Derived types
// resolve to these through their inheritance chain.
func Builtin() *registry.Location[Constructor] {
	return &registry.Location[Constructor]{
		Name: BuiltinLocation,
		Definitions: []registry.Definition[Constructor]{
			{TypeName: tosca.TypeVNF, New: NewVNF},
			{TypeName: tosca.TypeVNFRiftIO, New: NewVNF},
			{TypeName: tosca.TypeCompute, New: NewCompute},
			{TypeName: tosca.TypeVDU, New: NewCompute},
			{TypeName: tosca.TypeVDURiftIO, New: NewCompute},
			{TypeName: tosca.TypeCP, New: NewPort},
			{TypeName: tosca.TypeCPRiftIO, New: NewPort},
			{TypeName: tosca.TypeVL, New: NewNetwork},
			{TypeName: tosca.GroupVNFComponents, New: NewComponentGroup},
			{TypeName: tosca.PolicyScaling, New: NewScalingGroup},
			{TypeName: tosca.PolicyServicePrimitives, New: NewConfigPrimitives},
			{TypeName: tosca.PolicyInitialConfigPrimitive, New: NewInitialConfigPrimitive},
		},
	}
}

// Registry is the translator registry type of this direction.
type Registry = registry.Registry[Constructor]

// DefaultRegistry returns the process-wide registry of built-in translators.
// It is built on first use and never rebuilt; use NewRegistry for a registry
// with overrides.
var DefaultRegistry = sync.OnceValues(func() (*Registry, error) {
	return registry.New(Builtin())
})

// NewRegistry builds a registry from the built-in location followed by an
// override location mapping custom type names to built-in ones.
func NewRegistry(overrides map[string]string) (*Registry, error) {
	if len(overrides) == 0 {
		return DefaultRegistry()
	}

	base, err := DefaultRegistry()
	if err != nil {
		return nil, err
	}

	custom, err := registry.AliasLocation("custom", base, overrides)
	if err != nil {
		return nil, err
	}

	return registry.New(Builtin(), custom)
}
