package totosca

import (
	"sync"

	"descriptor-translator/internal/registry"
	"descriptor-translator/internal/tree"
)

// NSD lists handled by the built-in handlers.
const (
	ListInputs           = "input-parameter"
	ListConstituents     = "constituent-vnfd"
	ListVLD              = "vld"
	ListServicePrimitive = "service-primitive"
	ListScaling          = "scaling-group-descriptor"
	ListInitialConfig    = "initial-config-primitive"
)

// Phases is the order the built-in lists are handled in. A list may refer to
// nodes created by the lists before it.
var Phases = []string{
	ListInputs,
	ListConstituents,
	ListVLD,
	ListServicePrimitive,
	ListScaling,
	ListInitialConfig,
}

// Handler translates all records of one NSD list.
type Handler func(b *Builder, records []*tree.Map) error

// BuiltinLocation is the name of the location holding the built-in handlers.
const BuiltinLocation = "builtin"

// Builtin returns the location with the built-in list handlers.
func Builtin() *registry.Location[Handler] {
	return &registry.Location[Handler]{
		Name: BuiltinLocation,
		Definitions: []registry.Definition[Handler]{
			{TypeName: ListInputs, New: (*Builder).inputs},
			{TypeName: ListConstituents, New: (*Builder).constituents},
			{TypeName: ListVLD, New: (*Builder).vlds},
			{TypeName: ListServicePrimitive, New: (*Builder).servicePrimitives},
			{TypeName: ListScaling, New: (*Builder).scalingGroups},
			{TypeName: ListInitialConfig, New: (*Builder).initialConfigPrimitives},
		},
	}
}

// DefaultRegistry returns the process-wide registry of built-in handlers.
var DefaultRegistry = sync.OnceValues(func() (*registry.Registry[Handler], error) {
	return registry.New(Builtin())
})
