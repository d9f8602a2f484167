package registry

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"descriptor-translator/internal/diagnostic"
)

// ErrNotFound is returned by Resolve for type names without a definition.
var ErrNotFound = errors.New("no translator registered")

// Definition declares the constructor for one source-format type.
type Definition[C any] struct {
	TypeName string
	New      C
}

// Location is a named, ordered set of definitions.
type Location[C any] struct {
	Name        string
	Definitions []Definition[C]
}

type entry[C any] struct {
	new      C
	location string
}

// Registry is an immutable type name -> constructor table.
type Registry[C any] struct {
	entries   map[string]entry[C]
	locations []string
}

// New builds a registry from locs in order; later locations win.
// Any malformed location or definition aborts construction with a RegistryLoadError.
func New[C any](locs ...*Location[C]) (*Registry[C], error) {
	r := &Registry[C]{entries: make(map[string]entry[C])}

	for i, loc := range locs {
		if loc == nil {
			return nil, &diagnostic.RegistryLoadError{
				Location: fmt.Sprintf("#%d", i),
				Reason:   "location does not exist",
			}
		}

		if loc.Name == "" {
			return nil, &diagnostic.RegistryLoadError{
				Location: fmt.Sprintf("#%d", i),
				Reason:   "location has no name",
			}
		}

		seen := make(map[string]bool, len(loc.Definitions))

		for j, def := range loc.Definitions {
			if def.TypeName == "" {
				return nil, &diagnostic.RegistryLoadError{
					Location:   loc.Name,
					Definition: fmt.Sprintf("#%d", j),
					Reason:     "definition does not declare the type it handles",
				}
			}

			if isNil(def.New) {
				return nil, &diagnostic.RegistryLoadError{
					Location:   loc.Name,
					Definition: def.TypeName,
					Reason:     "definition has no constructor",
				}
			}

			if seen[def.TypeName] {
				return nil, &diagnostic.RegistryLoadError{
					Location:   loc.Name,
					Definition: def.TypeName,
					Reason:     "type is declared twice in the same location",
				}
			}

			seen[def.TypeName] = true
			r.entries[def.TypeName] = entry[C]{new: def.New, location: loc.Name}
		}

		r.locations = append(r.locations, loc.Name)
	}

	return r, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// Resolve returns the constructor registered for typeName.
func (r *Registry[C]) Resolve(typeName string) (C, error) {
	e, ok := r.entries[typeName]
	if !ok {
		var zero C
		return zero, fmt.Errorf("%w for type %q", ErrNotFound, typeName)
	}

	return e.new, nil
}

// ResolveChain resolves the first type of chain that has a definition and
// returns its constructor together with the matched type name.
func (r *Registry[C]) ResolveChain(chain []string) (C, string, error) {
	for _, t := range chain {
		if e, ok := r.entries[t]; ok {
			return e.new, t, nil
		}
	}

	var zero C

	if len(chain) == 0 {
		return zero, "", fmt.Errorf("%w: empty type chain", ErrNotFound)
	}

	return zero, "", fmt.Errorf("%w for type %q or its ancestors", ErrNotFound, chain[0])
}

// Has reports whether typeName has a definition.
func (r *Registry[C]) Has(typeName string) bool {
	_, ok := r.entries[typeName]
	return ok
}

// Location returns the name of the location whose definition won for typeName.
func (r *Registry[C]) Location(typeName string) (string, bool) {
	e, ok := r.entries[typeName]
	return e.location, ok
}

// Names returns all registered type names in lexical order.
func (r *Registry[C]) Names() []string {
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}

	slices.Sort(names)

	return names
}

// Locations returns the location names in construction order.
func (r *Registry[C]) Locations() []string {
	return slices.Clone(r.locations)
}

// AliasLocation builds a location that registers each alias type with the
// constructor base resolves for its target type.
func AliasLocation[C any](name string, base *Registry[C], aliases map[string]string) (*Location[C], error) {
	loc := &Location[C]{Name: name}

	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, alias := range keys {
		target := aliases[alias]

		ctor, err := base.Resolve(target)
		if err != nil {
			return nil, &diagnostic.RegistryLoadError{
				Location:   name,
				Definition: alias,
				Reason:     fmt.Sprintf("override target %q is not a registered type", target),
			}
		}

		loc.Definitions = append(loc.Definitions, Definition[C]{TypeName: alias, New: ctor})
	}

	return loc, nil
}
