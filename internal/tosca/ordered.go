package tosca

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Named pairs a section entry with its name.
type Named[T any] struct {
	Name  string `validate:"required"`
	Value T
}

// Ordered is a name-keyed section that keeps document order.
// It decodes from a mapping or from a list of single-key mappings.
type Ordered[T any] []Named[T]

// Get returns a pointer to the entry with the given name.
func (o Ordered[T]) Get(name string) (*T, bool) {
	for i := range o {
		if o[i].Name == name {
			return &o[i].Value, true
		}
	}

	return nil, false
}

// Has reports whether an entry with the given name exists.
func (o Ordered[T]) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

// Names returns entry names in document order.
func (o Ordered[T]) Names() []string {
	names := make([]string, len(o))
	for i := range o {
		names[i] = o[i].Name
	}

	return names
}

// Set replaces the entry with the given name or appends a new one.
func (o *Ordered[T]) Set(name string, v T) {
	for i := range *o {
		if (*o)[i].Name == name {
			(*o)[i].Value = v
			return
		}
	}

	*o = append(*o, Named[T]{Name: name, Value: v})
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Ordered[T]) UnmarshalYAML(node *yaml.Node) error {
	out := Ordered[T]{}

	add := func(keyNode, valNode *yaml.Node) error {
		var v T
		if err := valNode.Decode(&v); err != nil {
			return fmt.Errorf("%s: %w", keyNode.Value, err)
		}

		if out.Has(keyNode.Value) {
			return fmt.Errorf("line %d: duplicate entry %q", keyNode.Line, keyNode.Value)
		}

		out = append(out, Named[T]{Name: keyNode.Value, Value: v})

		return nil
	}

	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if err := add(node.Content[i], node.Content[i+1]); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
				return fmt.Errorf("line %d: expected a single-key mapping", item.Line)
			}

			if err := add(item.Content[0], item.Content[1]); err != nil {
				return err
			}
		}
	case yaml.ScalarNode:
		if node.ShortTag() != "!!null" {
			return fmt.Errorf("line %d: expected a mapping, got %q", node.Line, node.Value)
		}
	default:
		return fmt.Errorf("line %d: expected a mapping or a list, got %v", node.Line, node.Kind)
	}

	*o = out

	return nil
}
