package tosca

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Requirement is one entry of a node template's requirements list.
// It accepts the short form (virtualLink: vl0) and the long form
// (virtualLink: {node: vl0, relationship: ...}).
type Requirement struct {
	Name         string
	Node         string
	Relationship string
	Capability   string
}

type requirementBody struct {
	Node         string `yaml:"node"`
	Relationship string `yaml:"relationship,omitempty"`
	Capability   string `yaml:"capability,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Requirement) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: requirement must be a single-key mapping", node.Line)
	}

	name, body := node.Content[0], node.Content[1]

	switch body.Kind {
	case yaml.ScalarNode:
		*r = Requirement{Name: name.Value, Node: body.Value}
	case yaml.MappingNode:
		var b requirementBody
		if err := body.Decode(&b); err != nil {
			return fmt.Errorf("requirement %s: %w", name.Value, err)
		}

		*r = Requirement{Name: name.Value, Node: b.Node, Relationship: b.Relationship, Capability: b.Capability}
	default:
		return fmt.Errorf("line %d: requirement %s: expected a node name or a mapping", body.Line, name.Value)
	}

	return nil
}

// MarshalYAML emits the short form unless relationship or capability is set.
func (r Requirement) MarshalYAML() (any, error) {
	if r.Relationship == "" && r.Capability == "" {
		return map[string]string{r.Name: r.Node}, nil
	}

	return map[string]requirementBody{r.Name: {Node: r.Node, Relationship: r.Relationship, Capability: r.Capability}}, nil
}
