package tosca

import (
	"descriptor-translator/internal/tree"
)

// ServiceTemplate is a TOSCA NFV service template.
type ServiceTemplate struct {
	DefinitionsVersion string    `yaml:"tosca_definitions_version" validate:"required"`
	Description        string    `yaml:"description,omitempty"`
	Metadata           *tree.Map `yaml:"metadata,omitempty"`

	DataTypes       Ordered[TypeDef] `yaml:"data_types,omitempty" validate:"dive"`
	CapabilityTypes Ordered[TypeDef] `yaml:"capability_types,omitempty" validate:"dive"`
	NodeTypes       Ordered[TypeDef] `yaml:"node_types,omitempty" validate:"dive"`
	GroupTypes      Ordered[TypeDef] `yaml:"group_types,omitempty" validate:"dive"`
	PolicyTypes     Ordered[TypeDef] `yaml:"policy_types,omitempty" validate:"dive"`

	Topology TopologyTemplate `yaml:"topology_template"`
}

// TopologyTemplate holds the instantiated entities of a service template.
type TopologyTemplate struct {
	Description   string                `yaml:"description,omitempty"`
	Inputs        Ordered[Input]        `yaml:"inputs,omitempty" validate:"dive"`
	NodeTemplates Ordered[NodeTemplate] `yaml:"node_templates" validate:"required,dive"`
	Groups        Ordered[Group]        `yaml:"groups,omitempty" validate:"dive"`
	Policies      Ordered[Policy]       `yaml:"policies,omitempty" validate:"dive"`
	Outputs       *tree.Map             `yaml:"outputs,omitempty"`
}

// TypeDef is an entry of one of the type catalogs.
type TypeDef struct {
	DerivedFrom  string         `yaml:"derived_from,omitempty"`
	Description  string         `yaml:"description,omitempty"`
	Properties   *tree.Map      `yaml:"properties,omitempty"`
	Capabilities *tree.Map      `yaml:"capabilities,omitempty"`
	Requirements []any          `yaml:"requirements,omitempty"`
	Extra        map[string]any `yaml:",inline"`
}

// Input is a topology input parameter.
type Input struct {
	Type        string      `yaml:"type" validate:"required"`
	Description string      `yaml:"description,omitempty"`
	Default     any         `yaml:"default,omitempty"`
	Required    *bool       `yaml:"required,omitempty"`
	Constraints []*tree.Map `yaml:"constraints,omitempty"`
}

// NodeTemplate is a node of the topology.
type NodeTemplate struct {
	Type         string         `yaml:"type" validate:"required"`
	Description  string         `yaml:"description,omitempty"`
	Properties   *tree.Map      `yaml:"properties,omitempty"`
	Capabilities *tree.Map      `yaml:"capabilities,omitempty"`
	Requirements []Requirement  `yaml:"requirements,omitempty"`
	Artifacts    *tree.Map      `yaml:"artifacts,omitempty"`
	Interfaces   *tree.Map      `yaml:"interfaces,omitempty"`
	Extra        map[string]any `yaml:",inline"`
}

// RequirementsNamed returns the requirements with the given name in document order.
func (n *NodeTemplate) RequirementsNamed(name string) []Requirement {
	var out []Requirement

	for _, r := range n.Requirements {
		if r.Name == name {
			out = append(out, r)
		}
	}

	return out
}

// Group is a topology group.
type Group struct {
	Type        string         `yaml:"type" validate:"required"`
	Description string         `yaml:"description,omitempty"`
	Members     []string       `yaml:"members,omitempty"`
	Properties  *tree.Map      `yaml:"properties,omitempty"`
	Extra       map[string]any `yaml:",inline"`
}

// Policy is a topology policy.
type Policy struct {
	Type        string         `yaml:"type" validate:"required"`
	Description string         `yaml:"description,omitempty"`
	Properties  *tree.Map      `yaml:"properties,omitempty"`
	Targets     []string       `yaml:"targets,omitempty"`
	Extra       map[string]any `yaml:",inline"`
}

// MetadataString returns a metadata value rendered as a string.
func (st *ServiceTemplate) MetadataString(key string) string {
	return st.Metadata.StringOr(key, "")
}
