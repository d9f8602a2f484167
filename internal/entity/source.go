package entity

import (
	"descriptor-translator/internal/common"
	"descriptor-translator/internal/tosca"
	"descriptor-translator/internal/tree"
)

// Section is the part of the topology template an entity comes from.
type Section int

const (
	SectionNode Section = iota
	SectionGroup
	SectionPolicy
)

// Source is the source-format view of one entity.
type Source struct {
	Section      Section
	Name         string
	Type         string
	Description  string
	Vendor       string
	Version      string
	Properties   *tree.Map
	Capabilities *tree.Map
	Requirements []tosca.Requirement
	Artifacts    *tree.Map
	Members      []string
	Extra        map[string]any
}

func templateIdentity(st *tosca.ServiceTemplate) (vendor, version string) {
	if st == nil {
		return "", ""
	}

	return st.MetadataString("vendor"), st.MetadataString("version")
}

// FromNode builds the Source of a node template.
func FromNode(st *tosca.ServiceTemplate, name string, n *tosca.NodeTemplate) *Source {
	vendor, version := templateIdentity(st)

	return &Source{
		Section:      SectionNode,
		Name:         name,
		Type:         n.Type,
		Description:  n.Description,
		Vendor:       vendor,
		Version:      version,
		Properties:   propsOrEmpty(n.Properties),
		Capabilities: n.Capabilities,
		Requirements: n.Requirements,
		Artifacts:    n.Artifacts,
		Extra:        n.Extra,
	}
}

// FromGroup builds the Source of a group.
func FromGroup(st *tosca.ServiceTemplate, name string, g *tosca.Group) *Source {
	vendor, version := templateIdentity(st)

	return &Source{
		Section:     SectionGroup,
		Name:        name,
		Type:        g.Type,
		Description: g.Description,
		Vendor:      vendor,
		Version:     version,
		Properties:  propsOrEmpty(g.Properties),
		Members:     uniqueMembers(g.Members),
		Extra:       g.Extra,
	}
}

// FromPolicy builds the Source of a policy.
func FromPolicy(st *tosca.ServiceTemplate, name string, p *tosca.Policy) *Source {
	vendor, version := templateIdentity(st)

	return &Source{
		Section:     SectionPolicy,
		Name:        name,
		Type:        p.Type,
		Description: p.Description,
		Vendor:      vendor,
		Version:     version,
		Properties:  propsOrEmpty(p.Properties),
		Members:     uniqueMembers(p.Targets),
		Extra:       p.Extra,
	}
}

// uniqueMembers drops repeated member names, keeping first occurrences.
func uniqueMembers(names []string) []string {
	var out []string
	for _, n := range names {
		out = common.AppendUnique(out, n)
	}

	return out
}

func propsOrEmpty(m *tree.Map) *tree.Map {
	if m == nil {
		return tree.NewMap()
	}

	return m
}
