package assemble

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/tree"
)

// TopLevelOrder is the canonical order of template sections.
var TopLevelOrder = []string{
	"tosca_definitions_version",
	"description",
	"metadata",
	"data_types",
	"capability_types",
	"node_types",
	"group_types",
	"policy_types",
	"topology_template",
}

// TopologyOrder is the canonical order of topology sections.
var TopologyOrder = []string{"description", "inputs", "node_templates", "groups", "policies", "outputs"}

// EntityOrder is the priority list of keys within a type, node, group or policy.
var EntityOrder = []string{
	"type",
	"derived_from",
	"description",
	"members",
	"properties",
	"capabilities",
	"requirements",
	"artifacts",
	"interfaces",
}

// InputOrder is the priority list of keys within an input.
var InputOrder = []string{"type", "description", "default", "required", "constraints"}

var (
	catalogs     = []string{"data_types", "capability_types", "node_types", "group_types", "policy_types"}
	sortedFields = []string{"properties", "capabilities", "artifacts", "interfaces"}
)

// Assembler orders service template trees.
type Assembler struct {
	log   logrus.FieldLogger
	diags *diagnostic.Diagnostics
}

// New creates an Assembler. Appended keys are reported to diags, which may be nil.
func New(log logrus.FieldLogger, diags *diagnostic.Diagnostics) *Assembler {
	if log == nil {
		log = logrus.StandardLogger()
	}

	if diags == nil {
		diags = &diagnostic.Diagnostics{}
	}

	return &Assembler{log: log, diags: diags}
}

// Order returns a copy of root in canonical order.
func (a *Assembler) Order(root *tree.Map) *tree.Map {
	return a.ordered(root, TopLevelOrder, "service template", func(key string, v any) any {
		switch {
		case key == "topology_template":
			return a.topology(asMap(v))
		case slices.Contains(catalogs, key):
			return a.catalog(key, asMap(v))
		case key == "metadata":
			return sortTree(v)
		default:
			return tree.Clone(v)
		}
	})
}

func (a *Assembler) topology(topo *tree.Map) any {
	return a.ordered(topo, TopologyOrder, "topology_template", func(key string, v any) any {
		switch key {
		case "inputs":
			return a.each(asMap(v), func(name string, in *tree.Map) *tree.Map {
				return a.ordered(in, InputOrder, name, cloneValue)
			})
		case "node_templates", "groups":
			return a.each(asMap(v), a.entity)
		case "policies":
			return a.policies(v)
		default:
			return tree.Clone(v)
		}
	})
}

// policies accepts the mapping form and the list of single-key mappings.
func (a *Assembler) policies(v any) any {
	list, ok := v.([]any)
	if !ok {
		return a.each(asMap(v), a.entity)
	}

	out := make([]any, len(list))

	for i, item := range list {
		m, ok := item.(*tree.Map)
		if !ok {
			out[i] = tree.Clone(item)
			continue
		}

		out[i] = a.each(m, a.entity)
	}

	return out
}

// catalog sorts type definitions by name and orders each one.
func (a *Assembler) catalog(section string, m *tree.Map) *tree.Map {
	out := tree.NewMap()

	keys := m.Keys()
	slices.Sort(keys)

	for _, name := range keys {
		def, ok := m.Value(name).(*tree.Map)
		if !ok {
			out.Set(name, tree.Clone(m.Value(name)))
			continue
		}

		out.Set(name, a.entity(name, def))
	}

	a.log.WithFields(logrus.Fields{"section": section, "types": len(keys)}).Debug("type catalog ordered")

	return out
}

func (a *Assembler) entity(name string, m *tree.Map) *tree.Map {
	return a.ordered(m, EntityOrder, name, func(key string, v any) any {
		if slices.Contains(sortedFields, key) {
			return sortTree(v)
		}

		return tree.Clone(v)
	})
}

// each applies fn to every map value of m, keeping m's order.
func (a *Assembler) each(m *tree.Map, fn func(name string, v *tree.Map) *tree.Map) *tree.Map {
	out := tree.NewMap()

	m.Range(func(name string, v any) bool {
		if sub, ok := v.(*tree.Map); ok {
			out.Set(name, fn(name, sub))
		} else {
			out.Set(name, tree.Clone(v))
		}

		return true
	})

	return out
}

// ordered copies m with the priority keys first and the others appended in
// lexical order. value maps each kept value.
func (a *Assembler) ordered(m *tree.Map, priority []string, owner string, value func(key string, v any) any) *tree.Map {
	out := tree.NewMap()

	for _, key := range priority {
		if v, ok := m.Get(key); ok {
			out.Set(key, value(key, v))
		}
	}

	var extra []string

	for _, key := range m.Keys() {
		if !slices.Contains(priority, key) {
			extra = append(extra, key)
		}
	}

	slices.Sort(extra)

	for _, key := range extra {
		a.log.WithFields(logrus.Fields{"entity": owner, "key": key}).
			Info("appending key outside the canonical order")
		a.diags.AddInfo(diagnostic.CodeAppendedKey,
			fmt.Sprintf("key %q is not in the canonical order and is appended", key), owner, "")

		out.Set(key, value(key, m.Value(key)))
	}

	return out
}

func cloneValue(_ string, v any) any {
	return tree.Clone(v)
}

func asMap(v any) *tree.Map {
	m, _ := v.(*tree.Map)
	return m
}

// sortTree copies v with every map sorted by key. List order is kept.
func sortTree(v any) any {
	switch t := v.(type) {
	case *tree.Map:
		out := tree.NewMap()

		keys := t.Keys()
		slices.Sort(keys)

		for _, k := range keys {
			out.Set(k, sortTree(t.Value(k)))
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = sortTree(item)
		}

		return out
	default:
		return v
	}
}
