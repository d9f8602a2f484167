package entity

import (
	"slices"

	"descriptor-translator/internal/diagnostic"
)

// Member is implemented by entities that occupy a constituent member index.
type Member interface {
	MemberIndex() int
	SetMemberIndex(int)
}

// PrimitiveSet is implemented by entities that declare named service primitives.
type PrimitiveSet interface {
	HasPrimitive(name string) bool
}

// Unit is the ordered set of translators of one run.
type Unit struct {
	entities []Translator
	nodes    map[string]Translator
}

// NewUnit creates an empty Unit.
func NewUnit() *Unit {
	return &Unit{nodes: make(map[string]Translator)}
}

// Add appends t. Node templates must have unique names.
func (u *Unit) Add(t Translator) error {
	if t.Source().Section == SectionNode {
		if _, dup := u.nodes[t.Name()]; dup {
			return diagnostic.Validationf(t.Name(), t.Type(), "duplicate node template name")
		}

		u.nodes[t.Name()] = t
	}

	u.entities = append(u.entities, t)

	return nil
}

// Entities returns all translators in insertion order.
func (u *Unit) Entities() []Translator {
	return slices.Clone(u.entities)
}

// Get returns the node translator with the given name.
func (u *Unit) Get(name string) (Translator, bool) {
	t, ok := u.nodes[name]
	return t, ok
}

// OfKind returns the translators of the given kind in insertion order.
func (u *Unit) OfKind(k Kind) []Translator {
	var out []Translator

	for _, t := range u.entities {
		if t.Kind() == k {
			out = append(out, t)
		}
	}

	return out
}

// Names returns the names of translators of the given kinds in insertion order.
func (u *Unit) Names(kinds ...Kind) []string {
	var out []string

	for _, t := range u.entities {
		if slices.Contains(kinds, t.Kind()) {
			out = append(out, t.Name())
		}
	}

	return out
}

// OwnerOf returns the VNF that a component group assigns the compute node to.
func (u *Unit) OwnerOf(compute string) (Translator, bool) {
	for _, g := range u.OfKind(KindComponentGroup) {
		if !slices.Contains(g.Source().Members, compute) {
			continue
		}

		vnf, ok := g.Properties().GetString("vnf")
		if !ok {
			continue
		}

		if t, ok := u.Get(vnf); ok && t.Kind() == KindVNF {
			return t, true
		}
	}

	return nil, false
}

// HasPrimitive reports whether any entity declares the named service primitive.
func (u *Unit) HasPrimitive(name string) bool {
	for _, t := range u.entities {
		if ps, ok := t.(PrimitiveSet); ok && ps.HasPrimitive(name) {
			return true
		}
	}

	return false
}

// Primitives returns the names of all declared service primitives.
func (u *Unit) Primitives() []string {
	var out []string

	for _, t := range u.OfKind(KindConfigPrimitives) {
		if cp, ok := t.(*ConfigPrimitives); ok {
			out = append(out, cp.Names()...)
		}
	}

	return out
}

// AssignMemberIndexes gives every member without an index the next free one,
// in insertion order. Explicit indexes must be unique.
func (u *Unit) AssignMemberIndexes() error {
	used := make(map[int]string)
	next := 1

	for _, t := range u.entities {
		m, ok := t.(Member)
		if !ok || m.MemberIndex() == 0 {
			continue
		}

		idx := m.MemberIndex()
		if other, dup := used[idx]; dup {
			return diagnostic.Validationf(t.Name(), t.Type(),
				"member index %d is already used by %s", idx, other)
		}

		used[idx] = t.Name()
		next = max(next, idx+1)
	}

	for _, t := range u.entities {
		m, ok := t.(Member)
		if !ok || m.MemberIndex() != 0 {
			continue
		}

		m.SetMemberIndex(next)
		next++
	}

	return nil
}

// VNFTarget is the view of a VNF the resolver writes into.
type VNFTarget interface {
	Translator
	Member
	ID() string
}
