package tosca

// parentOf returns the declared parent of typeName, looking at the template's
// own catalogs before the normative table.
func (st *ServiceTemplate) parentOf(typeName string) (string, bool) {
	if st != nil {
		for _, catalog := range []Ordered[TypeDef]{st.NodeTypes, st.GroupTypes, st.PolicyTypes, st.CapabilityTypes, st.DataTypes} {
			if def, ok := catalog.Get(typeName); ok && def.DerivedFrom != "" {
				return def.DerivedFrom, true
			}
		}
	}

	parent, ok := normativeParents[typeName]

	return parent, ok
}

// Ancestors returns typeName followed by its ancestors, nearest first.
// st may be nil, in which case only the normative table is used.
func (st *ServiceTemplate) Ancestors(typeName string) []string {
	chain := []string{typeName}
	seen := map[string]bool{typeName: true}

	for cur := typeName; ; {
		parent, ok := st.parentOf(cur)
		if !ok || seen[parent] {
			return chain
		}

		seen[parent] = true
		chain = append(chain, parent)
		cur = parent
	}
}

// DerivesFrom reports whether typeName is base or derives from it.
func (st *ServiceTemplate) DerivesFrom(typeName, base string) bool {
	for _, t := range st.Ancestors(typeName) {
		if t == base {
			return true
		}
	}

	return false
}
