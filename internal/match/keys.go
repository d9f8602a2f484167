package match

import (
	"strings"

	"descriptor-translator/internal/tree"
)

// Direction selects the vocabulary keys are renamed into.
type Direction int

const (
	// ToYANG renames TOSCA keys (underscores) into YANG keys (hyphens).
	ToYANG Direction = iota
	// ToTOSCA renames YANG keys into TOSCA keys.
	ToTOSCA
)

// DefaultExceptions lists TOSCA keys whose YANG name is not a plain separator swap.
var DefaultExceptions = map[string]string{
	"num_cpus":  "vcpu-count",
	"mem_size":  "memory-mb",
	"disk_size": "storage-gb",
}

// KeyMapper renames keys between the TOSCA and YANG vocabularies.
type KeyMapper struct {
	toYANG  map[string]string
	toTOSCA map[string]string
}

// Keys is the mapper used by the translators.
var Keys = NewKeyMapper(DefaultExceptions)

// NewKeyMapper creates a mapper with the given TOSCA->YANG exceptions.
func NewKeyMapper(exceptions map[string]string) *KeyMapper {
	k := &KeyMapper{
		toYANG:  make(map[string]string, len(exceptions)),
		toTOSCA: make(map[string]string, len(exceptions)),
	}

	for tosca, yang := range exceptions {
		k.toYANG[tosca] = yang
		k.toTOSCA[yang] = tosca
	}

	return k
}

// YANG returns the YANG name of a TOSCA key.
func (k *KeyMapper) YANG(key string) string {
	if v, ok := k.toYANG[key]; ok {
		return v
	}

	return strings.ReplaceAll(key, "_", "-")
}

// TOSCA returns the TOSCA name of a YANG key.
func (k *KeyMapper) TOSCA(key string) string {
	if v, ok := k.toTOSCA[key]; ok {
		return v
	}

	return strings.ReplaceAll(key, "-", "_")
}

// Rename returns key renamed into dir's vocabulary.
func (k *KeyMapper) Rename(key string, dir Direction) string {
	if dir == ToTOSCA {
		return k.TOSCA(key)
	}

	return k.YANG(key)
}

// RenameTree returns a copy of v with every map key renamed into dir's vocabulary.
// Values and their number literals are not touched.
func (k *KeyMapper) RenameTree(v any, dir Direction) any {
	switch t := v.(type) {
	case *tree.Map:
		out := tree.NewMap()
		t.Range(func(key string, item any) bool {
			name := k.Rename(key, dir)
			out.Set(name, k.RenameTree(item, dir))

			if lit, ok := t.Literal(key); ok {
				out.SetLiteral(name, lit)
			}

			return true
		})

		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = k.RenameTree(item, dir)
		}

		return out
	default:
		return v
	}
}

// RenameMap is RenameTree for a map root.
func (k *KeyMapper) RenameMap(m *tree.Map, dir Direction) *tree.Map {
	if m == nil {
		return nil
	}

	out, _ := k.RenameTree(m, dir).(*tree.Map)

	return out
}
