package tree

import (
	"slices"

	"gopkg.in/yaml.v3"
)

// Map is a string-keyed container that remembers insertion order.
// The zero value is not usable; create maps with NewMap or MapOf.
// Read accessors are safe on a nil *Map and behave as on an empty map.
type Map struct {
	keys   []string
	values map[string]any
	// literals holds the source text of numbers decoded from plain scalars.
	literals map[string]string
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// MapOf builds a Map from alternating key/value arguments.
// It panics if a key is not a string or the argument count is odd.
func MapOf(kv ...any) *Map {
	if len(kv)%2 != 0 {
		panic("tree.MapOf: odd number of arguments")
	}

	m := NewMap()

	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic("tree.MapOf: key is not a string")
		}

		m.Set(key, kv[i+1])
	}

	return m
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}

	_, ok := m.values[key]

	return ok
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}

	v, ok := m.values[key]

	return v, ok
}

// Value returns the value stored under key or nil.
func (m *Map) Value(key string) any {
	v, _ := m.Get(key)
	return v
}

// Set stores v under key. A new key is appended; an existing key keeps its position.
func (m *Map) Set(key string, v any) *Map {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = v
	delete(m.literals, key)

	return m
}

// Literal returns the document text of the number stored under key, if it was decoded from one.
func (m *Map) Literal(key string) (string, bool) {
	if m == nil {
		return "", false
	}

	lit, ok := m.literals[key]

	return lit, ok
}

// SetLiteral records the document text of the number under key.
// It is a no-op when key is absent or does not hold a number.
func (m *Map) SetLiteral(key, lit string) {
	if !IsNumber(m.values[key]) {
		return
	}

	if m.literals == nil {
		m.literals = make(map[string]string)
	}

	m.literals[key] = lit
}

// SetDefault stores v under key only if key is absent or holds an empty string.
func (m *Map) SetDefault(key string, v any) {
	if cur, ok := m.values[key]; ok {
		if s, isStr := cur.(string); !isStr || s != "" {
			return
		}
	}

	m.Set(key, v)
}

// Delete removes key.
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}

	delete(m.values, key)
	delete(m.literals, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// Rename moves the value under from to to, keeping the position of from.
// It is a no-op when from is absent. An existing to is overwritten.
func (m *Map) Rename(from, to string) {
	if from == to || !m.Has(from) {
		return
	}

	v := m.values[from]
	lit, hasLit := m.literals[from]
	m.Delete(to)

	idx := slices.Index(m.keys, from)
	m.keys[idx] = to

	delete(m.values, from)
	delete(m.literals, from)
	m.values[to] = v

	if hasLit {
		m.SetLiteral(to, lit)
	}
}

// Range calls fn for each key in insertion order until fn returns false.
func (m *Map) Range(fn func(key string, v any) bool) {
	if m == nil {
		return
	}

	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// GetString returns the value under key rendered as a string.
// Numbers and booleans are converted; maps and lists are not.
// A decoded number renders as its document text, so 1.10 stays "1.10".
func (m *Map) GetString(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}

	if lit, ok := m.Literal(key); ok {
		return lit, true
	}

	return ToString(v)
}

// StringOr returns the string under key or def when absent or empty.
func (m *Map) StringOr(key, def string) string {
	if s, ok := m.GetString(key); ok && s != "" {
		return s
	}

	return def
}

// GetInt returns the value under key as an int.
func (m *Map) GetInt(key string) (int, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}

	return ToInt(v)
}

// GetMap returns the nested map under key or nil.
func (m *Map) GetMap(key string) *Map {
	v, _ := m.Get(key)
	sub, _ := v.(*Map)

	return sub
}

// GetList returns the list under key or nil.
func (m *Map) GetList(key string) []any {
	v, _ := m.Get(key)
	list, _ := v.([]any)

	return list
}

// Maps returns the map elements of the list under key, skipping other values.
func (m *Map) Maps(key string) []*Map {
	list := m.GetList(key)
	out := make([]*Map, 0, len(list))

	for _, item := range list {
		if sub, ok := item.(*Map); ok {
			out = append(out, sub)
		}
	}

	return out
}

// Append appends v to the list under key, creating the list when needed.
func (m *Map) Append(key string, v any) {
	m.Set(key, append(m.GetList(key), v))
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}

	out := NewMap()
	for _, k := range m.keys {
		out.Set(k, Clone(m.values[k]))

		if lit, ok := m.literals[k]; ok {
			out.SetLiteral(k, lit)
		}
	}

	return out
}

// Clone deep-copies maps and lists; scalars are returned as is.
func Clone(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Clone(item)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = Clone(item)
		}

		return out
	default:
		return v
	}
}

// UnmarshalYAML decodes a mapping node, keeping key order.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	v, err := FromNode(node)
	if err != nil {
		return err
	}

	decoded, ok := v.(*Map)
	if !ok {
		if v == nil {
			*m = Map{values: make(map[string]any)}
			return nil
		}

		return &DecodeError{Line: node.Line, Msg: "expected a mapping"}
	}

	*m = *decoded

	return nil
}

// MarshalYAML encodes the map in insertion order.
func (m *Map) MarshalYAML() (any, error) {
	return EncodeOptions{}.Node(m)
}
