package tree

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"

	"github.com/ghodss/yaml"
	yamlv3 "gopkg.in/yaml.v3"
)

// DecodeError reports a document that does not have the expected shape.
type DecodeError struct {
	Line int
	Msg  string
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}

	return e.Msg
}

// FromNode converts a yaml.v3 node into a tree value.
// Mapping keys keep their document order; scalars are typed by their resolved tag.
func FromNode(node *yamlv3.Node) (any, error) {
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yamlv3.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return FromNode(node.Content[0])
	case yamlv3.AliasNode:
		return FromNode(node.Alias)
	case yamlv3.MappingNode:
		return mappingFromNode(node)
	case yamlv3.SequenceNode:
		out := make([]any, 0, len(node.Content))

		for _, item := range node.Content {
			v, err := FromNode(item)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
		}

		return out, nil
	case yamlv3.ScalarNode:
		return scalarFromNode(node)
	default:
		return nil, &DecodeError{Line: node.Line, Msg: fmt.Sprintf("unsupported node kind %d", node.Kind)}
	}
}

func mappingFromNode(node *yamlv3.Node) (*Map, error) {
	m := NewMap()

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yamlv3.ScalarNode {
			return nil, &DecodeError{Line: keyNode.Line, Msg: "mapping key is not a scalar"}
		}

		v, err := FromNode(valNode)
		if err != nil {
			return nil, err
		}

		m.Set(keyNode.Value, v)

		if valNode.Kind == yamlv3.ScalarNode && valNode.Style == 0 {
			m.SetLiteral(keyNode.Value, valNode.Value)
		}
	}

	return m, nil
}

func scalarFromNode(node *yamlv3.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, &DecodeError{Line: node.Line, Msg: err.Error()}
		}

		return b, nil
	case "!!int":
		var i int
		if err := node.Decode(&i); err != nil {
			return nil, &DecodeError{Line: node.Line, Msg: err.Error()}
		}

		return i, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, &DecodeError{Line: node.Line, Msg: err.Error()}
		}

		return f, nil
	default:
		return node.Value, nil
	}
}

// Decode parses a YAML or JSON document into a tree value.
// An empty document decodes to nil.
func Decode(data []byte) (any, error) {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return FromNode(&doc)
}

// DecodeMap parses a document whose root must be a mapping.
func DecodeMap(data []byte) (*Map, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}

	m, ok := v.(*Map)
	if !ok {
		return nil, &DecodeError{Msg: "document root is not a mapping"}
	}

	return m, nil
}

// EncodeOptions controls how tree values are converted to YAML nodes.
type EncodeOptions struct {
	// SortKeys emits mapping keys in lexical order instead of insertion order.
	SortKeys bool
	// PlainNumericStrings emits strings such as "1.0" without quotes.
	PlainNumericStrings bool
}

// Node converts v into a yaml.v3 node tree.
func (o EncodeOptions) Node(v any) (*yamlv3.Node, error) {
	switch t := v.(type) {
	case *yamlv3.Node:
		return t, nil
	case *Map:
		keys := t.Keys()
		if o.SortKeys {
			slices.Sort(keys)
		}

		node := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			valNode, err := o.Node(t.Value(k))
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}

			node.Content = append(node.Content, o.String(k), valNode)
		}

		return node, nil
	case map[string]any:
		m := NewMap()
		for _, k := range SortedKeys(t) {
			m.Set(k, t[k])
		}

		return o.Node(m)
	case []any:
		node := &yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq"}

		for i, item := range t {
			itemNode, err := o.Node(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}

			node.Content = append(node.Content, itemNode)
		}

		return node, nil
	case []string:
		node := &yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq"}
		for _, s := range t {
			node.Content = append(node.Content, o.String(s))
		}

		return node, nil
	case []*Map:
		items := make([]any, len(t))
		for i, m := range t {
			items[i] = m
		}

		return o.Node(items)
	case string:
		if o.PlainNumericStrings && LooksNumeric(t) {
			return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: t}, nil
		}

		return o.String(t), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(t)), nil
	case nil:
		return scalarNode("!!null", "null"), nil
	case float64:
		return scalarNode("!!float", FormatFloat(t)), nil
	case float32:
		return scalarNode("!!float", FormatFloat(float64(t))), nil
	}

	if i, ok := ToInt(v); ok {
		return scalarNode("!!int", strconv.Itoa(i)), nil
	}

	node := &yamlv3.Node{}
	if err := node.Encode(v); err != nil {
		return nil, err
	}

	return node, nil
}

// String returns a string scalar node that round-trips as a string.
func (o EncodeOptions) String(s string) *yamlv3.Node {
	return scalarNode("!!str", s)
}

func scalarNode(tag, value string) *yamlv3.Node {
	return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: tag, Value: value}
}

// Encode renders v as a YAML document with two-space indentation.
func Encode(v any, opts EncodeOptions) ([]byte, error) {
	node, err := opts.Node(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(node); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// EncodeJSON renders v as JSON. Object keys come out sorted.
func EncodeJSON(v any) ([]byte, error) {
	data, err := Encode(v, EncodeOptions{})
	if err != nil {
		return nil, err
	}

	return yaml.YAMLToJSON(data)
}

// Plain converts maps to map[string]any recursively, dropping key order.
func Plain(v any) any {
	switch t := v.(type) {
	case *Map:
		out := make(map[string]any, t.Len())
		t.Range(func(k string, item any) bool {
			out[k] = Plain(item)
			return true
		})

		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Plain(item)
		}

		return out
	default:
		return v
	}
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
