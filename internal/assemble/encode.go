package assemble

import (
	"descriptor-translator/internal/tree"
)

// Format is an output serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// EncodeTemplate serializes an ordered service template. In YAML,
// numeric-looking strings are written unquoted, which is how the
// orchestrator emits them.
func EncodeTemplate(root *tree.Map, format Format) ([]byte, error) {
	if format == FormatJSON {
		return tree.EncodeJSON(root)
	}

	return tree.Encode(root, tree.EncodeOptions{PlainNumericStrings: true})
}

// EncodeDescriptor serializes a YANG descriptor tree in its own key order.
func EncodeDescriptor(root *tree.Map, format Format) ([]byte, error) {
	if format == FormatJSON {
		return tree.EncodeJSON(root)
	}

	return tree.Encode(root, tree.EncodeOptions{})
}
