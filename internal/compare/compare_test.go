package compare

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"descriptor-translator/internal/tree"
)

func decode(t *testing.T, src string) *tree.Map {
	t.Helper()

	m, err := tree.DecodeMap([]byte(src))
	require.NoError(t, err)

	return m
}

func TestCompare_Equal(t *testing.T) {
	a := decode(t, `
name: ns
count: 2
vld:
- id: a
  vnfd-connection-point-ref:
  - {member-vnf-index-ref: 1, vnfd-connection-point-ref: cp0}
  - {member-vnf-index-ref: 2, vnfd-connection-point-ref: cp1}
constraint:
- allowedValues: [b, a]
`)
	b := decode(t, `
vld:
- vnfd-connection-point-ref:
  - {vnfd-connection-point-ref: cp1, member-vnf-index-ref: 2}
  - {vnfd-connection-point-ref: cp0, member-vnf-index-ref: 1.0}
  id: a
count: 2.0
constraint:
- allowedValues: [a, b]
name: ns
`)

	r := New(Options{}).Compare(a, b)
	assert.True(t, r.Equal(), r.String())
	assert.Empty(t, r.Diff)
	assert.Equal(t, "descriptors are equal", r.String())
}

func TestCompare_Differences(t *testing.T) {
	a := decode(t, `
name: ns
version: "1.0"
tags: [x, y]
vld:
- id: a
  type: ELAN
`)
	b := decode(t, `
name: ns2
version: 1.0
tags: [y, x, z]
vld:
- id: a
extra: true
`)

	r := New(Options{}).Compare(a, b)
	require.False(t, r.Equal())

	assert.Equal(t, []Difference{
		{Path: "extra", Kind: Added, Generated: true},
		{Path: "name", Kind: ValueChanged, Expected: "ns", Generated: "ns2"},
		{Path: "tags[0]", Kind: ValueChanged, Expected: "x", Generated: "y"},
		{Path: "tags[1]", Kind: ValueChanged, Expected: "y", Generated: "x"},
		{Path: "tags[2]", Kind: Added, Generated: "z"},
		{Path: "version", Kind: TypeChanged, Expected: "1.0", Generated: 1.0},
		{Path: "vld[0].type", Kind: Removed, Expected: "ELAN"},
	}, r.Differences)

	assert.NotEmpty(t, r.Diff)
	assert.Contains(t, r.String(), "7 difference(s): 2 added, 1 removed, 1 type changed, 3 value changed")
}

func TestCompare_CustomOrderlessKey(t *testing.T) {
	a := decode(t, "tags: [x, y]\n")
	b := decode(t, "tags: [y, x]\n")

	assert.False(t, New(Options{}).Compare(a, b).Equal())
	assert.True(t, New(Options{OrderlessKeys: []string{"tags"}}).Compare(a, b).Equal())
}

func TestNormalize(t *testing.T) {
	e := New(Options{})

	got := e.Normalize(tree.MapOf(
		"n", 3,
		"dependsOn", []any{"b", "a"},
		"nested", tree.MapOf("list", []any{2, "x"}),
	))

	assert.Equal(t, map[string]any{
		"n":         3.0,
		"dependsOn": []any{"a", "b"},
		"nested":    map[string]any{"list": []any{2.0, "x"}},
	}, got)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "a.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("b: 1\na: [x]\n"), 0o600))

	jsonPath := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"a": ["x"], "b": 1}`), 0o600))

	fromYAML, err := LoadFile(yamlPath, "yaml")
	require.NoError(t, err)

	fromJSON, err := LoadFile(jsonPath, "json")
	require.NoError(t, err)

	assert.True(t, New(Options{}).Compare(fromYAML, fromJSON).Equal())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"), "yaml")
	assert.Error(t, err)

	_, err = LoadFile(yamlPath, "xml")
	assert.ErrorContains(t, err, "unknown descriptor format")
}
