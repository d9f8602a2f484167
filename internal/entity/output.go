package entity

import (
	"descriptor-translator/internal/tree"
)

// YANG catalog keys.
const (
	KeyNSDCatalog  = "nsd:nsd-catalog"
	KeyVNFDCatalog = "vnfd:vnfd-catalog"
	KeyNSD         = "nsd"
	KeyVNFD        = "vnfd"
)

// Output is the YANG descriptor tree under construction.
type Output struct {
	Root *tree.Map
	nsd  *tree.Map
}

// NewOutput creates a tree with one empty NSD and an empty VNFD catalog.
func NewOutput() *Output {
	nsd := tree.NewMap()

	root := tree.MapOf(
		KeyNSDCatalog, tree.MapOf(KeyNSD, []any{nsd}),
		KeyVNFDCatalog, tree.MapOf(KeyVNFD, []any{}),
	)

	return &Output{Root: root, nsd: nsd}
}

// NSD returns the NSD record.
func (o *Output) NSD() *tree.Map {
	return o.nsd
}

// AddVNFD appends a record to the VNFD catalog.
func (o *Output) AddVNFD(vnfd *tree.Map) {
	o.Root.GetMap(KeyVNFDCatalog).Append(KeyVNFD, vnfd)
}

// VNFDs returns the VNFD records.
func (o *Output) VNFDs() []*tree.Map {
	return o.Root.GetMap(KeyVNFDCatalog).Maps(KeyVNFD)
}

// AppendNSD appends item to the NSD list under key.
func (o *Output) AppendNSD(key string, item any) {
	o.nsd.Append(key, item)
}
