package entity

import (
	"descriptor-translator/internal/tree"
)

// VNF property keys that belong to the constituent-vnfd record instead of the vnfd.
const (
	keyMemberIndex    = "member-vnf-index"
	keyStartByDefault = "start-by-default"
)

// VNF translates a VNF node into a vnfd entry and its constituent-vnfd record.
// Compute nodes and connection points are added to it during resolution.
type VNF struct {
	Base
	memberIndex    int
	startByDefault any
}

// NewVNF is the Constructor of VNF.
func NewVNF(src *Source) Translator {
	return &VNF{Base: newBase(src, KindVNF)}
}

func (v *VNF) MemberIndex() int     { return v.memberIndex }
func (v *VNF) SetMemberIndex(i int) { v.memberIndex = i }

// ID returns the vnfd id.
func (v *VNF) ID() string {
	return v.props.StringOr("id", v.src.Name)
}

func (v *VNF) HandleProperties(ctx *Context) error {
	props := v.renamed(ctx)

	if raw, ok := props.Get(keyMemberIndex); ok {
		idx, isInt := tree.ToInt(raw)
		if !isInt || idx < 1 {
			return v.invalid("%s must be a positive integer, got %v", keyMemberIndex, raw)
		}

		v.memberIndex = idx
		props.Delete(keyMemberIndex)
	}

	if raw, ok := props.Get(keyStartByDefault); ok {
		v.startByDefault = raw
		props.Delete(keyStartByDefault)
	}

	props.SetDefault("id", v.src.Name)
	props.SetDefault("name", v.src.Name)

	if v.src.Description != "" {
		props.SetDefault("description", v.src.Description)
	}

	coerceStringLeaves(props)

	v.props = props

	ctx.Logger(v).WithField("member", v.memberIndex).Debug("vnf properties mapped")

	return nil
}

func (v *VNF) GenerateOutput(out *Output) error {
	out.AddVNFD(v.props)

	rec := tree.MapOf(
		keyMemberIndex, v.memberIndex,
		"vnfd-id-ref", v.ID(),
	)
	if v.startByDefault != nil {
		rec.Set(keyStartByDefault, v.startByDefault)
	}

	out.AppendNSD("constituent-vnfd", rec)

	return nil
}
