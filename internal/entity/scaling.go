package entity

import (
	"descriptor-translator/internal/match"
	"descriptor-translator/internal/tree"
)

// ScalingGroup translates a scaling policy into a scaling-group-descriptor.
type ScalingGroup struct {
	Base
}

// NewScalingGroup is the Constructor of ScalingGroup.
func NewScalingGroup(src *Source) Translator {
	return &ScalingGroup{Base: newBase(src, KindScalingGroup)}
}

func (s *ScalingGroup) HandleProperties(ctx *Context) error {
	in := s.src.Properties
	props := tree.MapOf("name", in.StringOr("name", s.src.Name))

	for _, key := range [][2]string{
		{"min_instances", "min-instance-count"},
		{"max_instances", "max-instance-count"},
	} {
		if !in.Has(key[0]) {
			continue
		}

		n, err := s.requireInt(in, key[0])
		if err != nil {
			return err
		}

		props.Set(key[1], n)
	}

	if lo, hasLo := props.GetInt("min-instance-count"); hasLo {
		if hi, hasHi := props.GetInt("max-instance-count"); hasHi && lo > hi {
			return s.invalid("min_instances %d exceeds max_instances %d", lo, hi)
		}
	}

	var err error

	in.GetMap("vnfd_members").Range(func(member string, v any) bool {
		count, ok := tree.ToInt(v)
		if !ok || count < 1 {
			err = s.invalid("member %q count must be a positive integer, got %v", member, v)
			return false
		}

		s.addRef(CrossReference{Kind: RefScalingMember, To: member, Count: count})

		return true
	})

	if err != nil {
		return err
	}

	in.GetMap("config_actions").Range(func(trigger string, v any) bool {
		primitive, ok := tree.ToString(v)
		if !ok || primitive == "" {
			err = s.invalid("config action %q must name a primitive", trigger)
			return false
		}

		s.addRef(CrossReference{
			Kind:    RefConfigAction,
			To:      primitive,
			Trigger: ctx.Keys.Rename(trigger, match.ToYANG),
		})

		return true
	})

	s.props = props

	return err
}

func (s *ScalingGroup) GenerateOutput(out *Output) error {
	out.AppendNSD("scaling-group-descriptor", s.props)
	return nil
}
