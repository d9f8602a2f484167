package totosca

import (
	"fmt"
	"slices"
	"strconv"

	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/entity"
	"descriptor-translator/internal/match"
	"descriptor-translator/internal/tosca"
	"descriptor-translator/internal/tree"
)

// servicePrimitives emits one policy whose properties are keyed by primitive name.
func (b *Builder) servicePrimitives(records []*tree.Map) error {
	if len(records) == 0 {
		return nil
	}

	props := tree.NewMap()

	for i, p := range records {
		name, ok := p.GetString("name")
		if !ok || name == "" {
			return diagnostic.Validationf(strconv.Itoa(i), ListServicePrimitive, "primitive has no name")
		}

		if props.Has(name) {
			return diagnostic.Validationf(name, ListServicePrimitive, "duplicate primitive name")
		}

		if script, ok := p.GetString("user-defined-script"); ok {
			b.Files.AddScript(script)
		}

		props.Set(name, b.toTOSCA(p, "name"))
		b.primitives = append(b.primitives, name)
	}

	b.addPolicy("ns_service_primitives", tosca.PolicyServicePrimitives, props)
	b.count(entity.KindConfigPrimitives)

	return nil
}

func (b *Builder) scalingGroups(records []*tree.Map) error {
	for i, sg := range records {
		name, ok := sg.GetString("name")
		if !ok || name == "" {
			return diagnostic.Validationf(strconv.Itoa(i), ListScaling, "scaling group has no name")
		}

		props := tree.MapOf("name", name)

		for _, key := range [][2]string{
			{"min-instance-count", "min_instances"},
			{"max-instance-count", "max_instances"},
		} {
			v, ok := sg.Get(key[0])
			if !ok {
				continue
			}

			n, isInt := tree.ToInt(v)
			if !isInt {
				return diagnostic.Validationf(name, ListScaling, "%s must be an integer, got %v", key[0], v)
			}

			props.Set(key[1], n)
		}

		members, err := b.scalingMembers(name, sg.Maps("vnfd-member"))
		if err != nil {
			return err
		}

		if members.Len() > 0 {
			props.Set("vnfd_members", members)
		}

		actions, err := b.scalingActions(name, sg.Maps("scaling-config-action"))
		if err != nil {
			return err
		}

		if actions.Len() > 0 {
			props.Set("config_actions", actions)
		}

		b.addPolicy(name, tosca.PolicyScaling, props)
		b.count(entity.KindScalingGroup)
	}

	return nil
}

func (b *Builder) scalingMembers(group string, records []*tree.Map) (*tree.Map, error) {
	members := tree.NewMap()

	for _, m := range records {
		idx, ok := m.GetInt("member-vnf-index-ref")
		if !ok {
			return nil, diagnostic.Validationf(group, ListScaling, "vnfd-member has no member-vnf-index-ref")
		}

		info, ok := b.members[idx]
		if !ok {
			return nil, diagnostic.Validationf(group, ListScaling, "unknown vnfd member %d", idx).
				WithSuggestions(b.memberIndexes())
		}

		count := 1
		if v, ok := m.Get("count"); ok {
			if count, ok = tree.ToInt(v); !ok || count < 1 {
				return nil, diagnostic.Validationf(group, ListScaling,
					"member %d count must be a positive integer, got %v", idx, v)
			}
		}

		members.Set(info.node, count)
	}

	return members, nil
}

func (b *Builder) memberIndexes() []string {
	out := make([]string, 0, len(b.vnfs))
	for _, info := range b.vnfs {
		out = append(out, strconv.Itoa(info.index))
	}

	return out
}

func (b *Builder) scalingActions(group string, records []*tree.Map) (*tree.Map, error) {
	actions := tree.NewMap()

	for _, a := range records {
		trigger, ok := a.GetString("trigger")
		if !ok || trigger == "" {
			return nil, diagnostic.Validationf(group, ListScaling, "scaling-config-action has no trigger")
		}

		primitive, _ := a.GetString("ns-service-primitive-name-ref")
		if !slices.Contains(b.primitives, primitive) {
			return nil, diagnostic.Validationf(group, ListScaling,
				"config action %q names unknown primitive %q", trigger, primitive).
				WithSuggestions(match.Suggest(primitive, b.primitives, maxSuggestions))
		}

		actions.Set(b.keys.TOSCA(trigger), primitive)
	}

	return actions, nil
}

// initialConfigPrimitives emits one policy per primitive.
func (b *Builder) initialConfigPrimitives(records []*tree.Map) error {
	for _, p := range records {
		seq, ok := p.GetInt("seq")
		if !ok {
			return diagnostic.Validationf(p.StringOr("name", ""), ListInitialConfig,
				"seq must be an integer, got %v", p.Value("seq"))
		}

		name := p.StringOr("name", fmt.Sprintf("initial_config_%d", seq))

		props := b.toTOSCA(p)
		props.Set("name", name)
		props.Set("seq", seq)

		if script, ok := p.GetString("user-defined-script"); ok {
			b.Files.AddScript(script)
		}

		b.addPolicy(name, tosca.PolicyInitialConfigPrimitive, props)
		b.count(entity.KindInitialConfigPrimitive)
	}

	return nil
}
