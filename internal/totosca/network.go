package totosca

import (
	"slices"
	"strconv"

	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/entity"
	"descriptor-translator/internal/match"
	"descriptor-translator/internal/tosca"
	"descriptor-translator/internal/tree"
)

var networkTypes = map[string]string{
	tosca.KindELAN:  tosca.TypeELANRiftIO,
	tosca.KindELINE: tosca.TypeELINERiftIO,
	tosca.KindETREE: tosca.TypeETREERiftIO,
}

func (b *Builder) vlds(records []*tree.Map) error {
	for i, vld := range records {
		name := vld.StringOr("name", vld.StringOr("id", ""))
		if name == "" {
			return diagnostic.Validationf(strconv.Itoa(i), ListVLD, "vld has neither name nor id")
		}

		kind := vld.StringOr("type", tosca.KindELAN)

		typeName, ok := networkTypes[kind]
		if !ok {
			return diagnostic.Validationf(name, ListVLD, "unknown network type %q", kind)
		}

		node := b.uniqueName(name)

		for _, ref := range vld.Maps("vnfd-connection-point-ref") {
			if err := b.link(name, node, ref); err != nil {
				return err
			}
		}

		b.nodes.Set(node, tree.MapOf(
			"type", typeName,
			"properties", b.toTOSCA(vld, "type", "vnfd-connection-point-ref"),
		))
		b.count(entity.KindNetwork)
	}

	return nil
}

// link records that a connection point of a member is attached to the vld node.
func (b *Builder) link(vld, node string, ref *tree.Map) error {
	idx, ok := ref.GetInt("member-vnf-index-ref")
	if !ok {
		return diagnostic.Validationf(vld, ListVLD, "connection point reference has no member-vnf-index-ref")
	}

	info, ok := b.members[idx]
	if !ok {
		return diagnostic.Validationf(vld, ListVLD, "unknown member-vnf-index-ref %d", idx)
	}

	if id, ok := ref.GetString("vnfd-id-ref"); ok && id != info.id {
		return diagnostic.Validationf(vld, ListVLD,
			"member %d instantiates vnfd %q, not %q", idx, info.id, id)
	}

	cp, _ := ref.GetString("vnfd-connection-point-ref")
	if !slices.Contains(info.cps, cp) {
		return diagnostic.Validationf(vld, ListVLD, "unknown connection point %q of vnfd %q", cp, info.id).
			WithSuggestions(match.Suggest(cp, info.cps, maxSuggestions))
	}

	info.links[cp] = append(info.links[cp], node)

	return nil
}
