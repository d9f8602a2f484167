package totosca

import (
	"fmt"
	"slices"

	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/entity"
	"descriptor-translator/internal/match"
	"descriptor-translator/internal/tosca"
	"descriptor-translator/internal/tree"
)

// finalize emits the connection point nodes and checks that every
// connection point is bound to exactly one interface and one vld.
func (b *Builder) finalize() error {
	for _, info := range b.vnfs {
		for _, cp := range tree.SortedKeys(info.bindings) {
			if !slices.Contains(info.cps, cp) {
				return diagnostic.Validationf(cp, "connection-point",
					"external interface of %q refers to a connection point vnfd %q does not declare",
					info.bindings[cp][0].vdu, info.id).
					WithSuggestions(match.Suggest(cp, info.cps, maxSuggestions))
			}
		}

		for _, cp := range info.cps {
			if err := b.addCP(info, cp); err != nil {
				return err
			}
		}
	}

	for _, id := range b.vnfdIDs {
		if _, ok := b.instantiated[id]; !ok {
			b.Diags.AddWarning(diagnostic.CodeUnreferencedVNFD,
				fmt.Sprintf("vnfd %q is not a constituent of the nsd and is not translated", id), id, entity.KeyVNFD)
			b.log.WithField("entity", id).Warn("unreferenced vnfd")
		}
	}

	return nil
}

func (b *Builder) addCP(info *vnfInfo, cp string) error {
	binds := info.bindings[cp]
	if len(binds) != 1 {
		return diagnostic.Validationf(cp, "connection-point",
			"must be bound to exactly one vdu external interface in vnfd %q, found %d", info.id, len(binds))
	}

	links := info.links[cp]
	if len(links) != 1 {
		return diagnostic.Validationf(cp, "connection-point",
			"must be attached to exactly one vld as member %d, found %d", info.index, len(links))
	}

	props := tree.MapOf(
		"name", cp,
		"cp_type", info.cpTypes[cp],
		"vdu_intf_name", binds[0].intfName,
		"vdu_intf_type", binds[0].intfType,
	)

	b.nodes.Set(b.uniqueName(cp, info.node+"_"+cp), tree.MapOf(
		"type", tosca.TypeCPRiftIO,
		"properties", props,
		"requirements", []any{
			tree.MapOf(tosca.ReqVirtualBinding, binds[0].vdu),
			tree.MapOf(tosca.ReqVirtualLink, links[0]),
		},
	))
	b.count(entity.KindPort)

	return nil
}
