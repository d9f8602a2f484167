package totosca

import (
	"slices"
	"strconv"

	"github.com/sirupsen/logrus"

	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/entity"
	"descriptor-translator/internal/match"
	"descriptor-translator/internal/tosca"
	"descriptor-translator/internal/tree"
)

const (
	defaultCPType   = "VPORT"
	defaultIntfType = "VIRTIO"
)

func (b *Builder) constituents(records []*tree.Map) error {
	for _, rec := range records {
		idx, ok := rec.GetInt("member-vnf-index")
		if !ok || idx < 1 {
			return diagnostic.Validationf(rec.StringOr("vnfd-id-ref", ""), ListConstituents,
				"member-vnf-index must be a positive integer, got %v", rec.Value("member-vnf-index"))
		}

		ref, _ := rec.GetString("vnfd-id-ref")

		vnfd, ok := b.vnfds[ref]
		if !ok {
			return diagnostic.Validationf(ref, ListConstituents, "unknown vnfd %q", ref).
				WithSuggestions(match.Suggest(ref, b.vnfdIDs, maxSuggestions))
		}

		if _, dup := b.members[idx]; dup {
			return diagnostic.Validationf(ref, ListConstituents, "member-vnf-index %d is used twice", idx)
		}

		if other, dup := b.instantiated[ref]; dup {
			return diagnostic.Validationf(ref, ListConstituents,
				"vnfd is already instantiated as member %d", other)
		}

		if err := b.addVNF(idx, rec, vnfd); err != nil {
			return err
		}
	}

	return nil
}

func (b *Builder) addVNF(idx int, rec, vnfd *tree.Map) error {
	id, _ := vnfd.GetString("id")

	info := &vnfInfo{
		node:     b.uniqueName(vnfd.StringOr("name", id)),
		index:    idx,
		id:       id,
		cpTypes:  make(map[string]string),
		bindings: make(map[string][]binding),
		links:    make(map[string][]string),
	}

	b.instantiated[id] = idx
	b.members[idx] = info
	b.vnfs = append(b.vnfs, info)

	props := b.toTOSCA(vnfd, "vdu", "connection-point")
	props.Set("member_vnf_index", idx)

	if sbd, ok := rec.Get("start-by-default"); ok {
		props.Set("start_by_default", sbd)
	}

	typeName := "tosca.nodes.nfv.riftio." + info.node + "VNF"
	b.nodeTypes.Set(typeName, tree.MapOf("derived_from", tosca.TypeVNFRiftIO))
	b.nodes.Set(info.node, tree.MapOf("type", typeName, "properties", props))
	b.count(entity.KindVNF)

	for _, cp := range vnfd.Maps("connection-point") {
		name, ok := cp.GetString("name")
		if !ok || name == "" {
			return diagnostic.Validationf(id, entity.KeyVNFD, "connection point has no name")
		}

		if slices.Contains(info.cps, name) {
			return diagnostic.Validationf(name, "connection-point", "duplicate connection point in vnfd %q", id)
		}

		info.cps = append(info.cps, name)
		info.cpTypes[name] = cp.StringOr("type", defaultCPType)
	}

	var members []any

	for i, vdu := range vnfd.Maps("vdu") {
		node, err := b.addVDU(info, i, vdu)
		if err != nil {
			return err
		}

		members = append(members, node)
	}

	if len(members) > 0 {
		b.groups.Set(b.uniqueName(info.node+"_components"), tree.MapOf(
			"type", tosca.GroupVNFComponents,
			"members", members,
			"properties", tree.MapOf("vnf", info.node),
		))
		b.count(entity.KindComponentGroup)
	}

	b.log.WithFields(logrus.Fields{"entity": info.node, "member": idx}).Debug("vnf translated")

	return nil
}

func (b *Builder) addVDU(info *vnfInfo, i int, vdu *tree.Map) (string, error) {
	id := vdu.StringOr("id", vdu.StringOr("name", ""))
	if id == "" {
		return "", diagnostic.Validationf(info.id+"/vdu["+strconv.Itoa(i)+"]", "vdu", "vdu has no id")
	}

	name := b.uniqueName(info.node + "_" + id)
	node := tree.MapOf(
		"type", tosca.TypeVDURiftIO,
		"properties", b.toTOSCA(vdu, "vm-flavor", "image", "image-checksum", "external-interface"),
	)

	if flavor := vdu.GetMap("vm-flavor"); flavor.Len() > 0 {
		host, err := b.hostProperties(id, flavor)
		if err != nil {
			return "", err
		}

		node.Set("capabilities", tree.MapOf("host", tree.MapOf("properties", host)))
	}

	if image, ok := vdu.GetString("image"); ok && image != "" {
		art := tree.MapOf("file", "../images/"+image, "type", tosca.ArtifactQCOW2)
		if sum, ok := vdu.Get("image-checksum"); ok {
			art.Set("image_checksum", sum)
		}

		node.Set("artifacts", tree.MapOf(image, art))
		b.Files.AddImage(image)
	}

	if script, ok := vdu.GetString("cloud-init-file"); ok {
		b.Files.AddScript(script)
	}

	for _, intf := range vdu.Maps("external-interface") {
		cp, ok := intf.GetString("connection-point-ref")
		if !ok || cp == "" {
			return "", diagnostic.Validationf(id, "vdu", "external interface has no connection-point-ref")
		}

		info.bindings[cp] = append(info.bindings[cp], binding{
			vdu:      name,
			intfName: intf.StringOr("name", cp),
			intfType: intf.GetMap("virtual-interface").StringOr("type", defaultIntfType),
		})
	}

	b.nodes.Set(name, node)
	b.count(entity.KindCompute)

	return name, nil
}

// hostProperties turns a vm-flavor into host capability properties.
// Memory and storage become scalar-unit sizes.
func (b *Builder) hostProperties(vdu string, flavor *tree.Map) (*tree.Map, error) {
	host := tree.NewMap()

	var err error

	flavor.Range(func(k string, v any) bool {
		unit := ""

		switch k {
		case "memory-mb":
			unit = "MB"
		case "storage-gb":
			unit = "GB"
		}

		if unit != "" {
			n, ok := tree.ToInt(v)
			if !ok {
				err = diagnostic.Validationf(vdu, "vdu", "vm-flavor %s must be an integer, got %v", k, v)
				return false
			}

			v = entity.FormatSize(n, unit)
		}

		host.Set(b.keys.TOSCA(k), v)

		return true
	})

	return host, err
}
