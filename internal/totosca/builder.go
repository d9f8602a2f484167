package totosca

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/sirupsen/logrus"

	"descriptor-translator/internal/common"
	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/entity"
	"descriptor-translator/internal/manifest"
	"descriptor-translator/internal/match"
	"descriptor-translator/internal/registry"
	"descriptor-translator/internal/tosca"
	"descriptor-translator/internal/tree"
)

const maxSuggestions = 3

// Template keys.
const (
	KeyDefinitionsVersion = "tosca_definitions_version"
	KeyDescription        = "description"
	KeyMetadata           = "metadata"
	KeyNodeTypes          = "node_types"
	KeyTopology           = "topology_template"
	KeyInputs             = "inputs"
	KeyNodeTemplates      = "node_templates"
	KeyGroups             = "groups"
	KeyPolicies           = "policies"
)

// headerKeys maps NSD header leaves to template metadata keys.
var headerKeys = [][2]string{
	{"id", "ID"},
	{"name", "name"},
	{"short-name", "short_name"},
	{"vendor", "vendor"},
	{"version", "version"},
	{"logo", "logo"},
}

// Options configures a Builder.
type Options struct {
	// Registry resolves list handlers. Nil uses DefaultRegistry.
	Registry *registry.Registry[Handler]
	// DefinitionsVersion is written as tosca_definitions_version.
	DefinitionsVersion string
	Keys               *match.KeyMapper
	Log                logrus.FieldLogger
}

// Builder translates one descriptor tree. It is not reusable.
type Builder struct {
	reg     *registry.Registry[Handler]
	keys    *match.KeyMapper
	log     logrus.FieldLogger
	version string

	Diags *diagnostic.Diagnostics
	Files *manifest.Set

	vnfds        map[string]*tree.Map
	vnfdIDs      []string
	instantiated map[string]int
	members      map[int]*vnfInfo
	vnfs         []*vnfInfo
	primitives   []string
	names        map[string]bool
	counts       map[string]int

	description string
	metadata    *tree.Map
	inputsMap   *tree.Map
	nodeTypes   *tree.Map
	nodes       *tree.Map
	groups      *tree.Map
	policies    []any
}

// vnfInfo is what later lists need to know about a translated member.
type vnfInfo struct {
	node     string
	index    int
	id       string
	cps      []string
	cpTypes  map[string]string
	bindings map[string][]binding
	links    map[string][]string
}

// binding is a VDU external interface attached to a connection point.
type binding struct {
	vdu      string
	intfName string
	intfType string
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options) (*Builder, error) {
	reg := opts.Registry
	if reg == nil {
		var err error
		if reg, err = DefaultRegistry(); err != nil {
			return nil, err
		}
	}

	keys := opts.Keys
	if keys == nil {
		keys = match.Keys
	}

	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	version := opts.DefinitionsVersion
	if version == "" {
		version = tosca.DefaultDefinitionsVersion
	}

	return &Builder{
		reg:          reg,
		keys:         keys,
		log:          log.WithField("direction", "tosca"),
		version:      version,
		Diags:        &diagnostic.Diagnostics{},
		Files:        manifest.NewSet(),
		vnfds:        make(map[string]*tree.Map),
		instantiated: make(map[string]int),
		members:      make(map[int]*vnfInfo),
		names:        make(map[string]bool),
		counts:       make(map[string]int),
		metadata:     tree.NewMap(),
		inputsMap:    tree.NewMap(),
		nodeTypes:    tree.NewMap(),
		nodes:        tree.NewMap(),
		groups:       tree.NewMap(),
	}, nil
}

// Counts returns the number of translated entities per entity kind name.
func (b *Builder) Counts() map[string]int {
	return b.counts
}

// Build translates desc into a service template tree.
// The first fatal error aborts the build.
func (b *Builder) Build(desc *tree.Map) (*tree.Map, error) {
	nsds := desc.GetMap(entity.KeyNSDCatalog).Maps(entity.KeyNSD)
	if len(nsds) != 1 {
		return nil, diagnostic.Validationf(entity.KeyNSDCatalog, "descriptor",
			"expected exactly one nsd, found %d", len(nsds))
	}

	if err := b.indexVNFDs(desc.GetMap(entity.KeyVNFDCatalog).Maps(entity.KeyVNFD)); err != nil {
		return nil, err
	}

	nsd := nsds[0]
	b.header(nsd)

	for _, list := range b.lists(nsd) {
		if v, ok := nsd.Get(list); ok && v != nil && nsd.GetList(list) == nil {
			return nil, diagnostic.Validationf(list, "nsd", "expected a list, got %T", v)
		}

		handle, err := b.reg.Resolve(list)
		if err != nil {
			return nil, &diagnostic.InternalError{Entity: list, EntityType: "nsd", Err: err}
		}

		b.log.WithField("list", list).Debug("translating nsd list")

		if err := handle(b, nsd.Maps(list)); err != nil {
			return nil, diagnostic.Attribute(err, list, "nsd")
		}
	}

	if err := b.finalize(); err != nil {
		return nil, err
	}

	return b.template(), nil
}

// lists returns the NSD lists to handle: the built-in phases first, then any
// other registered list in document order. Unregistered lists are reported.
func (b *Builder) lists(nsd *tree.Map) []string {
	var out []string

	for _, list := range Phases {
		if nsd.Has(list) && b.reg.Has(list) {
			out = append(out, list)
		}
	}

	for _, key := range nsd.Keys() {
		if isHeader(key) || key == KeyDescription || slices.Contains(out, key) {
			continue
		}

		if !b.reg.Has(key) {
			b.Diags.AddWarning(diagnostic.CodeUnknownList,
				fmt.Sprintf("nsd key %q has no handler and is not translated", key), key, "nsd")
			b.log.WithField("list", key).Warn("no handler registered for nsd key")

			continue
		}

		out = append(out, key)
	}

	return out
}

func isHeader(key string) bool {
	for _, h := range headerKeys {
		if h[0] == key {
			return true
		}
	}

	return false
}

func (b *Builder) header(nsd *tree.Map) {
	for _, h := range headerKeys {
		if v, ok := nsd.Get(h[0]); ok {
			b.metadata.Set(h[1], v)
		}
	}

	b.description = nsd.StringOr(KeyDescription, "")
}

func (b *Builder) indexVNFDs(vnfds []*tree.Map) error {
	for i, vnfd := range vnfds {
		id, ok := vnfd.GetString("id")
		if !ok || id == "" {
			return diagnostic.Validationf(strconv.Itoa(i), entity.KeyVNFD, "vnfd has no id")
		}

		if _, dup := b.vnfds[id]; dup {
			return diagnostic.Validationf(id, entity.KeyVNFD, "duplicate vnfd id")
		}

		b.vnfds[id] = vnfd
		b.vnfdIDs = append(b.vnfdIDs, id)
	}

	return nil
}

// uniqueName returns the first unused candidate, sanitized. When all are
// taken the last one gets a numeric suffix.
func (b *Builder) uniqueName(candidates ...string) string {
	var name string

	for _, c := range candidates {
		name = common.Sanitize(c)
		if !b.names[name] {
			b.names[name] = true
			return name
		}
	}

	for i := 2; ; i++ {
		n := fmt.Sprintf("%s_%d", name, i)
		if !b.names[n] {
			b.names[n] = true
			return n
		}
	}
}

// toTOSCA copies m with TOSCA key names, leaving out the skipped keys.
func (b *Builder) toTOSCA(m *tree.Map, skip ...string) *tree.Map {
	out := tree.NewMap()

	m.Range(func(k string, v any) bool {
		if !slices.Contains(skip, k) {
			out.Set(b.keys.TOSCA(k), b.keys.RenameTree(v, match.ToTOSCA))
		}

		return true
	})

	return out
}

func (b *Builder) count(k entity.Kind) {
	b.counts[k.String()]++
}

func (b *Builder) addPolicy(name, typeName string, props *tree.Map) {
	policy := tree.MapOf("type", typeName, "properties", props)
	b.policies = append(b.policies, tree.MapOf(b.uniqueName(name), policy))
}

func (b *Builder) template() *tree.Map {
	root := tree.MapOf(KeyDefinitionsVersion, b.version)

	if b.description != "" {
		root.Set(KeyDescription, b.description)
	}

	if b.metadata.Len() > 0 {
		root.Set(KeyMetadata, b.metadata)
	}

	if b.nodeTypes.Len() > 0 {
		root.Set(KeyNodeTypes, b.nodeTypes)
	}

	topo := tree.NewMap()

	if b.inputsMap.Len() > 0 {
		topo.Set(KeyInputs, b.inputsMap)
	}

	topo.Set(KeyNodeTemplates, b.nodes)

	if b.groups.Len() > 0 {
		topo.Set(KeyGroups, b.groups)
	}

	if len(b.policies) > 0 {
		topo.Set(KeyPolicies, b.policies)
	}

	root.Set(KeyTopology, topo)

	return root
}
