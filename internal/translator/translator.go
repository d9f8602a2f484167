package translator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"descriptor-translator/internal/assemble"
	"descriptor-translator/internal/constraint"
	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/entity"
	"descriptor-translator/internal/manifest"
	"descriptor-translator/internal/match"
	"descriptor-translator/internal/metrics"
	"descriptor-translator/internal/registry"
	"descriptor-translator/internal/resolve"
	"descriptor-translator/internal/tosca"
	"descriptor-translator/internal/totosca"
	"descriptor-translator/internal/tree"
)

// Direction names the target format of a run.
type Direction string

const (
	ToYANGDirection  Direction = "yang"
	ToTOSCADirection Direction = "tosca"
)

// Config holds the configuration of a Translator.
type Config struct {
	// DefinitionsVersion is written as tosca_definitions_version by ToTOSCA.
	DefinitionsVersion string
	// TypeOverrides maps custom TOSCA type names to built-in ones.
	TypeOverrides map[string]string
	// Entities overrides the entity registry built from TypeOverrides.
	Entities *entity.Registry
	// Handlers overrides the YANG list handler registry.
	Handlers *registry.Registry[totosca.Handler]
	Keys     *match.KeyMapper
	Log      logrus.FieldLogger
	// Metrics is optional.
	Metrics *metrics.Metrics
}

// DefaultConfig returns a Config with the built-in registries.
func DefaultConfig() Config {
	return Config{
		DefinitionsVersion: tosca.DefaultDefinitionsVersion,
		Keys:               match.Keys,
		Log:                logrus.StandardLogger(),
	}
}

// Translator translates descriptors in both directions.
type Translator struct {
	config   Config
	entities *entity.Registry
	handlers *registry.Registry[totosca.Handler]
	log      logrus.FieldLogger
}

// Result is the outcome of one successful run.
type Result struct {
	Direction   Direction
	Tree        *tree.Map
	Diagnostics diagnostic.Diagnostics
	Files       []manifest.File
}

// New creates a Translator. Registry construction errors surface here, before
// any descriptor is read.
func New(config Config) (*Translator, error) {
	if config.Keys == nil {
		config.Keys = match.Keys
	}

	if config.Log == nil {
		config.Log = logrus.StandardLogger()
	}

	if config.DefinitionsVersion == "" {
		config.DefinitionsVersion = tosca.DefaultDefinitionsVersion
	}

	if err := tosca.CheckDefinitionsVersion(config.DefinitionsVersion); err != nil {
		return nil, err
	}

	entities := config.Entities
	if entities == nil {
		var err error
		if entities, err = entity.NewRegistry(config.TypeOverrides); err != nil {
			return nil, err
		}
	}

	handlers := config.Handlers
	if handlers == nil {
		var err error
		if handlers, err = totosca.DefaultRegistry(); err != nil {
			return nil, err
		}
	}

	return &Translator{
		config:   config,
		entities: entities,
		handlers: handlers,
		log:      config.Log,
	}, nil
}

// Entities returns the entity registry in use.
func (t *Translator) Entities() *entity.Registry {
	return t.entities
}

// Handlers returns the YANG list handler registry in use.
func (t *Translator) Handlers() *registry.Registry[totosca.Handler] {
	return t.handlers
}

// ToYANG translates a service template into a YANG descriptor tree.
func (t *Translator) ToYANG(st *tosca.ServiceTemplate) (res *Result, err error) {
	started := time.Now()
	defer func() { t.config.Metrics.ObserveRun(string(ToYANGDirection), started, err) }()

	if err := tosca.CheckDefinitionsVersion(st.DefinitionsVersion); err != nil {
		return nil, err
	}

	ctx := entity.NewContext(st, t.log.WithField("direction", string(ToYANGDirection)))
	ctx.Keys = t.config.Keys

	unit, err := t.instantiate(ctx, st)
	if err != nil {
		return nil, err
	}

	for _, e := range unit.Entities() {
		if err := e.HandleProperties(ctx); err != nil {
			return nil, diagnostic.Attribute(err, e.Name(), e.Type())
		}
	}

	if err := unit.AssignMemberIndexes(); err != nil {
		return nil, err
	}

	if err := resolve.New(unit, ctx.Log).Resolve(); err != nil {
		return nil, err
	}

	out := entity.NewOutput()
	header(ctx, out.NSD())

	if err := inputParameters(st, out); err != nil {
		return nil, err
	}

	counts := make(map[string]int)

	for _, e := range unit.Entities() {
		if err := e.GenerateOutput(out); err != nil {
			return nil, diagnostic.Attribute(err, e.Name(), e.Type())
		}

		counts[e.Kind().String()]++
	}

	for _, k := range tree.SortedKeys(counts) {
		t.config.Metrics.AddEntities(string(ToYANGDirection), k, counts[k])
	}

	ctx.Log.WithField("entities", len(unit.Entities())).Debug("translated service template")

	return &Result{
		Direction:   ToYANGDirection,
		Tree:        out.Root,
		Diagnostics: *ctx.Diags,
		Files:       ctx.Files.Files(),
	}, nil
}

// instantiate creates one translator per node template, group and policy.
func (t *Translator) instantiate(ctx *entity.Context, st *tosca.ServiceTemplate) (*entity.Unit, error) {
	unit := entity.NewUnit()

	var sources []*entity.Source

	for i := range st.Topology.NodeTemplates {
		n := &st.Topology.NodeTemplates[i]
		sources = append(sources, entity.FromNode(st, n.Name, &n.Value))
	}

	for i := range st.Topology.Groups {
		g := &st.Topology.Groups[i]
		sources = append(sources, entity.FromGroup(st, g.Name, &g.Value))
	}

	for i := range st.Topology.Policies {
		p := &st.Topology.Policies[i]
		sources = append(sources, entity.FromPolicy(st, p.Name, &p.Value))
	}

	for _, src := range sources {
		ctor, matched, err := t.entities.ResolveChain(st.Ancestors(src.Type))
		if err != nil {
			ctor = entity.NewGeneric
		} else if matched != src.Type {
			ctx.Log.WithFields(logrus.Fields{"entity": src.Name, "type": src.Type, "via": matched}).
				Debug("resolved translator through ancestor type")
		}

		if err := unit.Add(ctor(src)); err != nil {
			return nil, err
		}
	}

	return unit, nil
}

// metadataKeys maps template metadata keys to NSD header leaves.
var metadataKeys = [][2]string{
	{"name", "name"},
	{"short_name", "short-name"},
	{"vendor", "vendor"},
	{"version", "version"},
	{"logo", "logo"},
}

func header(ctx *entity.Context, nsd *tree.Map) {
	st := ctx.Template

	id := st.MetadataString("ID")
	if id == "" {
		name := st.MetadataString("name")
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
		ctx.Log.WithField("id", id).Info("service template has no ID, derived one from its name")
	}

	nsd.Set("id", id)

	for _, k := range metadataKeys {
		if v := st.MetadataString(k[0]); v != "" {
			nsd.Set(k[1], v)
		}
	}

	if st.Description != "" {
		nsd.Set("description", st.Description)
	} else {
		ctx.Diags.AddInfo(diagnostic.CodeMissingDescription,
			"service template has no description", id, "nsd")
	}
}

func inputParameters(st *tosca.ServiceTemplate, out *entity.Output) error {
	for _, in := range st.Topology.Inputs {
		rec := tree.MapOf("name", in.Name, "data-type", in.Value.Type)

		if in.Value.Description != "" {
			rec.Set("description", in.Value.Description)
		}

		if in.Value.Default != nil {
			rec.Set("default-value", tree.Clone(in.Value.Default))
		}

		if len(in.Value.Constraints) > 0 {
			cs, err := constraint.ParseAll(in.Value.Constraints)
			if err != nil {
				return diagnostic.Attribute(err, in.Name, "input")
			}

			entries, err := constraint.TranslateAll(cs)
			if err != nil {
				return diagnostic.Attribute(err, in.Name, "input")
			}

			list := make([]any, len(entries))
			for i, e := range entries {
				list[i] = e
			}

			rec.Set("constraint", list)
		}

		out.AppendNSD("input-parameter", rec)
	}

	return nil
}

// ToTOSCA translates a YANG descriptor tree into an ordered service template.
func (t *Translator) ToTOSCA(desc *tree.Map) (res *Result, err error) {
	started := time.Now()
	defer func() { t.config.Metrics.ObserveRun(string(ToTOSCADirection), started, err) }()

	b, err := totosca.NewBuilder(totosca.Options{
		Registry:           t.handlers,
		DefinitionsVersion: t.config.DefinitionsVersion,
		Keys:               t.config.Keys,
		Log:                t.log,
	})
	if err != nil {
		return nil, err
	}

	root, err := b.Build(desc)
	if err != nil {
		return nil, err
	}

	ordered := assemble.New(t.log, b.Diags).Order(root)

	counts := b.Counts()
	for _, k := range tree.SortedKeys(counts) {
		t.config.Metrics.AddEntities(string(ToTOSCADirection), k, counts[k])
	}

	return &Result{
		Direction:   ToTOSCADirection,
		Tree:        ordered,
		Diagnostics: *b.Diags,
		Files:       b.Files.Files(),
	}, nil
}

// Encode serializes the tree of res in format.
func Encode(res *Result, format assemble.Format) ([]byte, error) {
	switch res.Direction {
	case ToTOSCADirection:
		return assemble.EncodeTemplate(res.Tree, format)
	case ToYANGDirection:
		return assemble.EncodeDescriptor(res.Tree, format)
	default:
		return nil, &diagnostic.InternalError{Err: fmt.Errorf("unknown direction %q", res.Direction)}
	}
}

// EncodeManifest serializes the supporting-files manifest of res.
func EncodeManifest(res *Result, format assemble.Format) ([]byte, error) {
	list := make([]any, len(res.Files))
	for i, f := range res.Files {
		list[i] = tree.MapOf("type", string(f.Type), "name", f.Name)
	}

	if format == assemble.FormatJSON {
		return tree.EncodeJSON(list)
	}

	return tree.Encode(list, tree.EncodeOptions{})
}
