package translator

import (
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"descriptor-translator/internal/assemble"
	"descriptor-translator/internal/compare"
	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/entity"
	"descriptor-translator/internal/manifest"
	"descriptor-translator/internal/metrics"
	"descriptor-translator/internal/registry"
	"descriptor-translator/internal/tosca"
	"descriptor-translator/internal/totosca"
	"descriptor-translator/internal/tree"
)

const serviceTemplate = `
tosca_definitions_version: tosca_simple_profile_for_nfv_1_0_0
description: Test service
metadata:
  ID: test_nsd
  vendor: ACME
  version: 1.0
topology_template:
  inputs:
    rate:
      type: integer
      constraints:
        - greater_than: 0
        - less_or_equal: 10
  node_templates:
    vnf_a:
      type: tosca.nodes.nfv.riftio.VNF1
      properties:
        id: vnf_a
    vnf_a_vdu:
      type: tosca.nodes.nfv.riftio.VDU1
      properties:
        id: vdu
        name: vdu
    net:
      type: tosca.nodes.nfv.riftio.ELAN
    cp0:
      type: tosca.nodes.nfv.riftio.CP1
      properties:
        name: vnf_a/cp0
      requirements:
        - virtualBinding: vnf_a_vdu
        - virtualLink: net
  groups:
    vnf_a_components:
      type: tosca.groups.nfv.riftio.VNFComponents
      members: [vnf_a_vdu]
      properties:
        vnf: vnf_a
  policies:
    - prims:
        type: tosca.policies.nfv.riftio.ns_service_primitives
        properties:
          restart:
            user_defined_script: restart.py
    - grp:
        type: tosca.policies.nfv.riftio.scaling
        properties:
          min_instances: 1
          max_instances: 2
          vnfd_members:
            vnf_a: 1
          config_actions:
            post_scale_out: restart
`

func quietLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

func newTranslator(t *testing.T, mutate func(*Config)) *Translator {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Log = quietLogger()

	if mutate != nil {
		mutate(&cfg)
	}

	tr, err := New(cfg)
	require.NoError(t, err)

	return tr
}

func parseTemplate(t *testing.T, src string) *tosca.ServiceTemplate {
	t.Helper()

	st, err := tosca.Parse([]byte(src))
	require.NoError(t, err)

	return st
}

func TestToYANG(t *testing.T) {
	tr := newTranslator(t, nil)

	res, err := tr.ToYANG(parseTemplate(t, serviceTemplate))
	require.NoError(t, err)
	require.Equal(t, ToYANGDirection, res.Direction)

	nsd := res.Tree.GetMap(entity.KeyNSDCatalog).Maps(entity.KeyNSD)
	require.Len(t, nsd, 1)

	assert.Equal(t, "test_nsd", nsd[0].StringOr("id", ""))
	assert.Equal(t, "1.0", nsd[0].StringOr("version", ""))
	assert.Equal(t, "Test service", nsd[0].StringOr("description", ""))

	inputs := nsd[0].Maps("input-parameter")
	require.Len(t, inputs, 1)
	assert.Equal(t, "rate", inputs[0].StringOr("name", ""))
	assert.Equal(t, "integer", inputs[0].StringOr("data-type", ""))

	constraints := inputs[0].Maps("constraint")
	require.Len(t, constraints, 1)
	rng := constraints[0].GetMap("range")
	lo, _ := rng.GetInt("min")
	hi, _ := rng.GetInt("max")
	assert.Equal(t, 1, lo)
	assert.Equal(t, 10, hi)

	vld := nsd[0].Maps("vld")
	require.Len(t, vld, 1)
	assert.Equal(t, "ELAN", vld[0].StringOr("type", ""))

	refs := vld[0].Maps("vnfd-connection-point-ref")
	require.Len(t, refs, 1)
	assert.Equal(t, "vnf_a/cp0", refs[0].StringOr("vnfd-connection-point-ref", ""))

	groups := nsd[0].Maps("scaling-group-descriptor")
	require.Len(t, groups, 1)
	actions := groups[0].Maps("scaling-config-action")
	require.Len(t, actions, 1)
	assert.Equal(t, "post-scale-out", actions[0].StringOr("trigger", ""))

	vnfds := res.Tree.GetMap(entity.KeyVNFDCatalog).Maps(entity.KeyVNFD)
	require.Len(t, vnfds, 1)
	cps := vnfds[0].Maps("connection-point")
	require.Len(t, cps, 1)
	assert.Equal(t, "VPORT", cps[0].StringOr("type", ""))

	vdus := vnfds[0].Maps("vdu")
	require.Len(t, vdus, 1)
	require.Len(t, vdus[0].Maps("external-interface"), 1)

	assert.Equal(t, []manifest.File{{Type: manifest.Script, Name: "scripts/restart.py"}}, res.Files)
	assert.Empty(t, res.Diagnostics.Warnings)
}

func TestToYANG_DerivesIDFromName(t *testing.T) {
	src := strings.Replace(serviceTemplate, "  ID: test_nsd\n", "  name: named_nsd\n", 1)

	first, err := newTranslator(t, nil).ToYANG(parseTemplate(t, src))
	require.NoError(t, err)

	second, err := newTranslator(t, nil).ToYANG(parseTemplate(t, src))
	require.NoError(t, err)

	id := first.Tree.GetMap(entity.KeyNSDCatalog).Maps(entity.KeyNSD)[0].StringOr("id", "")
	assert.Len(t, id, 36)
	assert.Equal(t, id, second.Tree.GetMap(entity.KeyNSDCatalog).Maps(entity.KeyNSD)[0].StringOr("id", ""))
}

func TestToYANG_Errors(t *testing.T) {
	tests := []struct {
		name    string
		old     string
		new     string
		kind    diagnostic.Kind
		message string
	}{
		{
			name:    "port without virtualBinding",
			old:     "        - virtualBinding: vnf_a_vdu\n",
			new:     "",
			kind:    diagnostic.KindValidation,
			message: "cp0",
		},
		{
			name:    "port with two virtualLinks",
			old:     "        - virtualLink: net\n",
			new:     "        - virtualLink: net\n        - virtualLink: {node: net}\n",
			kind:    diagnostic.KindValidation,
			message: "exactly one virtualLink",
		},
		{
			name:    "port bound to unknown compute",
			old:     "virtualBinding: vnf_a_vdu",
			new:     "virtualBinding: vnf_a_vdu2",
			kind:    diagnostic.KindValidation,
			message: `"vnf_a_vdu2"`,
		},
		{
			name:    "unknown scaling member",
			old:     "            vnf_a: 1",
			new:     "            vnf_b: 1",
			kind:    diagnostic.KindValidation,
			message: `"vnf_b"`,
		},
		{
			name:    "unknown config primitive",
			old:     "post_scale_out: restart",
			new:     "post_scale_out: reboot",
			kind:    diagnostic.KindValidation,
			message: `unknown primitive "reboot"`,
		},
		{
			name:    "non-integer strict bound",
			old:     "greater_than: 0",
			new:     "greater_than: 0.5",
			kind:    diagnostic.KindUnsupportedConstraint,
			message: "rate",
		},
		{
			name:    "unknown constraint operator",
			old:     "greater_than: 0",
			new:     "bigger_than: 0",
			kind:    diagnostic.KindUnsupportedConstraint,
			message: "bigger_than",
		},
		{
			name:    "unsupported definitions version",
			old:     "tosca_simple_profile_for_nfv_1_0_0",
			new:     "tosca_simple_profile_for_nfv_2_0_0",
			kind:    diagnostic.KindValidation,
			message: "not supported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := strings.Replace(serviceTemplate, tt.old, tt.new, 1)
			require.NotEqual(t, serviceTemplate, src)

			res, err := newTranslator(t, nil).ToYANG(parseTemplate(t, src))
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.kind, diagnostic.KindOf(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestToYANG_UnknownTypeIsGeneric(t *testing.T) {
	src := strings.Replace(serviceTemplate, "  groups:\n", "    monitor:\n      type: acme.nodes.Monitor\n  groups:\n", 1)

	res, err := newTranslator(t, nil).ToYANG(parseTemplate(t, src))
	require.NoError(t, err)
	require.NotEmpty(t, res.Diagnostics.Warnings)
	assert.Equal(t, diagnostic.CodeGenericEntity, res.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "monitor", res.Diagnostics.Warnings[0].Entity)
}

func TestToYANG_TypeOverride(t *testing.T) {
	src := strings.Replace(serviceTemplate, "type: tosca.nodes.nfv.riftio.ELAN", "type: acme.nodes.Fabric", 1)

	plain, err := newTranslator(t, nil).ToYANG(parseTemplate(t, src))
	require.Error(t, err, "cp0 links to a generic node")
	assert.Nil(t, plain)

	tr := newTranslator(t, func(c *Config) {
		c.TypeOverrides = map[string]string{"acme.nodes.Fabric": tosca.TypeVL}
	})

	loc, ok := tr.Entities().Location("acme.nodes.Fabric")
	require.True(t, ok)
	assert.Equal(t, "custom", loc)

	res, err := tr.ToYANG(parseTemplate(t, src))
	require.NoError(t, err)

	vld := res.Tree.GetMap(entity.KeyNSDCatalog).Maps(entity.KeyNSD)[0].Maps("vld")
	require.Len(t, vld, 1)
	assert.Equal(t, "ELAN", vld[0].StringOr("type", ""))
}

func TestNew_BadOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TypeOverrides = map[string]string{"acme.nodes.Fabric": "acme.nodes.Unknown"}

	_, err := New(cfg)
	require.Error(t, err)
	assert.Equal(t, diagnostic.KindRegistryLoad, diagnostic.KindOf(err))
}

func TestToTOSCA(t *testing.T) {
	desc := loadFixture(t)

	res, err := newTranslator(t, nil).ToTOSCA(desc)
	require.NoError(t, err)
	require.Equal(t, ToTOSCADirection, res.Direction)

	assert.Equal(t, []string{
		"tosca_definitions_version", "description", "metadata", "node_types", "topology_template",
	}, res.Tree.Keys())

	assert.Equal(t, []string{"inputs", "node_templates", "groups", "policies"},
		res.Tree.GetMap("topology_template").Keys())

	assert.Contains(t, res.Files, manifest.File{Type: manifest.Script, Name: "scripts/ping_config.py"})
	assert.Contains(t, res.Files, manifest.File{Type: manifest.Image, Name: "images/Fedora-x86_64-20-20131211.1-sda-ping.qcow2"})

	out, err := Encode(res, assemble.FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "version: 1.0\n")
	assert.Contains(t, string(out), "version: 1.10\n")
}

func TestToTOSCA_CustomHandlers(t *testing.T) {
	var seen int

	reg, err := registry.New(totosca.Builtin(), &registry.Location[totosca.Handler]{
		Name: "custom",
		Definitions: []registry.Definition[totosca.Handler]{
			{TypeName: "monitoring-param", New: func(_ *totosca.Builder, records []*tree.Map) error {
				seen = len(records)
				return nil
			}},
		},
	})
	require.NoError(t, err)

	tr := newTranslator(t, func(c *Config) { c.Handlers = reg })
	assert.Same(t, reg, tr.Handlers())

	desc := loadFixture(t)
	nsd := desc.GetMap(entity.KeyNSDCatalog).Maps(entity.KeyNSD)[0]
	nsd.Set("monitoring-param", []any{tree.MapOf("id", 1)})

	_, err = tr.ToTOSCA(desc)
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}

func TestRoundTrip(t *testing.T) {
	desc := loadFixture(t)
	tr := newTranslator(t, nil)

	toscaRes, err := tr.ToTOSCA(desc)
	require.NoError(t, err)

	data, err := Encode(toscaRes, assemble.FormatYAML)
	require.NoError(t, err)

	st, err := tosca.Parse(data)
	require.NoError(t, err)

	yangRes, err := tr.ToYANG(st)
	require.NoError(t, err)

	report := compare.New(compare.Options{Log: quietLogger()}).Compare(desc, yangRes.Tree)
	assert.True(t, report.Equal(), report.String())
	assert.ElementsMatch(t, toscaRes.Files, yangRes.Files)
}

func TestRoundTrip_JSON(t *testing.T) {
	desc := loadFixture(t)
	tr := newTranslator(t, nil)

	toscaRes, err := tr.ToTOSCA(desc)
	require.NoError(t, err)

	data, err := Encode(toscaRes, assemble.FormatJSON)
	require.NoError(t, err)

	doc, err := tree.DecodeMap(data)
	require.NoError(t, err)

	st, err := tosca.FromTree(doc)
	require.NoError(t, err)

	yangRes, err := tr.ToYANG(st)
	require.NoError(t, err)

	// JSON output sorts keys, so inputs come back in lexical order.
	report := compare.New(compare.Options{
		OrderlessKeys: []string{"input-parameter"},
		Log:           quietLogger(),
	}).Compare(desc, yangRes.Tree)
	assert.True(t, report.Equal(), report.String())
}

func TestEncodeTemplate_Deterministic(t *testing.T) {
	tr := newTranslator(t, nil)

	first, err := tr.ToTOSCA(loadFixture(t))
	require.NoError(t, err)

	second, err := tr.ToTOSCA(loadFixture(t))
	require.NoError(t, err)

	a, err := Encode(first, assemble.FormatYAML)
	require.NoError(t, err)

	b, err := Encode(second, assemble.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	tr := newTranslator(t, func(c *Config) { c.Metrics = m })

	_, err = tr.ToTOSCA(loadFixture(t))
	require.NoError(t, err)

	_, err = tr.ToYANG(parseTemplate(t, strings.Replace(serviceTemplate, "vnf_a: 1", "vnf_b: 1", 1)))
	require.Error(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}

	assert.Contains(t, names, "descriptor_translations_total")
	assert.Contains(t, names, "descriptor_entities_translated_total")
	assert.Contains(t, names, "descriptor_translation_duration_seconds")
	n, err := testutil.GatherAndCount(reg, "descriptor_translations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestEncodeManifest(t *testing.T) {
	res := &Result{Files: []manifest.File{
		{Type: manifest.Image, Name: "images/a.qcow2"},
		{Type: manifest.Script, Name: "scripts/b.py"},
	}}

	out, err := EncodeManifest(res, assemble.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "- type: image\n  name: images/a.qcow2\n- type: script\n  name: scripts/b.py\n", string(out))

	js, err := EncodeManifest(res, assemble.FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"image","name":"images/a.qcow2"},{"type":"script","name":"scripts/b.py"}]`, string(js))
}

func loadFixture(t *testing.T) *tree.Map {
	t.Helper()

	data, err := os.ReadFile("testdata/ping_pong_nsd.yaml")
	require.NoError(t, err)

	desc, err := tree.DecodeMap(data)
	require.NoError(t, err)

	return desc
}
