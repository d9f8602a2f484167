package entity

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/registry"
	"descriptor-translator/internal/tosca"
	"descriptor-translator/internal/tree"
)

func newTestContext(t *testing.T, doc string) *Context {
	t.Helper()

	st, err := tosca.Parse([]byte(doc))
	require.NoError(t, err)

	log, _ := test.NewNullLogger()

	return NewContext(st, log)
}

const minimalTemplate = `
tosca_definitions_version: tosca_simple_profile_for_nfv_1_0_0
metadata:
  vendor: ACME
  version: 2
node_types:
  acme.nodes.Fabric:
    derived_from: tosca.nodes.nfv.riftio.ELINE
topology_template:
  node_templates:
    placeholder:
      type: tosca.nodes.Root
`

func node(name, typ string, props *tree.Map) *Source {
	return &Source{Section: SectionNode, Name: name, Type: typ, Properties: propsOrEmpty(props)}
}

func TestNetwork_HandleProperties(t *testing.T) {
	ctx := newTestContext(t, minimalTemplate)

	tests := []struct {
		name  string
		typ   string
		props *tree.Map
		want  string
	}{
		{"explicit network type", tosca.TypeVL, tree.MapOf("network_type", "ELINE"), "ELINE"},
		{"kind from own type", tosca.TypeETREERiftIO, nil, tosca.KindETREE},
		{"kind from derived type", "acme.nodes.Fabric", nil, tosca.KindELINE},
		{"default kind", tosca.TypeVL, nil, tosca.KindELAN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := node("net", tt.typ, tt.props)
			src.Vendor, src.Version = templateIdentity(ctx.Template)

			n := NewNetwork(src)
			require.NoError(t, n.HandleProperties(ctx))

			props := n.Properties()
			assert.Equal(t, tt.want, props.StringOr("type", ""))
			assert.Equal(t, "net", props.StringOr("id", ""))
			assert.Equal(t, "net", props.StringOr("short-name", ""))
			assert.Equal(t, "ACME", props.StringOr("vendor", ""))
			assert.Equal(t, "2", props.Value("version"))
		})
	}
}

func TestPort_Cardinality(t *testing.T) {
	ctx := newTestContext(t, minimalTemplate)

	bind := tosca.Requirement{Name: tosca.ReqVirtualBinding, Node: "vdu"}
	link := tosca.Requirement{Name: tosca.ReqVirtualLink, Node: "net"}

	tests := []struct {
		name    string
		reqs    []tosca.Requirement
		wantErr string
	}{
		{"both", []tosca.Requirement{bind, link}, ""},
		{"no binding", []tosca.Requirement{link}, "exactly one virtualBinding relationship, found 0"},
		{"no link", []tosca.Requirement{bind}, "exactly one virtualLink relationship, found 0"},
		{"two bindings", []tosca.Requirement{bind, bind, link}, "found 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := node("cp0", tosca.TypeCPRiftIO, tree.MapOf("cp_type", "VPORT"))
			src.Requirements = tt.reqs

			p := NewPort(src)
			err := p.HandleProperties(ctx)

			if tt.wantErr == "" {
				require.NoError(t, err)
				require.Len(t, p.References(), 2)
				assert.Equal(t, RefVirtualBinding, p.References()[0].Kind)
				assert.Equal(t, "cp0", p.References()[0].From)
				assert.Equal(t, "VPORT", p.Properties().StringOr(PortType, ""))
				assert.Equal(t, "cp0", p.Properties().StringOr(PortIntfName, ""))

				return
			}

			require.Error(t, err)
			assert.True(t, diagnostic.IsValidation(err))
			assert.Contains(t, err.Error(), "cp0")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCompute_Flavor(t *testing.T) {
	ctx := newTestContext(t, minimalTemplate)

	src := node("vdu", tosca.TypeVDURiftIO, tree.MapOf("cloud_init_file", "init.cfg"))
	src.Capabilities = tree.MapOf("host", tree.MapOf("properties", tree.MapOf(
		"num_cpus", 2,
		"mem_size", "1 GB",
		"disk_size", "10 GB",
	)))
	src.Artifacts = tree.MapOf("disk", tree.MapOf("file", "../images/disk.qcow2", "type", tosca.ArtifactQCOW2))

	c := NewCompute(src)
	require.NoError(t, c.HandleProperties(ctx))

	flavor := c.Properties().GetMap("vm-flavor")
	assert.Equal(t, 2, flavor.Value("vcpu-count"))
	assert.Equal(t, 1024, flavor.Value("memory-mb"))
	assert.Equal(t, 10, flavor.Value("storage-gb"))
	assert.Equal(t, "disk.qcow2", c.Properties().StringOr("image", ""))
	assert.Equal(t, "init.cfg", c.Properties().StringOr("cloud-init-file", ""))
	assert.Equal(t, 2, ctx.Files.Len())
}

func TestScalarSize(t *testing.T) {
	tests := []struct {
		in   any
		unit string
		want int
		err  bool
	}{
		{"512 MB", "MB", 512, false},
		{"2 GB", "MB", 2048, false},
		{"4096 MiB", "GB", 4, false},
		{8, "GB", 8, false},
		{"1.5 GB", "GB", 0, true},
		{"10 parsecs", "GB", 0, true},
		{"lots", "MB", 0, true},
	}

	for _, tt := range tests {
		got, err := ScalarSize(tt.in, tt.unit)
		if tt.err {
			assert.Error(t, err, "%v", tt.in)
			continue
		}

		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}

	assert.Equal(t, "512 MB", FormatSize(512, "MB"))
}

func TestScalingGroup_HandleProperties(t *testing.T) {
	ctx := newTestContext(t, minimalTemplate)

	src := &Source{Section: SectionPolicy, Name: "grp", Type: tosca.PolicyScaling, Properties: tree.MapOf(
		"min_instances", 1,
		"max_instances", 4,
		"vnfd_members", tree.MapOf("vnf_a", 2),
		"config_actions", tree.MapOf("pre_scale_in", "drain"),
	)}

	s := NewScalingGroup(src)
	require.NoError(t, s.HandleProperties(ctx))

	assert.Equal(t, []string{"name", "min-instance-count", "max-instance-count"}, s.Properties().Keys())
	require.Len(t, s.References(), 2)
	assert.Equal(t, CrossReference{Kind: RefScalingMember, From: "grp", To: "vnf_a", Count: 2}, s.References()[0])
	assert.Equal(t, "pre-scale-in", s.References()[1].Trigger)

	src.Properties.Set("min_instances", 5)
	err := NewScalingGroup(src).HandleProperties(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds max_instances")
}

func TestInitialConfigPrimitive_RequiresSeq(t *testing.T) {
	ctx := newTestContext(t, minimalTemplate)

	src := &Source{Section: SectionPolicy, Name: "start", Type: tosca.PolicyInitialConfigPrimitive,
		Properties: tree.MapOf("user_defined_script", "start.py")}

	err := NewInitialConfigPrimitive(src).HandleProperties(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required property "seq"`)

	src.Properties.Set("seq", 3)
	p := NewInitialConfigPrimitive(src)
	require.NoError(t, p.HandleProperties(ctx))
	assert.Equal(t, "start", p.Properties().StringOr("name", ""))
	assert.Equal(t, "start.py", p.Properties().StringOr("user-defined-script", ""))
}

func TestGeneric_Warns(t *testing.T) {
	ctx := newTestContext(t, minimalTemplate)

	g := NewGeneric(node("mystery", "acme.nodes.Mystery", tree.MapOf("a", 1)))
	require.NoError(t, g.HandleProperties(ctx))

	require.Len(t, ctx.Diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeGenericEntity, ctx.Diags.Warnings[0].Code)
	assert.Equal(t, "mystery", ctx.Diags.Warnings[0].Entity)

	out := NewOutput()
	require.NoError(t, g.GenerateOutput(out))
	assert.Empty(t, out.VNFDs())
	assert.Equal(t, 0, out.NSD().Len())
}

func TestSource_MembersAreUnique(t *testing.T) {
	st := &tosca.ServiceTemplate{}

	grp := FromGroup(st, "grp", &tosca.Group{
		Type:    tosca.GroupVNFComponents,
		Members: []string{"vdu1", "vdu2", "vdu1"},
	})
	assert.Equal(t, []string{"vdu1", "vdu2"}, grp.Members)

	pol := FromPolicy(st, "pol", &tosca.Policy{
		Type:    tosca.PolicyScaling,
		Targets: []string{"vnf", "vnf"},
	})
	assert.Equal(t, []string{"vnf"}, pol.Members)
	assert.Equal(t, SectionPolicy, pol.Section)
}

func TestUnit(t *testing.T) {
	u := NewUnit()

	a := NewVNF(node("a", tosca.TypeVNFRiftIO, nil)).(*VNF)
	b := NewVNF(node("b", tosca.TypeVNFRiftIO, nil)).(*VNF)
	c := NewVNF(node("c", tosca.TypeVNFRiftIO, nil)).(*VNF)
	b.SetMemberIndex(1)

	require.NoError(t, u.Add(a))
	require.NoError(t, u.Add(b))
	require.NoError(t, u.Add(c))
	require.NoError(t, u.Add(NewScalingGroup(&Source{Section: SectionPolicy, Name: "a", Type: tosca.PolicyScaling})))

	err := u.Add(NewNetwork(node("a", tosca.TypeVL, nil)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate node template name")

	require.NoError(t, u.AssignMemberIndexes())
	assert.Equal(t, 2, a.MemberIndex())
	assert.Equal(t, 1, b.MemberIndex())
	assert.Equal(t, 3, c.MemberIndex())

	assert.Equal(t, []string{"a", "b", "c"}, u.Names(KindVNF))
	assert.Len(t, u.Entities(), 4)

	c.SetMemberIndex(1)
	err = u.AssignMemberIndexes()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "member index 1 is already used by b")
}

func TestRegistry(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)

	again, err := DefaultRegistry()
	require.NoError(t, err)
	assert.Same(t, reg, again)

	for _, typ := range []string{tosca.TypeVNFRiftIO, tosca.TypeCPRiftIO, tosca.TypeVL, tosca.PolicyScaling} {
		assert.True(t, reg.Has(typ), typ)
	}

	_, _, err = reg.ResolveChain([]string{"acme.nodes.Unknown", tosca.TypeRoot})
	assert.ErrorIs(t, err, registry.ErrNotFound)

	custom, err := NewRegistry(map[string]string{tosca.TypeVL: tosca.TypeCPRiftIO})
	require.NoError(t, err)

	loc, ok := custom.Location(tosca.TypeVL)
	require.True(t, ok)
	assert.Equal(t, "custom", loc)

	ctor, err := custom.Resolve(tosca.TypeVL)
	require.NoError(t, err)
	assert.Equal(t, KindPort, ctor(node("x", tosca.TypeVL, nil)).Kind())

	_, err = NewRegistry(map[string]string{"acme.nodes.X": "acme.nodes.Y"})
	require.Error(t, err)
	assert.Equal(t, diagnostic.KindRegistryLoad, diagnostic.KindOf(err))
}
