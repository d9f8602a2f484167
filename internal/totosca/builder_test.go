package totosca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/manifest"
	"descriptor-translator/internal/registry"
	"descriptor-translator/internal/tosca"
	"descriptor-translator/internal/tree"
)

const descriptor = `
nsd:nsd-catalog:
  nsd:
  - id: ns1
    name: simple_ns
    version: "1.0"
    description: Simple service
    input-parameter:
    - name: rate
      data-type: INTEGER
      default-value: 3
      constraint:
      - range: {min: 1, max: 10}
      - length: {min: 2}
    constituent-vnfd:
    - member-vnf-index: 1
      vnfd-id-ref: vnf1
      start-by-default: false
    vld:
    - id: vl1
      name: data-net
      type: ELINE
      vnfd-connection-point-ref:
      - member-vnf-index-ref: 1
        vnfd-id-ref: vnf1
        vnfd-connection-point-ref: cp0
    service-primitive:
    - name: reconfigure
      user-defined-script: reconfigure.sh
    scaling-group-descriptor:
    - name: sg
      min-instance-count: 1
      max-instance-count: 2
      vnfd-member:
      - member-vnf-index-ref: 1
        count: 2
      scaling-config-action:
      - trigger: pre-scale-in
        ns-service-primitive-name-ref: reconfigure
    initial-config-primitive:
    - seq: 1
      name: boot
      user-defined-script: boot.sh
vnfd:vnfd-catalog:
  vnfd:
  - id: vnf1
    name: vnf-one
    connection-point:
    - name: cp0
      type: VPORT
    vdu:
    - id: vdu0
      name: vdu0
      image: disk.qcow2
      image-checksum: abc
      vm-flavor:
        vcpu-count: 2
        memory-mb: 1024
        storage-gb: 10
      external-interface:
      - name: eth0
        virtual-interface: {type: VIRTIO}
        connection-point-ref: cp0
`

func load(t *testing.T) *tree.Map {
	t.Helper()

	m, err := tree.DecodeMap([]byte(descriptor))
	require.NoError(t, err)

	return m
}

func nsdOf(m *tree.Map) *tree.Map {
	return m.GetMap("nsd:nsd-catalog").Maps("nsd")[0]
}

func vnfdOf(m *tree.Map) *tree.Map {
	return m.GetMap("vnfd:vnfd-catalog").Maps("vnfd")[0]
}

func build(t *testing.T, desc *tree.Map) (*Builder, *tree.Map, error) {
	t.Helper()

	b, err := NewBuilder(Options{})
	require.NoError(t, err)

	out, err := b.Build(desc)

	return b, out, err
}

func TestBuild(t *testing.T) {
	b, out, err := build(t, load(t))
	require.NoError(t, err)

	assert.Equal(t, tosca.DefaultDefinitionsVersion, out.Value(KeyDefinitionsVersion))
	assert.Equal(t, "Simple service", out.Value(KeyDescription))
	assert.Equal(t, []string{"ID", "name", "version"}, out.GetMap(KeyMetadata).Keys())

	assert.Equal(t, tosca.TypeVNFRiftIO,
		out.GetMap(KeyNodeTypes).GetMap("tosca.nodes.nfv.riftio.vnf_oneVNF").Value("derived_from"))

	topo := out.GetMap(KeyTopology)
	nodes := topo.GetMap(KeyNodeTemplates)
	assert.Equal(t, []string{"vnf_one", "vnf_one_vdu0", "data_net", "cp0"}, nodes.Keys())

	vnf := nodes.GetMap("vnf_one").GetMap("properties")
	assert.Equal(t, 1, vnf.Value("member_vnf_index"))
	assert.Equal(t, false, vnf.Value("start_by_default"))
	assert.False(t, vnf.Has("vdu"))
	assert.False(t, vnf.Has("connection_point"))

	vdu := nodes.GetMap("vnf_one_vdu0")
	assert.Equal(t, tosca.TypeVDURiftIO, vdu.Value("type"))
	assert.Equal(t, []string{"id", "name"}, vdu.GetMap("properties").Keys())

	host := vdu.GetMap("capabilities").GetMap("host").GetMap("properties")
	assert.Equal(t, 2, host.Value("num_cpus"))
	assert.Equal(t, "1024 MB", host.Value("mem_size"))
	assert.Equal(t, "10 GB", host.Value("disk_size"))

	art := vdu.GetMap("artifacts").GetMap("disk.qcow2")
	assert.Equal(t, "../images/disk.qcow2", art.Value("file"))
	assert.Equal(t, tosca.ArtifactQCOW2, art.Value("type"))
	assert.Equal(t, "abc", art.Value("image_checksum"))

	vl := nodes.GetMap("data_net")
	assert.Equal(t, tosca.TypeELINERiftIO, vl.Value("type"))
	assert.Equal(t, []string{"id", "name"}, vl.GetMap("properties").Keys())

	cp := nodes.GetMap("cp0")
	assert.Equal(t, tosca.TypeCPRiftIO, cp.Value("type"))
	assert.Equal(t, "eth0", cp.GetMap("properties").Value("vdu_intf_name"))
	assert.Equal(t, "VPORT", cp.GetMap("properties").Value("cp_type"))
	assert.Equal(t, []any{
		tree.MapOf(tosca.ReqVirtualBinding, "vnf_one_vdu0"),
		tree.MapOf(tosca.ReqVirtualLink, "data_net"),
	}, cp.GetList("requirements"))

	group := topo.GetMap(KeyGroups).GetMap("vnf_one_components")
	assert.Equal(t, []any{"vnf_one_vdu0"}, group.GetList("members"))
	assert.Equal(t, "vnf_one", group.GetMap("properties").Value("vnf"))

	policies := topo.GetList(KeyPolicies)
	require.Len(t, policies, 3)

	prims := policies[0].(*tree.Map).GetMap("ns_service_primitives")
	assert.Equal(t, tosca.PolicyServicePrimitives, prims.Value("type"))
	assert.Equal(t, "reconfigure.sh",
		prims.GetMap("properties").GetMap("reconfigure").Value("user_defined_script"))

	sg := policies[1].(*tree.Map).GetMap("sg").GetMap("properties")
	assert.Equal(t, 2, sg.GetMap("vnfd_members").Value("vnf_one"))
	assert.Equal(t, "reconfigure", sg.GetMap("config_actions").Value("pre_scale_in"))
	assert.Equal(t, 1, sg.Value("min_instances"))

	boot := policies[2].(*tree.Map).GetMap("boot").GetMap("properties")
	assert.Equal(t, 1, boot.Value("seq"))
	assert.Equal(t, "boot.sh", boot.Value("user_defined_script"))

	assert.Equal(t, []manifest.File{
		{Type: manifest.Image, Name: "images/disk.qcow2"},
		{Type: manifest.Script, Name: "scripts/boot.sh"},
		{Type: manifest.Script, Name: "scripts/reconfigure.sh"},
	}, b.Files.Files())

	assert.Equal(t, 1, b.Counts()["vnf"])
	assert.Equal(t, 1, b.Counts()["port"])
	assert.Empty(t, b.Diags.All())
}

func TestBuild_Inputs(t *testing.T) {
	_, out, err := build(t, load(t))
	require.NoError(t, err)

	rate := out.GetMap(KeyTopology).GetMap(KeyInputs).GetMap("rate")
	assert.Equal(t, "INTEGER", rate.Value("type"))
	assert.Equal(t, 3, rate.Value("default"))
	assert.Equal(t, []any{
		tree.MapOf("in_range", []any{1, 10}),
		tree.MapOf("min_length", 2),
	}, rate.GetList("constraints"))
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *tree.Map)
		entity  string
		message string
	}{
		{
			name: "connection point without vld",
			mutate: func(m *tree.Map) {
				nsdOf(m).GetList("vld")[0].(*tree.Map).Delete("vnfd-connection-point-ref")
			},
			entity:  "cp0",
			message: "exactly one vld",
		},
		{
			name: "connection point without interface",
			mutate: func(m *tree.Map) {
				vnfdOf(m).Maps("vdu")[0].Delete("external-interface")
			},
			entity:  "cp0",
			message: "exactly one vdu external interface",
		},
		{
			name: "unknown scaling member",
			mutate: func(m *tree.Map) {
				nsdOf(m).Maps("scaling-group-descriptor")[0].Maps("vnfd-member")[0].Set("member-vnf-index-ref", 7)
			},
			entity:  "sg",
			message: "unknown vnfd member 7",
		},
		{
			name: "unknown primitive",
			mutate: func(m *tree.Map) {
				nsdOf(m).Maps("scaling-group-descriptor")[0].Maps("scaling-config-action")[0].
					Set("ns-service-primitive-name-ref", "reconfigur")
			},
			entity:  "sg",
			message: "did you mean 'reconfigure'",
		},
		{
			name: "vnfd instantiated twice",
			mutate: func(m *tree.Map) {
				nsdOf(m).Append("constituent-vnfd", tree.MapOf("member-vnf-index", 2, "vnfd-id-ref", "vnf1"))
			},
			entity:  "vnf1",
			message: "already instantiated as member 1",
		},
		{
			name: "unknown vnfd",
			mutate: func(m *tree.Map) {
				nsdOf(m).Maps("constituent-vnfd")[0].Set("vnfd-id-ref", "vnf2")
			},
			entity:  "vnf2",
			message: "did you mean 'vnf1'",
		},
		{
			name: "unknown network type",
			mutate: func(m *tree.Map) {
				nsdOf(m).Maps("vld")[0].Set("type", "MESH")
			},
			entity:  "data-net",
			message: "unknown network type",
		},
		{
			name: "missing seq",
			mutate: func(m *tree.Map) {
				nsdOf(m).Maps("initial-config-primitive")[0].Delete("seq")
			},
			entity:  "boot",
			message: "seq must be an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := load(t)
			tt.mutate(desc)

			_, _, err := build(t, desc)
			require.Error(t, err)

			var verr *diagnostic.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.entity, verr.Entity)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestBuild_RequiresOneNSD(t *testing.T) {
	desc := load(t)
	catalog := desc.GetMap("nsd:nsd-catalog")
	catalog.Append("nsd", tree.MapOf("id", "ns2"))

	_, _, err := build(t, desc)
	require.Error(t, err)
	assert.True(t, diagnostic.IsValidation(err))
	assert.Contains(t, err.Error(), "exactly one nsd, found 2")
}

func TestBuild_Warnings(t *testing.T) {
	desc := load(t)
	nsdOf(desc).Set("monitoring-param", []any{tree.MapOf("id", 1)})
	desc.GetMap("vnfd:vnfd-catalog").Append("vnfd", tree.MapOf("id", "spare"))

	b, _, err := build(t, desc)
	require.NoError(t, err)

	var codes []string
	for _, d := range b.Diags.Warnings {
		codes = append(codes, d.Code)
	}

	assert.Equal(t, []string{diagnostic.CodeUnknownList, diagnostic.CodeUnreferencedVNFD}, codes)
}

func TestBuild_CustomHandler(t *testing.T) {
	var seen int

	custom := &registry.Location[Handler]{
		Name: "custom",
		Definitions: []registry.Definition[Handler]{
			{TypeName: "monitoring-param", New: func(_ *Builder, records []*tree.Map) error {
				seen = len(records)
				return nil
			}},
		},
	}

	reg, err := registry.New(Builtin(), custom)
	require.NoError(t, err)

	desc := load(t)
	nsdOf(desc).Set("monitoring-param", []any{tree.MapOf("id", 1), tree.MapOf("id", 2)})

	b, err := NewBuilder(Options{Registry: reg})
	require.NoError(t, err)

	_, err = b.Build(desc)
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
	assert.Empty(t, b.Diags.Warnings)
}

func TestBuild_NodeNameCollision(t *testing.T) {
	desc := load(t)
	nsdOf(desc).Maps("vld")[0].Set("name", "cp0")

	_, out, err := build(t, desc)
	require.NoError(t, err)

	nodes := out.GetMap(KeyTopology).GetMap(KeyNodeTemplates)
	assert.True(t, nodes.Has("cp0"))
	assert.True(t, nodes.Has("vnf_one_cp0"))
	assert.Equal(t, tosca.TypeCPRiftIO, nodes.GetMap("vnf_one_cp0").Value("type"))
}
