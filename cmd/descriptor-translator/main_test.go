package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../../internal/translator/testdata/ping_pong_nsd.yaml"

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)

	return code, out.String(), errOut.String()
}

func TestTranslateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	toscaPath := filepath.Join(dir, "tosca", "ping_pong.yaml")
	yangPath := filepath.Join(dir, "ping_pong_nsd.yaml")
	manifestPath := filepath.Join(dir, "manifest.yaml")
	metricsPath := filepath.Join(dir, "metrics.prom")

	code, _, stderr := runCLI(t, "translate", "--input", fixture, "--to", "tosca",
		"--output", toscaPath, "--manifest", manifestPath, "--metrics-textfile", metricsPath)
	require.Equal(t, 0, code, stderr)

	tmpl, err := os.ReadFile(toscaPath)
	require.NoError(t, err)
	assert.Contains(t, string(tmpl), "tosca_definitions_version: tosca_simple_profile_for_nfv_1_0_0")

	mf, err := os.ReadFile(manifestPath)
	require.NoError(t, err)
	assert.Contains(t, string(mf), "name: scripts/ping_config.py")
	assert.Contains(t, string(mf), "type: image")

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `descriptor_translations_total{direction="tosca",outcome="success"} 1`)

	code, _, stderr = runCLI(t, "translate", "--input", toscaPath, "--to", "yang", "--output", yangPath)
	require.Equal(t, 0, code, stderr)

	code, stdout, stderr := runCLI(t, "compare", "--generated", yangPath, "--expected", fixture)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "descriptors are equal")
}

func TestTranslate_JSONOutput(t *testing.T) {
	code, stdout, stderr := runCLI(t, "translate", "--input", fixture, "--to", "tosca", "--format", "json")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, `"tosca_definitions_version":"tosca_simple_profile_for_nfv_1_0_0"`)
}

func TestTranslate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown target", []string{"translate", "--input", fixture, "--to", "xml"}, `unknown target format "xml"`},
		{"unknown output format", []string{"translate", "--input", fixture, "--to", "tosca", "--format", "toml"}, `unknown output format "toml"`},
		{"missing input", []string{"translate", "--input", "does-not-exist.yaml", "--to", "tosca"}, "failed to read does-not-exist.yaml"},
		{"required flag", []string{"translate", "--to", "tosca"}, `"input" not set`},
		{"yang input as template", []string{"translate", "--input", fixture, "--to", "yang"}, "validation error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestCompare_Mismatch(t *testing.T) {
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)

	changed := bytes.Replace(data, []byte("max-instance-count: 3"), []byte("max-instance-count: 4"), 1)
	require.NotEqual(t, data, changed)

	path := filepath.Join(t.TempDir(), "changed.yaml")
	require.NoError(t, os.WriteFile(path, changed, 0o644))

	code, stdout, stderr := runCLI(t, "compare", "--generated", path, "--expected", fixture, "--debug")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "ValueError: ")
	assert.Contains(t, stderr, "max-instance-count")
}

func TestTypes(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
translation:
  type_overrides:
    acme.nodes.Fabric: tosca.nodes.nfv.VL
`), 0o644))

	code, stdout, stderr := runCLI(t, "types", "--config", cfg)
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "DIRECTION")
	assert.Regexp(t, `yang\s+tosca\.nodes\.nfv\.riftio\.CP1\s+builtin`, stdout)
	assert.Regexp(t, `yang\s+acme\.nodes\.Fabric\s+custom`, stdout)
	assert.Regexp(t, `tosca\s+vld\s+builtin`, stdout)
}

func TestBadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log:\n  level: loud\n"), 0o644))

	code, _, stderr := runCLI(t, "types", "--config", cfg)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to load configuration")
}
