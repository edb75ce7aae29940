package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/animageo/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReportsCube(t *testing.T) {
	var out bytes.Buffer
	opts := options{normals: "face", tangents: true, barycentric: true}
	require.NoError(t, run(opts, filepath.Join("assets", "models", "cube.obj"), &out))

	report := out.String()
	assert.Contains(t, report, "geometry:   cube")
	assert.Contains(t, report, "vertices:   36")
	assert.Contains(t, report, "faces:      12")
	assert.Contains(t, report, "attributes: position, normal, texcoord0, tangent, barycentric")
	// 36 vertices of 15 floats plus 36 indices.
	assert.Contains(t, report, "buffers:    2304 bytes in 6 buffers")
}

func TestRunRejectsUnknownBackend(t *testing.T) {
	err := run(options{normals: "none", backend: "opengl"}, filepath.Join("assets", "models", "cube.obj"), &bytes.Buffer{})
	assert.ErrorIs(t, err, core.ErrConfig)
}

func TestRunRequiresNormalsForTangents(t *testing.T) {
	var out bytes.Buffer
	err := run(options{normals: "none", tangents: true}, filepath.Join("assets", "models", "cube.obj"), &out)
	assert.ErrorIs(t, err, core.ErrMissingNormals)
}

func TestRunRejectsUnknownNormalsMode(t *testing.T) {
	err := run(options{normals: "smooth"}, filepath.Join("assets", "models", "cube.obj"), &bytes.Buffer{})
	assert.ErrorIs(t, err, core.ErrConfig)
}

func TestRunWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "animageo.toml")
	require.NoError(t, os.WriteFile(config, []byte("log_level = \"warn\"\n[geometry]\nuse_indices = false\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(options{config: config, normals: "none"}, filepath.Join("assets", "models", "cube.obj"), &out))
	assert.Contains(t, out.String(), "vertices:   20")
	assert.NotContains(t, out.String(), "indices")
}
