package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
log_level = "debug"
[geometry]
usage = "dynamic"
`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "dynamic", cfg.Geometry.Usage)
	assert.Equal(t, "position", cfg.Geometry.MainAttribute)
	assert.True(t, cfg.Geometry.UseIndices)
	assert.Equal(t, 64, cfg.Assets.ReloadQueue)
	assert.Equal(t, uint32(4096), cfg.Registry.MaxGeometryCount)
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"log level":  `log_level = "loud"`,
		"usage":      "[geometry]\nusage = \"stream\"",
		"main":       "[geometry]\nmain_attribute = \"\"",
		"queue":      "[assets]\nreload_queue = 0",
		"registry":   "[registry]\nmax_geometry_count = 0",
		"bad syntax": `log_level = `,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(data))
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geometry.toml")
	require.NoError(t, os.WriteFile(path, []byte("[assets]\ndirectory = \"meshes\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "meshes", cfg.Assets.Directory)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestContextID(t *testing.T) {
	a := NewContextID()
	b := NewContextID()
	assert.NotEqual(t, a, b)
	assert.True(t, a.IsValid())
	assert.False(t, InvalidContextID.IsValid())

	parsed, err := ParseContextID(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)

	_, err = ParseContextID("not-a-uuid")
	assert.Error(t, err)
}

func TestSetLogLevel(t *testing.T) {
	assert.NoError(t, SetLogLevel("warn"))
	assert.Error(t, SetLogLevel("verbose"))
	assert.NoError(t, SetLogLevel("info"))
}
