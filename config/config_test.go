package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stewi1014/glmandelbrot/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glmandelbrot.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, viewport.DefaultKeyMap(), cfg.KeyMap())
	assert.Equal(t, viewport.DefaultZoomInKey, cfg.Keys.ZoomIn)
	assert.Equal(t, viewport.DefaultZoomOutKey, cfg.Keys.ZoomOut)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
backend = "glfw"
width = 1024
height = 768
debug = true

[keys]
zoom_in = "plus"
`)

	cfg := Default()
	require.NoError(t, LoadFile(path, &cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, BackendGLFW, cfg.Backend)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 768, cfg.Height)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "posts/interactive_mandelbrot", cfg.Page)
	assert.Equal(t, viewport.KeyMap{"plus": viewport.ZoomIn, "2": viewport.ZoomOut}, cfg.KeyMap())
}

func TestLoadFileUnknownKey(t *testing.T) {
	path := writeConfig(t, `
backend = "gtk"
iterations = 500
`)

	cfg := Default()
	err := LoadFile(path, &cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "iterations")
}

func TestLoadFileErrors(t *testing.T) {
	cfg := Default()
	assert.Error(t, LoadFile(filepath.Join(t.TempDir(), "missing.toml"), &cfg))

	path := writeConfig(t, `backend = `)
	assert.Error(t, LoadFile(path, &cfg))
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"unknown backend": func(c *Config) { c.Backend = "vulkan" },
		"negative size":   func(c *Config) { c.Width, c.Height = -1, 100 },
		"half size":       func(c *Config) { c.Width = 640 },
		"empty key":       func(c *Config) { c.Keys.ZoomOut = "" },
		"same keys":       func(c *Config) { c.Keys.ZoomOut = c.Keys.ZoomIn },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
