// Package config holds the viewer settings read from flags and an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/stewi1014/glmandelbrot/viewport"
)

const (
	BackendGTK  = "gtk"
	BackendGLFW = "glfw"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is read from an optional TOML file and then overridden by flags.
type Config struct {
	Backend string    `toml:"backend"`
	Width   int       `toml:"width"`
	Height  int       `toml:"height"`
	Page    string    `toml:"page"`
	Debug   bool      `toml:"debug"`
	Keys    KeyConfig `toml:"keys"`
}

type KeyConfig struct {
	ZoomIn  string `toml:"zoom_in"`
	ZoomOut string `toml:"zoom_out"`
}

// Default opens a GTK window at 60% of the primary monitor.
func Default() Config {
	return Config{
		Backend: BackendGTK,
		Page:    "posts/interactive_mandelbrot",
		Keys: KeyConfig{
			ZoomIn:  viewport.DefaultZoomInKey,
			ZoomOut: viewport.DefaultZoomOutKey,
		},
	}
}

// LoadFile decodes the TOML file at path over cfg.
// Keys the file sets that Config does not know are an error.
func LoadFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("reading config %v: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return fmt.Errorf("%w: unknown keys in %v: %v", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}

	return nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendGTK, BackendGLFW:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}

	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: negative window size %vx%v", ErrInvalidConfig, c.Width, c.Height)
	}
	if (c.Width == 0) != (c.Height == 0) {
		return fmt.Errorf("%w: width and height must both be set or both be 0", ErrInvalidConfig)
	}

	if c.Keys.ZoomIn == "" || c.Keys.ZoomOut == "" {
		return fmt.Errorf("%w: zoom keys must not be empty", ErrInvalidConfig)
	}
	if c.Keys.ZoomIn == c.Keys.ZoomOut {
		return fmt.Errorf("%w: zoom in and zoom out are both bound to %q", ErrInvalidConfig, c.Keys.ZoomIn)
	}

	return nil
}

func (c Config) KeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		c.Keys.ZoomIn:  viewport.ZoomIn,
		c.Keys.ZoomOut: viewport.ZoomOut,
	}
}
