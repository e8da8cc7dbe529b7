package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gravestench/nitrogfx/pkg"
)

type DecodeConfig struct {
	Alpha    string `toml:"alpha"`    // "opaque" or "flag"
	Sections string `toml:"sections"` // "strict" or "lenient"
}

type RenderConfig struct {
	Scale int `toml:"scale"`
}

type InfoConfig struct {
	Workers int `toml:"workers"`
}

type Config struct {
	Decode DecodeConfig `toml:"decode"`
	Render RenderConfig `toml:"render"`
	Info   InfoConfig   `toml:"info"`
}

func defaultConfig() *Config {
	return &Config{
		Decode: DecodeConfig{
			Alpha:    "opaque",
			Sections: "strict",
		},
		Render: RenderConfig{
			Scale: 1,
		},
		Info: InfoConfig{
			Workers: 4,
		},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if _, err := cfg.Options(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Options translates the decode section into decoder options.
func (c *Config) Options() ([]pkg.Option, error) {
	var opts []pkg.Option

	switch strings.ToLower(c.Decode.Alpha) {
	case "", "opaque":
		opts = append(opts, pkg.WithAlpha(pkg.AlphaOpaque))
	case "flag":
		opts = append(opts, pkg.WithAlpha(pkg.AlphaFromFlag))
	default:
		return nil, fmt.Errorf("invalid alpha mode %q (expected opaque or flag)", c.Decode.Alpha)
	}

	switch strings.ToLower(c.Decode.Sections) {
	case "", "strict":
		opts = append(opts, pkg.WithSectionPolicy(pkg.SectionsStrict))
	case "lenient":
		opts = append(opts, pkg.WithSectionPolicy(pkg.SectionsLenient))
	default:
		return nil, fmt.Errorf("invalid section policy %q (expected strict or lenient)", c.Decode.Sections)
	}

	return opts, nil
}
