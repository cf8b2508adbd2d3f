package config

import (
	"fmt"

	"github.com/jnsgruk/dashprep/internal/manifest"
)

// Preset returns a copy of a configuration preset by name.
func Preset(preset string) (*Config, error) {
	var p Config

	switch preset {
	case "cloud":
		p = *cloudPreset
	case "local":
		p = *localPreset
	default:
		return nil, fmt.Errorf("unknown preset '%s'", preset)
	}

	return &p, nil
}

// defaultBrowserConfig is the browser config shared by all presets.
var defaultBrowserConfig browserConfig = browserConfig{
	Engine:   "chromium",
	WithDeps: true,
}

// cloudPreset prepares a hosted notebook or dashboard container, where the process
// can install operating system packages.
var cloudPreset *Config = &Config{
	Python:   "python3",
	Manifest: manifest.DefaultPath,
	Browser:  defaultBrowserConfig,
}

// localPreset is designed for developer machines, where the browser's system
// dependencies are expected to be present already.
var localPreset *Config = &Config{
	Python:   "python3",
	Manifest: manifest.DefaultPath,
	Browser: browserConfig{
		Engine:   defaultBrowserConfig.Engine,
		WithDeps: false,
	},
}
