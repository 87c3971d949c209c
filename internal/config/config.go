// Package config loads YAML run configuration for the ising CLI.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"ising/internal/sims/lattice"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/ising.yaml
var defaultYAML []byte

// File is the on-disk configuration layout.
type File struct {
	Lattice lattice.Config `yaml:"lattice"`
	Run     Run            `yaml:"run"`
}

// Run holds host-side settings that do not affect the model.
type Run struct {
	// Frames is the number of ticks the headless runner advances.
	Frames      int    `yaml:"frames"`
	// TPS paces ticks; zero runs as fast as possible.
	TPS         int    `yaml:"tps"`
	MetricsAddr string `yaml:"metrics_addr"`
	Color       bool   `yaml:"color"`
	// Scale is the pixel size of one site in the viewer.
	Scale       int    `yaml:"scale"`
}

// Default returns the built-in configuration.
func Default() File {
	return File{
		Lattice: lattice.DefaultConfig(),
		Run:     Run{Frames: 1, Color: true, Scale: 4},
	}
}

// Validate checks both sections.
func (f File) Validate() error {
	if err := f.Lattice.Validate(); err != nil {
		return fmt.Errorf("lattice: %w", err)
	}
	if f.Run.Frames < 0 {
		return fmt.Errorf("run: frames must not be negative, got %d", f.Run.Frames)
	}
	if f.Run.TPS < 0 {
		return fmt.Errorf("run: tps must not be negative, got %d", f.Run.TPS)
	}
	if f.Run.Scale < 1 {
		return fmt.Errorf("run: scale must be at least 1, got %d", f.Run.Scale)
	}
	return nil
}

// Load resolves the configuration.
// Search order: customPath -> ~/.ising/config.yaml -> ./configs/ising.yaml -> embedded default.
// A missing customPath is an error; missing fallbacks are skipped. Keys absent
// from the chosen file keep their built-in values.
func Load(customPath string) (File, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return File{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return parse(customPath, data)
	}

	for _, path := range []string{userConfigPath(), filepath.Join("configs", "ising.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return File{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return parse(path, data)
	}

	return parse("embedded default", defaultYAML)
}

func parse(origin string, data []byte) (File, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return File{}, fmt.Errorf("failed to parse config %s: %w", origin, err)
	}
	if err := cfg.Validate(); err != nil {
		return File{}, fmt.Errorf("invalid config %s: %w", origin, err)
	}
	return cfg, nil
}

// userConfigPath returns the per-user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ising", "config.yaml")
}
