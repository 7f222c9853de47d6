// Package config loads town generation presets from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Preset describes one town generation run.
type Preset struct {
	// Size is the number of inner patches, typically 6..40.
	Size int `yaml:"size" json:"size"`
	// Seed <= 0 asks the generator to pick one from the clock.
	Seed int64 `yaml:"seed" json:"seed"`

	Output Output `yaml:"output" json:"output"`
}

// Output selects the artifacts to write.
type Output struct {
	// Document is the path of the town document; empty writes to stdout.
	Document string `yaml:"document" json:"document"`
	// Format is "json" or "yaml".
	Format string `yaml:"format" json:"format"`
	// Map is the path of the rendered PNG; empty skips rendering.
	Map string `yaml:"map" json:"map"`
	// Scale is the rendered pixels per map unit.
	Scale float64 `yaml:"scale" json:"scale"`
}

// Default returns the preset used when no file is given.
func Default() *Preset {
	return &Preset{
		Size: 15,
		Output: Output{
			Format: "json",
			Scale:  4,
		},
	}
}

// Load reads a preset from a YAML file.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset file: %w", err)
	}

	preset := Default()
	if err := yaml.Unmarshal(data, preset); err != nil {
		return nil, fmt.Errorf("parsing preset YAML: %w", err)
	}
	if err := preset.Validate(); err != nil {
		return nil, err
	}
	return preset, nil
}

// LoadProject loads the preset from a project directory, looking for
// town.yaml in the given directory.
func LoadProject(projectDir string) (*Preset, error) {
	return Load(filepath.Join(projectDir, "town.yaml"))
}

// Validate checks preset ranges.
func (p *Preset) Validate() error {
	if p.Size < 3 {
		return fmt.Errorf("size %d too small; need at least 3 patches", p.Size)
	}
	if p.Size > 100 {
		return fmt.Errorf("size %d too large; the generator targets sizes up to 40", p.Size)
	}
	switch p.Output.Format {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", p.Output.Format)
	}
	if p.Output.Scale < 0 {
		return fmt.Errorf("negative render scale %f", p.Output.Scale)
	}
	return nil
}

// SizeName returns the advisory taxonomy name for a town size.
func SizeName(size int) string {
	switch {
	case size < 10:
		return "Small Town"
	case size < 15:
		return "Large Town"
	case size < 24:
		return "Small City"
	case size < 40:
		return "Large City"
	default:
		return "Metropolis"
	}
}
