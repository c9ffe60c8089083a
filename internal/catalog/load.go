package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type file struct {
	Gate   []Profile       `yaml:"gate"`
	Window []WindowProfile `yaml:"window"`
}

// LoadFile reads a workshop catalog from YAML. Sections left out of the file
// fall back to the built-in tables.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Gate) == 0 {
		f.Gate = DefaultGateProfiles()
	}
	if len(f.Window) == 0 {
		f.Window = DefaultWindowProfiles()
	}

	seen := make(map[string]bool)
	for _, p := range f.Gate {
		if p.ID == "" {
			return nil, fmt.Errorf("gate profile %q: missing id", p.Name)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate profile id %q", p.ID)
		}
		seen[p.ID] = true
		switch p.Basis {
		case "", PerMeter, PerSqMeter:
		default:
			return nil, fmt.Errorf("gate profile %q: unknown basis %q", p.ID, p.Basis)
		}
	}
	for _, p := range f.Window {
		if p.ID == "" {
			return nil, fmt.Errorf("window profile %q: missing id", p.Name)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate profile id %q", p.ID)
		}
		seen[p.ID] = true
		if !p.Category.Valid() {
			return nil, fmt.Errorf("window profile %q: unknown category %q", p.ID, p.Category)
		}
	}
	return New(f.Gate, f.Window), nil
}
