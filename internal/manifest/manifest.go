// Package manifest declares components, groups and relations in a YAML,
// TOML or HCL file, as an alternative to source annotations.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported manifest format")
	// ErrInvalid is returned when a manifest fails validation.
	ErrInvalid = errors.New("invalid manifest")
)

// Manifest is the declarative model. Component names are unique within a
// manifest and double as the names groups refer to.
type Manifest struct {
	// Package namespaces the components for target resolution; uses
	// targets of annotated code reach them as "package.Name".
	Package    string      `yaml:"package" toml:"package"`
	Groups     []Group     `yaml:"groups" toml:"groups"`
	Components []Component `yaml:"components" toml:"components"`
}

// Group lists component names and nested groups.
type Group struct {
	Name       string   `yaml:"name" toml:"name"`
	Components []string `yaml:"components" toml:"components"`
	Groups     []Group  `yaml:"groups" toml:"groups"`
}

// Component describes one component. Properties and perspectives render
// in key order.
type Component struct {
	Name         string            `yaml:"name" toml:"name"`
	Description  string            `yaml:"description" toml:"description"`
	Technology   string            `yaml:"technology" toml:"technology"`
	URL          string            `yaml:"url" toml:"url"`
	Tags         []string          `yaml:"tags" toml:"tags"`
	Properties   map[string]string `yaml:"properties" toml:"properties"`
	Perspectives map[string]string `yaml:"perspectives" toml:"perspectives"`
	Uses         []Use             `yaml:"uses" toml:"uses"`
}

// Use is an outgoing relation. Target names a manifest component, a
// "package.Name" entity, or a free-standing component.
type Use struct {
	Target      string   `yaml:"target" toml:"target"`
	Description string   `yaml:"description" toml:"description"`
	Tags        []string `yaml:"tags" toml:"tags"`
}

// Format is a manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m, err := Parse(data, format, path)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Parse decodes and validates manifest data. filename is used in messages.
func Parse(data []byte, format Format, filename string) (*Manifest, error) {
	var (
		m   *Manifest
		err error
	)
	switch format {
	case FormatYAML:
		m, err = decodeYAML(data)
	case FormatTOML:
		m, err = decodeTOML(data)
	case FormatHCL:
		m, err = decodeHCL(data, filename)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, filename, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// Validate checks names and references.
func (m *Manifest) Validate() error {
	names := make(map[string]bool, len(m.Components))
	for i, c := range m.Components {
		if c.Name == "" {
			return fmt.Errorf("%w: component %d has no name", ErrInvalid, i)
		}
		if names[c.Name] {
			return fmt.Errorf("%w: duplicate component %q", ErrInvalid, c.Name)
		}
		names[c.Name] = true
		for _, u := range c.Uses {
			if u.Target == "" {
				return fmt.Errorf("%w: component %q has a relation without target", ErrInvalid, c.Name)
			}
		}
	}

	var checkGroups func(groups []Group, path string) error
	checkGroups = func(groups []Group, path string) error {
		for _, g := range groups {
			if g.Name == "" {
				return fmt.Errorf("%w: unnamed group in %q", ErrInvalid, path)
			}
			for _, ref := range g.Components {
				if !names[ref] {
					return fmt.Errorf("%w: group %q lists unknown component %q", ErrInvalid, g.Name, ref)
				}
			}
			if err := checkGroups(g.Groups, path+"/"+g.Name); err != nil {
				return err
			}
		}
		return nil
	}
	return checkGroups(m.Groups, "")
}
