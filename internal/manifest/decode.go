package manifest

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func decodeTOML(data []byte) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// hclFile is the top-level structure of an HCL manifest:
//
//	package = "platform"
//
//	component "Fetch" {
//	  description = "Loads orders."
//	  uses "Store" {
//	    description = "reads"
//	  }
//	}
//
//	group "shop" {
//	  components = ["Fetch"]
//	  group "orders" {}
//	}
type hclFile struct {
	Package    string          `hcl:"package,optional"`
	Groups     []*hclGroup     `hcl:"group,block"`
	Components []*hclComponent `hcl:"component,block"`
}

type hclGroup struct {
	Name       string      `hcl:"name,label"`
	Components []string    `hcl:"components,optional"`
	Groups     []*hclGroup `hcl:"group,block"`
}

type hclComponent struct {
	Name         string            `hcl:"name,label"`
	Description  string            `hcl:"description,optional"`
	Technology   string            `hcl:"technology,optional"`
	URL          string            `hcl:"url,optional"`
	Tags         []string          `hcl:"tags,optional"`
	Properties   map[string]string `hcl:"properties,optional"`
	Perspectives map[string]string `hcl:"perspectives,optional"`
	Uses         []*hclUse         `hcl:"uses,block"`
}

type hclUse struct {
	Target      string   `hcl:"target,label"`
	Description string   `hcl:"description,optional"`
	Tags        []string `hcl:"tags,optional"`
}

func decodeHCL(data []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %w", diags)
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}

	m := &Manifest{Package: parsed.Package}
	for _, g := range parsed.Groups {
		m.Groups = append(m.Groups, g.toGroup())
	}
	for _, c := range parsed.Components {
		comp := Component{
			Name:         c.Name,
			Description:  c.Description,
			Technology:   c.Technology,
			URL:          c.URL,
			Tags:         c.Tags,
			Properties:   c.Properties,
			Perspectives: c.Perspectives,
		}
		for _, u := range c.Uses {
			comp.Uses = append(comp.Uses, Use{Target: u.Target, Description: u.Description, Tags: u.Tags})
		}
		m.Components = append(m.Components, comp)
	}
	return m, nil
}

func (g *hclGroup) toGroup() Group {
	out := Group{Name: g.Name, Components: g.Components}
	for _, child := range g.Groups {
		out.Groups = append(out.Groups, child.toGroup())
	}
	return out
}
