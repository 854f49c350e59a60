package manifest

import (
	"sort"

	"archdsl/internal/architecture"
)

// Declare registers the manifest's components with b without building
// them, so other sources can target them first.
func (m *Manifest) Declare(b *architecture.Builder) map[string]architecture.Entity {
	entities := make(map[string]architecture.Entity, len(m.Components))
	for _, c := range m.Components {
		e := architecture.Entity{Ref: architecture.EntityRef{Package: m.Package, Name: c.Name}}
		b.Declare(e)
		entities[c.Name] = e
	}
	return entities
}

// Build declares the manifest's components with b, applies their fields
// and relations, and returns the top-level groups followed by components
// no group lists, both in manifest order.
func (m *Manifest) Build(b *architecture.Builder) ([]architecture.Element, error) {
	entities := m.Declare(b)

	for _, c := range m.Components {
		e := entities[c.Name]
		comp := b.ComponentFor(e)
		comp.Description = c.Description
		comp.Technology = c.Technology
		comp.URL = c.URL
		comp.Tags = append(comp.Tags, c.Tags...)
		setSorted(&comp.Properties, c.Properties)
		setSorted(&comp.Perspectives, c.Perspectives)

		for _, u := range c.Uses {
			if _, err := b.RelatesTo(e, b.TargetFor(m.Package, u.Target), u.Description, u.Tags...); err != nil {
				return nil, err
			}
		}
	}

	grouped := make(map[string]bool)
	var elements []architecture.Element
	for _, g := range m.Groups {
		group, err := buildGroup(b, g, entities, grouped)
		if err != nil {
			return nil, err
		}
		elements = append(elements, group)
	}
	for _, c := range m.Components {
		if !grouped[c.Name] {
			elements = append(elements, b.ComponentFor(entities[c.Name]))
		}
	}
	return elements, nil
}

// buildGroup adds the group's components before its nested groups.
func buildGroup(b *architecture.Builder, g Group, entities map[string]architecture.Entity, grouped map[string]bool) (*architecture.Group[architecture.Element], error) {
	group := architecture.NewGroup[architecture.Element](g.Name)
	for _, name := range g.Components {
		if _, err := b.IncludedIn(entities[name], group); err != nil {
			return nil, err
		}
		grouped[name] = true
	}
	for _, child := range g.Groups {
		nested, err := buildGroup(b, child, entities, grouped)
		if err != nil {
			return nil, err
		}
		group.AddElement(nested)
	}
	return group, nil
}

func setSorted(dst *architecture.OrderedMap, src map[string]string) {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		dst.Set(k, src[k])
	}
}
