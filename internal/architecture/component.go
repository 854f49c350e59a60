package architecture

import (
	"archdsl/internal/dsl"
)

// Component is one architectural unit.
type Component struct {
	Name         string
	Description  string
	Technology   string
	URL          string
	Tags         []string
	Properties   OrderedMap
	Perspectives OrderedMap

	relations []*Relation
}

// NewComponent creates a component with only a name.
func NewComponent(name string) *Component {
	return &Component{Name: name}
}

// AddRelation appends an outgoing relation. Duplicates are kept.
func (c *Component) AddRelation(r *Relation) {
	c.relations = append(c.relations, r)
}

// Relations returns the outgoing relations in the order they were added.
func (c *Component) Relations() []*Relation {
	return c.relations
}

// ID returns the component identifier under prefix.
func (c *Component) ID(prefix string) string {
	return Identifier(c.Name, prefix)
}

// DSL renders the component declaration followed by its relations. Both the
// declaration and the relations use prefix, so a relation keeps pointing at
// the same identifiers wherever its statement ends up.
func (c *Component) DSL(prefix string) dsl.StatementsList {
	candidates := []dsl.Element{
		dsl.NewElement("description", c.Description),
		dsl.NewElement("technology", c.Technology),
		dsl.NewElement("url", c.URL),
		dsl.NewElement("tags", c.Tags...),
		mapBlock("properties", &c.Properties),
		mapBlock("perspectives", &c.Perspectives),
	}

	var children []dsl.Statement
	for _, el := range candidates {
		if el.IsEmpty() {
			continue
		}
		children = append(children, el)
	}

	element := dsl.NewElement("component", c.Name)
	if len(children) > 0 {
		element = dsl.NewBlock("component", dsl.Props(c.Name), children...)
	}

	out := dsl.Statements(dsl.Assign(c.ID(prefix), element))
	for _, r := range c.relations {
		out = dsl.Concat(out, r.DSL(prefix))
	}
	return out
}

func mapBlock(keyword string, m *OrderedMap) dsl.Element {
	var entries []dsl.Statement
	m.Each(func(k, v string) {
		entries = append(entries, dsl.NewElement(k, v))
	})
	return dsl.NewBlock(keyword, nil, entries...)
}
