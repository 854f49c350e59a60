package architecture

import (
	"errors"
	"fmt"

	"archdsl/internal/dsl"
)

// ErrIncompatibleMember is returned when a component is added to a group
// whose member type cannot hold it.
var ErrIncompatibleMember = errors.New("group cannot hold components")

// Group is a named, ordered container of elements. Groups may hold other
// groups, so a Group[Element] can mix components and nested groups.
type Group[E Element] struct {
	Name    string
	members []E
}

// ComponentsGroup is a group that holds components only.
type ComponentsGroup = Group[*Component]

// NewGroup creates an empty group.
func NewGroup[E Element](name string) *Group[E] {
	return &Group[E]{Name: name}
}

// AddElement appends a member. Adding the same member twice lists it twice.
func (g *Group[E]) AddElement(elem E) {
	g.members = append(g.members, elem)
}

// AddComponent appends c when the group's member type can hold it.
func (g *Group[E]) AddComponent(c *Component) error {
	elem, ok := any(c).(E)
	if !ok {
		return fmt.Errorf("%w: %q", ErrIncompatibleMember, g.Name)
	}
	g.AddElement(elem)
	return nil
}

// Members returns the members in insertion order.
func (g *Group[E]) Members() []E {
	return g.members
}

// ID returns the group identifier under prefix.
func (g *Group[E]) ID(prefix string) string {
	return Identifier(g.Name, prefix)
}

// DSL renders the group block followed by every relation declared by its
// members, at any depth. Members are rendered with the group identifier as
// their prefix.
func (g *Group[E]) DSL(prefix string) dsl.StatementsList {
	id := g.ID(prefix)

	children := dsl.StatementsList{}
	relations := dsl.StatementsList{}
	for _, member := range g.members {
		structural, rels := member.DSL(id).Partition()
		children = dsl.Concat(children, structural)
		relations = dsl.Concat(relations, rels)
	}

	group := dsl.NewBlock("group", dsl.Props(g.Name), children...)
	return dsl.Concat(dsl.Statements(dsl.Assign(id, group)), relations)
}
