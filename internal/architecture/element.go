// Package architecture turns annotated program entities into a component
// graph and renders that graph as DSL statements.
//
// Components are nested inside groups, while relations between components
// are graph edges. Rendering keeps the two apart: a group's body only holds
// structural statements, and every relation found anywhere below it is
// emitted after the group block, using the identifier scope of its source.
package architecture

import (
	"archdsl/internal/dsl"
	"archdsl/internal/slug"
)

// Element is anything that can be declared in the rendered model.
type Element interface {
	// ID returns the element identifier under the given scope prefix.
	ID(prefix string) string
	// DSL renders the element and its outgoing relations under prefix.
	DSL(prefix string) dsl.StatementsList
}

// Identifier maps a name and the identifier of its enclosing scope to a
// stable token. Identical inputs always yield identical output; an empty
// name yields a token derived from the prefix alone.
func Identifier(name, prefix string) string {
	return slug.Make(prefix+" "+name, slug.DefaultSeparator)
}
