package architecture

import (
	"strings"

	"archdsl/internal/dsl"
)

// Relation is a directed, labeled edge owned by its source component.
type Relation struct {
	Source      Element
	Target      Element
	Description string
	Tags        []string
}

// DSL renders the relation with both endpoints resolved under prefix.
func (r *Relation) DSL(prefix string) dsl.StatementsList {
	return dsl.Statements(dsl.Relate(
		r.Source.ID(prefix),
		r.Target.ID(prefix),
		r.Description,
		strings.Join(r.Tags, ", "),
	))
}
