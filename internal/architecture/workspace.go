package architecture

import (
	"archdsl/internal/dsl"
)

// Workspace wraps rendered elements in the workspace, model, software
// system and container blocks the diagramming tool expects at top level.
type Workspace struct {
	Name        string
	Description string
	System      string
	Container   string
	Elements    []Element
}

// DSL renders the full workspace. Elements are rendered with an empty
// prefix, so their identifiers match the bare rendering.
func (w Workspace) DSL() dsl.StatementsList {
	body := dsl.StatementsList{}
	for _, el := range w.Elements {
		body = dsl.Concat(body, el.DSL(""))
	}

	systemID := Identifier(w.System, "")
	container := dsl.Assign(Identifier(w.Container, systemID),
		dsl.NewBlock("container", dsl.Props(w.Container), body...))
	system := dsl.Assign(systemID,
		dsl.NewBlock("softwareSystem", dsl.Props(w.System), container))
	model := dsl.NewBlock("model", nil, system)

	return dsl.Statements(dsl.NewBlock("workspace", dsl.Props(w.Name, w.Description), model))
}

// Render renders elements one after another, separated the same way as
// sibling statements.
func Render(elements ...Element) string {
	out := dsl.StatementsList{}
	for _, el := range elements {
		out = dsl.Concat(out, el.DSL(""))
	}
	return out.String()
}
