package architecture

import "fmt"

type targetKind int

const (
	targetByName targetKind = iota
	targetByComponent
	targetByEntity
)

// Target identifies the far end of a relation. Build one with ByName,
// ByComponent or ByEntity.
type Target struct {
	kind      targetKind
	name      string
	component *Component
	entity    Entity
}

// ByName targets a free-standing component that only carries a name.
func ByName(name string) Target {
	return Target{kind: targetByName, name: name}
}

// ByComponent targets an already built component.
func ByComponent(c *Component) Target {
	return Target{kind: targetByComponent, component: c}
}

// ByEntity targets the component materialized for an entity.
func ByEntity(e Entity) Target {
	return Target{kind: targetByEntity, entity: e}
}

// String describes the target for logs and errors.
func (t Target) String() string {
	switch t.kind {
	case targetByComponent:
		if t.component == nil {
			return "component(<nil>)"
		}
		return fmt.Sprintf("component(%s)", t.component.Name)
	case targetByEntity:
		return fmt.Sprintf("entity(%s)", t.entity.Ref)
	default:
		return fmt.Sprintf("name(%s)", t.name)
	}
}
