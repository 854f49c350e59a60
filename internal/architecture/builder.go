package architecture

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"archdsl/internal/slogutil"
)

// ErrUndeclaredTarget is returned in strict mode when a relation targets a
// bare name instead of a declared entity or component.
var ErrUndeclaredTarget = errors.New("relation target is not declared")

// ErrNilComponent is returned when a ByComponent target wraps nil.
var ErrNilComponent = errors.New("relation target component is nil")

// EntityRef identifies an annotated program entity.
type EntityRef struct {
	Package string
	Name    string
}

// String returns "pkg.Name", or just the name when there is no package.
func (r EntityRef) String() string {
	if r.Package == "" {
		return r.Name
	}
	return r.Package + "." + r.Name
}

// Entity is an annotated program entity together with its documentation.
type Entity struct {
	Ref EntityRef
	Doc string
}

// ComponentHolder is implemented by groups that can take components.
type ComponentHolder interface {
	AddComponent(c *Component) error
}

// Builder materializes components for entities and wires relations and
// group membership between them. It owns the entity to component mapping;
// callers' values are never modified. A Builder is not safe for concurrent
// use: finish building before rendering.
type Builder struct {
	// Strict rejects ByName targets instead of creating a standalone
	// component for them.
	Strict bool

	logger     *slog.Logger
	declared   map[EntityRef]Entity
	components map[EntityRef]*Component
	order      []EntityRef
}

// NewBuilder creates an empty builder. A nil logger discards output.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	b := &Builder{logger: logger}
	b.Reset()
	return b
}

// Reset forgets every declared entity and materialized component.
func (b *Builder) Reset() {
	b.declared = make(map[EntityRef]Entity)
	b.components = make(map[EntityRef]*Component)
	b.order = nil
}

// Declare records an entity as known without materializing its component.
func (b *Builder) Declare(e Entity) {
	if _, ok := b.declared[e.Ref]; !ok {
		b.declared[e.Ref] = e
	}
}

// Lookup returns a declared entity.
func (b *Builder) Lookup(ref EntityRef) (Entity, bool) {
	e, ok := b.declared[ref]
	return e, ok
}

// ComponentFor returns the component of e, creating it on first use with
// e's name and the first paragraph of its documentation.
func (b *Builder) ComponentFor(e Entity) *Component {
	if c, ok := b.components[e.Ref]; ok {
		return c
	}

	b.Declare(e)
	c := &Component{
		Name:        e.Ref.Name,
		Description: DocstringToDescription(e.Doc),
	}
	b.components[e.Ref] = c
	b.order = append(b.order, e.Ref)

	b.logger.Debug("Materialized component", "entity", e.Ref.String(), "id", c.ID(""))
	return c
}

// Components returns materialized components in creation order.
func (b *Builder) Components() []*Component {
	out := make([]*Component, 0, len(b.order))
	for _, ref := range b.order {
		out = append(out, b.components[ref])
	}
	return out
}

// Resolve turns a target into a component.
func (b *Builder) Resolve(t Target) (*Component, error) {
	switch t.kind {
	case targetByComponent:
		if t.component == nil {
			return nil, ErrNilComponent
		}
		return t.component, nil
	case targetByEntity:
		return b.ComponentFor(t.entity), nil
	default:
		if b.Strict {
			return nil, fmt.Errorf("%w: %q", ErrUndeclaredTarget, t.name)
		}
		return NewComponent(t.name), nil
	}
}

// RelatesTo records that e relates to target and returns e unchanged, so
// calls can be stacked on the same entity.
func (b *Builder) RelatesTo(e Entity, target Target, description string, tags ...string) (Entity, error) {
	dst, err := b.Resolve(target)
	if err != nil {
		return e, fmt.Errorf("relation from %s: %w", e.Ref, err)
	}

	src := b.ComponentFor(e)
	src.AddRelation(&Relation{
		Source:      src,
		Target:      dst,
		Description: description,
		Tags:        tags,
	})

	b.logger.Debug("Added relation", "source", e.Ref.String(), "target", target.String(), "description", description)
	return e, nil
}

// IncludedIn adds e's component to group and returns e unchanged.
func (b *Builder) IncludedIn(e Entity, group ComponentHolder) (Entity, error) {
	if err := group.AddComponent(b.ComponentFor(e)); err != nil {
		return e, fmt.Errorf("membership of %s: %w", e.Ref, err)
	}
	return e, nil
}

// TargetFor resolves a written target name relative to pkg: a declared
// entity of the same package first, then a "pkg.Name" qualified entity,
// else a free-standing component named target.
func (b *Builder) TargetFor(pkg, target string) Target {
	if e, ok := b.Lookup(EntityRef{Package: pkg, Name: target}); ok {
		return ByEntity(e)
	}
	if qualifier, name, ok := strings.Cut(target, "."); ok {
		if e, ok := b.Lookup(EntityRef{Package: qualifier, Name: name}); ok {
			return ByEntity(e)
		}
	}
	return ByName(target)
}
