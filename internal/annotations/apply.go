package annotations

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"archdsl/internal/architecture"
)

// Model is the result of applying declarations to a builder.
type Model struct {
	// Elements holds top-level groups and ungrouped annotated components
	// in order of first appearance.
	Elements []architecture.Element
	// Groups maps a slash separated group path to its group.
	Groups map[string]*architecture.Group[architecture.Element]
	// Merged lists entities declared from more than one directory. They
	// share a package and name, so they render as a single component.
	Merged []Merge
}

// Merge names the directories whose declarations became one component.
type Merge struct {
	Ref  architecture.EntityRef
	Dirs []string
}

type applier struct {
	builder *architecture.Builder
	model   *Model
	seen    map[architecture.EntityRef]bool
}

// Apply registers every declaration with b, then applies directives in
// declaration order, so a uses target may be declared later in the scan.
func Apply(b *architecture.Builder, decls []Declaration) (*Model, error) {
	a := &applier{
		builder: b,
		model:   &Model{Groups: make(map[string]*architecture.Group[architecture.Element])},
		seen:    make(map[architecture.EntityRef]bool),
	}

	dirs := make(map[architecture.EntityRef][]string)
	var order []architecture.EntityRef
	for _, d := range decls {
		e := d.Entity()
		b.Declare(e)

		dir := path.Dir(d.File)
		known := dirs[e.Ref]
		if len(known) == 0 {
			order = append(order, e.Ref)
		}
		if !slices.Contains(known, dir) {
			dirs[e.Ref] = append(known, dir)
		}
	}
	for _, ref := range order {
		if len(dirs[ref]) > 1 {
			a.model.Merged = append(a.model.Merged, Merge{Ref: ref, Dirs: dirs[ref]})
		}
	}

	for _, d := range decls {
		if !d.Annotated() {
			continue
		}
		if err := a.apply(d); err != nil {
			return nil, fmt.Errorf("%s:%d %s: %w", d.File, d.Line, d.Name, err)
		}
	}
	return a.model, nil
}

func (a *applier) apply(d Declaration) error {
	entity := d.Entity()
	component := a.builder.ComponentFor(entity)
	grouped := false

	for _, dir := range d.Directives {
		switch dir.Kind {
		case KindGroup:
			if _, err := a.builder.IncludedIn(entity, a.group(dir.Arg(0))); err != nil {
				return err
			}
			grouped = true
		case KindUses:
			target := a.builder.TargetFor(d.Package, dir.Arg(0))
			if _, err := a.builder.RelatesTo(entity, target, dir.Arg(1), SplitTags(dir.Arg(2))...); err != nil {
				return err
			}
		case KindTechnology:
			component.Technology = dir.Arg(0)
		case KindURL:
			component.URL = dir.Arg(0)
		case KindTags:
			component.Tags = append(component.Tags, SplitTags(dir.Arg(0))...)
		case KindProperty:
			component.Properties.Set(dir.Arg(0), dir.Arg(1))
		case KindPerspective:
			component.Perspectives.Set(dir.Arg(0), dir.Arg(1))
		case KindName:
			component.Name = dir.Arg(0)
		default:
			return fmt.Errorf("%w: unknown kind %q", ErrInvalidDirective, dir.Kind)
		}
	}

	if !grouped && !a.seen[entity.Ref] {
		a.model.Elements = append(a.model.Elements, component)
	}
	a.seen[entity.Ref] = true
	return nil
}

// group returns the group at path, creating it and its parents on first
// use. New top-level groups are appended to the model's elements.
func (a *applier) group(path string) *architecture.Group[architecture.Element] {
	if g, ok := a.model.Groups[path]; ok {
		return g
	}

	parentPath, name, nested := cutLast(path, "/")
	g := architecture.NewGroup[architecture.Element](name)
	a.model.Groups[path] = g

	if nested {
		a.group(parentPath).AddElement(g)
	} else {
		a.model.Elements = append(a.model.Elements, g)
	}
	return g
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return "", s, false
}
