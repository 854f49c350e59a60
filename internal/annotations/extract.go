//go:build cgo

package annotations

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"archdsl/internal/architecture"
)

type extractor struct {
	source []byte
	file   string
	lang   Language
	prefix string
	pkg    string
	decls  []Declaration
}

func (x *extractor) content(n *sitter.Node) string {
	return n.Content(x.source)
}

func (x *extractor) add(n *sitter.Node, name, kind, doc string, directives []Directive) {
	x.decls = append(x.decls, Declaration{
		File:       x.file,
		Line:       int(n.StartPoint().Row) + 1,
		Language:   x.lang,
		Package:    x.pkg,
		Name:       name,
		Kind:       kind,
		Doc:        doc,
		Directives: directives,
	})
}

// goFile extracts top-level functions, methods and types.
func (x *extractor) goFile(root *sitter.Node) error {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "package_clause":
			if id := n.NamedChild(0); id != nil {
				x.pkg = x.content(id)
			}

		case "function_declaration", "method_declaration":
			nameNode := n.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			name, kind := x.content(nameNode), "function"
			if n.Type() == "method_declaration" {
				if recv := receiverType(n, x.source); recv != "" {
					name = recv + "." + name
				}
				kind = "method"
			}
			if err := x.addWithComments(n, n, name, kind); err != nil {
				return err
			}

		case "type_declaration":
			var specs []*sitter.Node
			for j := 0; j < int(n.NamedChildCount()); j++ {
				child := n.NamedChild(j)
				if child.Type() == "type_spec" || child.Type() == "type_alias" {
					specs = append(specs, child)
				}
			}
			for _, spec := range specs {
				nameNode := spec.ChildByFieldName("name")
				if nameNode == nil {
					continue
				}
				// An ungrouped declaration carries its doc above the type keyword.
				docNode := spec
				if len(specs) == 1 {
					docNode = n
				}
				if err := x.addWithComments(spec, docNode, x.content(nameNode), "type"); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (x *extractor) addWithComments(n, docNode *sitter.Node, name, kind string) error {
	lines, first := x.leadingComments(docNode)
	doc, directives, err := splitDoc(lines, first, x.prefix)
	if err != nil {
		return err
	}
	x.add(n, name, kind, doc, directives)
	return nil
}

// receiverType returns the bare receiver type name of a method.
func receiverType(n *sitter.Node, source []byte) string {
	recv := n.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	for i := 0; i < int(recv.NamedChildCount()); i++ {
		param := recv.NamedChild(i)
		if param.Type() != "parameter_declaration" {
			continue
		}
		typ := param.ChildByFieldName("type")
		if typ == nil {
			continue
		}
		name := strings.TrimLeft(typ.Content(source), "*")
		name, _, _ = strings.Cut(name, "[")
		return strings.TrimSpace(name)
	}
	return ""
}

// leadingComments returns the text of the comment block that ends on the
// line directly above n, with comment markers removed, and the 1-based
// line of its first line.
func (x *extractor) leadingComments(n *sitter.Node) ([]string, int) {
	var blocks [][]string
	row := n.StartPoint().Row
	first := int(row) + 1

	for p := n.PrevSibling(); p != nil; p = p.PrevSibling() {
		if !p.IsNamed() {
			// statement terminators
			continue
		}
		if p.Type() != "comment" || p.EndPoint().Row+1 != row {
			break
		}
		blocks = append(blocks, commentLines(x.content(p)))
		row = p.StartPoint().Row
		first = int(row) + 1
	}

	var lines []string
	for i := len(blocks) - 1; i >= 0; i-- {
		lines = append(lines, blocks[i]...)
	}
	return lines, first
}

// commentLines strips comment markers from a single comment node.
func commentLines(text string) []string {
	switch {
	case strings.HasPrefix(text, "//"):
		return []string{trimOneSpace(strings.TrimPrefix(text, "//"))}
	case strings.HasPrefix(text, "#"):
		return []string{trimOneSpace(strings.TrimPrefix(text, "#"))}
	case strings.HasPrefix(text, "/*"):
		body := strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
		lines := strings.Split(body, "\n")
		for i, line := range lines {
			trimmed := strings.TrimLeft(line, " \t")
			if strings.HasPrefix(trimmed, "*") {
				line = trimOneSpace(strings.TrimPrefix(trimmed, "*"))
			}
			lines[i] = line
		}
		return lines
	default:
		return []string{text}
	}
}

func trimOneSpace(s string) string {
	return strings.TrimPrefix(s, " ")
}

// pythonFile extracts top-level functions and classes, and the methods of
// those classes.
func (x *extractor) pythonFile(root *sitter.Node) error {
	x.pkg = pythonModule(x.file)
	return x.pythonBlock(root, "")
}

func (x *extractor) pythonBlock(block *sitter.Node, class string) error {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		outer := block.NamedChild(i)
		def := outer
		if outer.Type() == "decorated_definition" {
			def = outer.ChildByFieldName("definition")
			if def == nil {
				continue
			}
		}

		var kind string
		switch def.Type() {
		case "function_definition":
			kind = "function"
			if class != "" {
				kind = "method"
			}
		case "class_definition":
			kind = "class"
		default:
			continue
		}

		nameNode := def.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := x.content(nameNode)
		if class != "" {
			name = class + "." + name
		}

		if err := x.addPython(outer, def, name, kind); err != nil {
			return err
		}

		if kind == "class" && class == "" {
			if body := def.ChildByFieldName("body"); body != nil {
				if err := x.pythonBlock(body, name); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (x *extractor) addPython(outer, def *sitter.Node, name, kind string) error {
	lines, first := x.leadingComments(outer)
	_, directives, err := splitDoc(lines, first, x.prefix)
	if err != nil {
		return err
	}

	var doc string
	if str := docstringNode(def); str != nil {
		var more []Directive
		doc, more, err = splitDoc(strings.Split(cleanDocstring(x.content(str)), "\n"), int(str.StartPoint().Row)+1, x.prefix)
		if err != nil {
			return err
		}
		directives = append(directives, more...)
	}

	x.add(outer, name, kind, doc, directives)
	return nil
}

// docstringNode returns the string literal opening def's body, if any.
func docstringNode(def *sitter.Node) *sitter.Node {
	body := def.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return nil
	}
	stmt := body.NamedChild(0)
	if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
		return nil
	}
	if str := stmt.NamedChild(0); str.Type() == "string" {
		return str
	}
	return nil
}

// cleanDocstring strips the literal's prefix and quotes and removes the
// indentation of continuation lines. Line positions are preserved.
func cleanDocstring(literal string) string {
	s := strings.TrimLeft(literal, "rRuUbBfF")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			s = s[len(q) : len(s)-len(q)]
			break
		}
	}

	first, rest, found := strings.Cut(s, "\n")
	first = strings.TrimSpace(first)
	if !found {
		return first
	}
	return first + "\n" + architecture.Dedent(rest)
}
