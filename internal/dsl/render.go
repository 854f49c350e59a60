package dsl

import (
	"strings"
)

// Render renders a single statement to DSL text.
func Render(s Statement) string {
	switch v := s.(type) {
	case Element:
		return renderElement(v)
	case Assignment:
		return v.Identifier + " = " + renderElement(v.Element)
	case Relationship:
		out := v.Source + " -> " + v.Target
		if props := v.Properties.String(); props != "" {
			out += " " + props
		}
		return out
	default:
		return ""
	}
}

func renderElement(e Element) string {
	var b strings.Builder
	b.WriteString(e.Keyword)
	if props := e.Properties.String(); props != "" {
		b.WriteByte(' ')
		b.WriteString(props)
	}
	if e.Children == nil {
		return b.String()
	}

	b.WriteString(" {")
	if body := renderList(*e.Children); body != "" {
		b.WriteByte('\n')
		b.WriteString(indent(body, strings.Repeat(" ", IndentSize)))
		b.WriteByte('\n')
	}
	b.WriteByte('}')
	return b.String()
}

func renderList(l StatementsList) string {
	var b strings.Builder
	for i, s := range l {
		b.WriteString(Render(s))
		b.WriteByte('\n')
		if a, ok := s.(Assignment); ok && a.Element.Children != nil && i != len(l)-1 {
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String())
}

// indent prefixes every non-blank line. Blank lines stay empty so block
// separators never carry trailing whitespace.
func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
