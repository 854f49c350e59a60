package architecture

import (
	"strings"
)

// DocstringToDescription extracts a one-paragraph description from
// documentation text: common leading indentation is removed, the text is
// trimmed, and only the part before the first blank line is kept.
func DocstringToDescription(doc string) string {
	text := strings.TrimSpace(Dedent(doc))
	first, _, _ := strings.Cut(text, "\n\n")
	return first
}

// Dedent removes the longest whitespace prefix shared by all non-blank
// lines. Whitespace-only lines are emptied.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")

	margin := ""
	found := false
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			margin = lead
			found = true
			continue
		}
		margin = commonPrefix(margin, lead)
	}

	if margin == "" {
		return strings.Join(lines, "\n")
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
