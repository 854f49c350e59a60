package testutil

import (
	"strings"
)

// NormalizeText prepares DSL text for stable comparison: line endings
// become "\n", trailing whitespace is removed from every line, and the
// text ends with exactly one newline.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}
