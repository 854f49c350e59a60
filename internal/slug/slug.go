// Package slug normalizes free text into lowercase identifier tokens.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSeparator joins words in generated tokens.
const DefaultSeparator = "_"

// Make lowercases text, folds accented letters to their ASCII base, and
// collapses every run of characters outside [a-z0-9] into one separator.
// Separators are trimmed from both ends. Make is a pure function.
func Make(text, separator string) string {
	folded := fold(text)

	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteString(separator)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// fold strips combining marks after compatibility decomposition, so
// "Café" becomes "Cafe". Runes without an ASCII base are left alone and
// later treated as separators.
func fold(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}
