package dsl

import "strings"

// Properties is an ordered list of positional property values.
// Trailing empty values are dropped on render so optional parameters can be
// omitted; interior empty values are kept as "" to preserve positions.
type Properties []string

// Props builds a Properties list from values.
func Props(values ...string) Properties {
	return Properties(values)
}

// Empty reports whether no value is set.
func (p Properties) Empty() bool {
	for _, v := range p {
		if v != "" {
			return false
		}
	}
	return true
}

// trimmed returns the list without trailing empty values.
func (p Properties) trimmed() Properties {
	n := len(p)
	for n > 0 && p[n-1] == "" {
		n--
	}
	return p[:n]
}

// String renders the values as space separated quoted strings.
func (p Properties) String() string {
	var b strings.Builder
	for i, v := range p.trimmed() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(quote(v))
	}
	return b.String()
}

var quoteReplacer = strings.NewReplacer("\n", `\n`, `"`, `\"`)

func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
