package annotations

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DefaultPrefix starts every directive comment line.
const DefaultPrefix = "arch:"

// Directive kinds.
const (
	KindGroup       = "group"
	KindUses        = "uses"
	KindTechnology  = "technology"
	KindURL         = "url"
	KindTags        = "tags"
	KindProperty    = "property"
	KindPerspective = "perspective"
	KindName        = "name"
)

// ErrInvalidDirective is returned for malformed or unknown directives.
var ErrInvalidDirective = errors.New("invalid directive")

// Directive is one parsed directive line. Args depend on Kind:
//
//	group        [path]
//	uses         [target, description, tags]
//	property     [key, value]
//	perspective  [key, value]
//	others       [value]
type Directive struct {
	Kind string   `json:"kind"`
	Args []string `json:"args"`
	Line int      `json:"line"`
}

// Arg returns the i-th argument or "".
func (d Directive) Arg(i int) string {
	if i < len(d.Args) {
		return d.Args[i]
	}
	return ""
}

// SplitTags splits a comma separated tag list, dropping blanks.
func SplitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ParseDirective parses text (a comment line with its markers removed).
// ok is false when the line does not start with prefix.
func ParseDirective(text, prefix string) (d Directive, ok bool, err error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, prefix) {
		return Directive{}, false, nil
	}
	rest := strings.TrimPrefix(text, prefix)

	kind, rest, _ := strings.Cut(rest, " ")
	rest = strings.TrimSpace(rest)
	d = Directive{Kind: kind}

	switch kind {
	case KindGroup:
		path := strings.Trim(rest, "/ ")
		if path == "" {
			return d, true, fmt.Errorf("%w: %s needs a path", ErrInvalidDirective, kind)
		}
		d.Args = []string{path}

	case KindUses:
		tokens, err := tokenize(rest)
		if err != nil {
			return d, true, err
		}
		if len(tokens) == 0 || len(tokens) > 3 {
			return d, true, fmt.Errorf("%w: %s takes a target, an optional description and optional tags", ErrInvalidDirective, kind)
		}
		d.Args = make([]string, 3)
		copy(d.Args, tokens)

	case KindProperty, KindPerspective:
		key, value, found := strings.Cut(rest, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return d, true, fmt.Errorf("%w: %s needs key=value", ErrInvalidDirective, kind)
		}
		value, err = unquote(strings.TrimSpace(value))
		if err != nil {
			return d, true, err
		}
		d.Args = []string{key, value}

	case KindTechnology, KindURL, KindTags, KindName:
		value, err := unquote(rest)
		if err != nil {
			return d, true, err
		}
		if value == "" {
			return d, true, fmt.Errorf("%w: %s needs a value", ErrInvalidDirective, kind)
		}
		d.Args = []string{value}

	default:
		return d, true, fmt.Errorf("%w: unknown kind %q", ErrInvalidDirective, kind)
	}

	return d, true, nil
}

// tokenize splits s on whitespace; double-quoted tokens may contain spaces
// and Go escapes.
func tokenize(s string) ([]string, error) {
	var tokens []string
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" {
			return tokens, nil
		}

		if s[0] == '"' {
			quoted, err := strconv.QuotedPrefix(s)
			if err != nil {
				return nil, fmt.Errorf("%w: unterminated string in %q", ErrInvalidDirective, s)
			}
			value, _ := strconv.Unquote(quoted)
			tokens = append(tokens, value)
			s = s[len(quoted):]
			continue
		}

		end := strings.IndexFunc(s, unicode.IsSpace)
		if end < 0 {
			end = len(s)
		}
		tokens = append(tokens, s[:end])
		s = s[end:]
	}
}

func unquote(s string) (string, error) {
	if !strings.HasPrefix(s, `"`) {
		return s, nil
	}
	value, err := strconv.Unquote(s)
	if err != nil {
		return "", fmt.Errorf("%w: bad string %s", ErrInvalidDirective, s)
	}
	return value, nil
}

// splitDoc separates directive lines from documentation lines. lines hold
// comment text without markers; firstLine is the source line of lines[0].
func splitDoc(lines []string, firstLine int, prefix string) (string, []Directive, error) {
	var (
		doc        []string
		directives []Directive
	)
	for i, line := range lines {
		d, ok, err := ParseDirective(line, prefix)
		if err != nil {
			return "", nil, fmt.Errorf("line %d: %w", firstLine+i, err)
		}
		if ok {
			d.Line = firstLine + i
			directives = append(directives, d)
			continue
		}
		doc = append(doc, line)
	}
	return strings.Join(doc, "\n"), directives, nil
}
