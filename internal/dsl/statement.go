package dsl

// IndentSize is the number of spaces per nesting level.
const IndentSize = 2

// Statement is one line-level construct of the DSL.
// The set of implementations is closed: Element, Assignment and Relationship.
type Statement interface {
	statement()
	String() string
}

// Element is a keyword with properties and an optional child block.
//
// A nil Children means the element is a leaf and renders without braces.
// A non-nil but empty Children renders as "{}".
type Element struct {
	Keyword    string
	Properties Properties
	Children   *StatementsList
}

// Assignment binds an identifier to an element: "id = element".
type Assignment struct {
	Identifier string
	Element    Element
}

// Relationship is an edge between two identifiers: "a -> b".
type Relationship struct {
	Source     string
	Target     string
	Properties Properties
}

func (Element) statement()      {}
func (Assignment) statement()   {}
func (Relationship) statement() {}

func (e Element) String() string      { return Render(e) }
func (a Assignment) String() string   { return Render(a) }
func (r Relationship) String() string { return Render(r) }

// NewElement creates a leaf element.
func NewElement(keyword string, props ...string) Element {
	return Element{Keyword: keyword, Properties: Props(props...)}
}

// NewBlock creates an element with a child block. The block is non-nil even
// when no children are given.
func NewBlock(keyword string, props Properties, children ...Statement) Element {
	list := StatementsList(children)
	if list == nil {
		list = StatementsList{}
	}
	return Element{Keyword: keyword, Properties: props, Children: &list}
}

// HasBlock reports whether the element renders a brace block.
func (e Element) HasBlock() bool {
	return e.Children != nil
}

// IsEmpty reports whether the element carries neither property values nor
// children.
func (e Element) IsEmpty() bool {
	return e.Properties.Empty() && (e.Children == nil || len(*e.Children) == 0)
}

// Assign wraps an element in an assignment.
func Assign(identifier string, element Element) Assignment {
	return Assignment{Identifier: identifier, Element: element}
}

// Relate creates a relationship statement.
func Relate(source, target string, props ...string) Relationship {
	return Relationship{Source: source, Target: target, Properties: Props(props...)}
}

// StatementsList is an ordered list of sibling statements.
type StatementsList []Statement

// Statements builds a list from the given statements.
func Statements(stmts ...Statement) StatementsList {
	return StatementsList(stmts)
}

// Append returns a new list with stmts added after the receiver's statements.
// The receiver is not modified.
func (l StatementsList) Append(stmts ...Statement) StatementsList {
	out := make(StatementsList, 0, len(l)+len(stmts))
	out = append(out, l...)
	return append(out, stmts...)
}

// Concat returns a new list holding the statements of every list in order.
func Concat(lists ...StatementsList) StatementsList {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make(StatementsList, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Partition splits the list into relationships and everything else,
// keeping relative order within each half.
func (l StatementsList) Partition() (structural, relations StatementsList) {
	structural = StatementsList{}
	relations = StatementsList{}
	for _, s := range l {
		if _, ok := s.(Relationship); ok {
			relations = append(relations, s)
			continue
		}
		structural = append(structural, s)
	}
	return structural, relations
}

// String renders the list.
func (l StatementsList) String() string {
	return renderList(l)
}
