// Package dsl models architecture-description statements as a small closed
// tree and renders them to DSL text.
//
// Three statement kinds exist:
//
//	id = keyword "prop" "prop" { ...children... }   (Assignment wrapping an Element)
//	keyword "prop"                                  (Element)
//	source -> target "description" "tags"           (Relationship)
//
// Rendering is a pure function of the tree. Siblings are never reordered,
// children are indented by IndentSize spaces per level, and a blank line
// separates a block assignment from whatever follows it.
package dsl
