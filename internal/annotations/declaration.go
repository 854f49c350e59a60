// Package annotations extracts architecture directives from source
// comments and applies them to an architecture.Builder.
//
// A directive is a comment line starting with a configurable prefix
// (default "arch:") placed in the documentation of a function, method,
// type or class:
//
//	// Fetch loads an order from storage.
//	//
//	// arch:group orders/api
//	// arch:uses store.Get "reads from" db,sql
//	func Fetch(id string) (*Order, error)
//
// Declarations are parsed with tree-sitter, so scanning needs a cgo build.
package annotations

import (
	"path/filepath"
	"strings"

	"archdsl/internal/architecture"
)

// Language identifies a supported source language.
type Language string

const (
	LangGo     Language = "go"
	LangPython Language = "python"
)

// LanguageFromExtension maps a file extension (with dot) to a language.
func LanguageFromExtension(ext string) (Language, bool) {
	switch strings.ToLower(ext) {
	case ".go":
		return LangGo, true
	case ".py":
		return LangPython, true
	default:
		return "", false
	}
}

// Declaration is a program entity found while scanning, together with its
// documentation and directives.
type Declaration struct {
	File       string      `json:"file"`
	Line       int         `json:"line"`
	Language   Language    `json:"language"`
	Package    string      `json:"package"`
	Name       string      `json:"name"`
	Kind       string      `json:"kind"` // "function", "method", "type", "class"
	Doc        string      `json:"doc,omitempty"`
	Directives []Directive `json:"directives,omitempty"`
}

// Ref returns the registry key of the declaration.
func (d Declaration) Ref() architecture.EntityRef {
	return architecture.EntityRef{Package: d.Package, Name: d.Name}
}

// Entity returns the declaration as a builder entity.
func (d Declaration) Entity() architecture.Entity {
	return architecture.Entity{Ref: d.Ref(), Doc: d.Doc}
}

// Annotated reports whether the declaration carries any directive.
func (d Declaration) Annotated() bool {
	return len(d.Directives) > 0
}

// pythonModule returns the module name of a Python file: its stem, or the
// directory name for package __init__ files.
func pythonModule(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "__init__" {
		return filepath.Base(filepath.Dir(path))
	}
	return stem
}
