package annotations

import (
	"errors"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
)

// ErrNoCGO is returned when scanning is unavailable because the binary was
// built without cgo (tree-sitter).
var ErrNoCGO = errors.New("annotation scanning requires CGO (tree-sitter)")

// Cache stores the declarations of a file keyed by its content hash.
type Cache interface {
	Get(path, hash string) ([]Declaration, bool, error)
	Put(path, hash string, decls []Declaration) error
}

// Options configures a Scanner.
type Options struct {
	// Prefix starts directive lines. Empty means DefaultPrefix.
	Prefix string
	// Ignore holds glob patterns matched against base names and
	// root-relative paths.
	Ignore []string
	// Languages restricts scanning; empty means every supported language.
	Languages []Language
	// MaxFileSize skips larger files when positive.
	MaxFileSize int64
	// Workers bounds parallel parsing; zero means one per CPU.
	Workers int
	// Cache is consulted before parsing when set.
	Cache Cache
	// CacheScope namespaces cache keys, normally the scan root relative to
	// the project root, so files of different roots never share an entry.
	CacheScope string
	Logger     *slog.Logger
}

// cacheKey returns the cache path of a root-relative file.
func (o Options) cacheKey(rel string) string {
	if o.CacheScope == "" || o.CacheScope == "." {
		return rel
	}
	return path.Join(o.CacheScope, rel)
}

func (o Options) prefix() string {
	if o.Prefix == "" {
		return DefaultPrefix
	}
	return o.Prefix
}

func (o Options) wantsLanguage(lang Language) bool {
	if len(o.Languages) == 0 {
		return true
	}
	for _, l := range o.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// ignored reports whether rel (slash separated, root-relative) matches an
// ignore pattern. Hidden entries and dependency directories are always
// skipped.
func (o Options) ignored(rel string, dir bool) bool {
	name := filepath.Base(rel)
	if rel != "." && strings.HasPrefix(name, ".") {
		return true
	}
	if dir && (name == "vendor" || name == "node_modules" || name == "__pycache__") {
		return true
	}
	for _, pattern := range o.Ignore {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
