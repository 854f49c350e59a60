// Package paths locates the project root and converts between absolute and
// root-relative paths.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// DataDirName is the per-project settings and cache directory.
const DataDirName = ".archdsl"

// rootMarkers identify a project root, in order of preference.
var rootMarkers = []string{DataDirName, ".git"}

// FindRoot walks up from start to the nearest directory containing
// .archdsl or .git. Without a marker the absolute start directory is
// returned.
func FindRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for _, marker := range rootMarkers {
		for dir := abs; ; dir = filepath.Dir(dir) {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
			if filepath.Dir(dir) == dir {
				break
			}
		}
	}
	return abs, nil
}

// DataDir returns the .archdsl directory of root.
func DataDir(root string) string {
	return filepath.Join(root, DataDirName)
}

// Resolve returns p unchanged when absolute, else joined onto root.
func Resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, filepath.FromSlash(p))
}

// CanonicalizePath converts a path to a root-relative canonical path:
// symlinks are resolved and separators become forward slashes.
func CanonicalizePath(path, root string) (string, error) {
	resolved, err := evalSymlinks(path)
	if err != nil {
		return "", err
	}
	rootResolved, err := evalSymlinks(root)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// evalSymlinks resolves symlinks, keeping paths that do not exist yet.
func evalSymlinks(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return abs, nil
		}
		return "", err
	}
	return resolved, nil
}

// IsWithinRoot reports whether path lies inside root.
func IsWithinRoot(path, root string) bool {
	canonical, err := CanonicalizePath(path, root)
	if err != nil {
		return false
	}
	return canonical != ".." && !strings.HasPrefix(canonical, "../")
}
