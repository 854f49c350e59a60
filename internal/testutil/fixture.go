// Package testutil loads source fixtures and compares rendered DSL against
// golden files.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
)

// FixtureContext is one language directory under testdata/fixtures.
type FixtureContext struct {
	Language    string
	Root        string // absolute fixture directory, scanned as a source root
	ExpectedDir string // golden files, skipped by the scanner's language filter
}

// LoadFixture returns the fixture for lang, failing the test if it does
// not exist.
func LoadFixture(t *testing.T, lang string) *FixtureContext {
	t.Helper()

	dir := filepath.Join(fixturesRoot(t), lang)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("no fixture for %q at %s", lang, dir)
	}
	return &FixtureContext{
		Language:    lang,
		Root:        dir,
		ExpectedDir: filepath.Join(dir, "expected"),
	}
}

// ExpectedPath returns the golden file name, e.g. "model.dsl", inside
// the fixture's expected/ directory.
func (f *FixtureContext) ExpectedPath(name string) string {
	return filepath.Join(f.ExpectedDir, name)
}

// AvailableLanguages lists fixture directories that carry golden files,
// sorted by name.
func AvailableLanguages(t *testing.T) []string {
	t.Helper()

	root := fixturesRoot(t)
	matches, err := filepath.Glob(filepath.Join(root, "*", "expected"))
	if err != nil {
		t.Fatalf("list fixtures: %v", err)
	}

	langs := make([]string, 0, len(matches))
	for _, m := range matches {
		lang := filepath.Base(filepath.Dir(m))
		if lang[0] == '.' {
			continue
		}
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// fixturesRoot resolves testdata/fixtures relative to this source file so
// tests in any package find it.
func fixturesRoot(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	root := filepath.Join(filepath.Dir(file), "..", "..", "testdata", "fixtures")
	if _, err := os.Stat(root); err != nil {
		t.Fatalf("fixtures root: %v", err)
	}
	return root
}
