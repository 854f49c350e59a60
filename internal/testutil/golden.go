package testutil

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

var (
	// go test ./... -run TestGolden -update
	update = flag.Bool("update", false, "rewrite golden files with the current output")

	// go test ./... -run TestGolden -goldenLang=py
	goldenLang = flag.String("goldenLang", "", "comma-separated fixture languages to run (go, python or py)")
)

var langAliases = map[string]string{"py": "python"}

// ShouldUpdate reports whether -update was given.
func ShouldUpdate() bool {
	return *update
}

// ShouldTestLang reports whether lang passes the -goldenLang filter.
func ShouldTestLang(lang string) bool {
	if *goldenLang == "" {
		return true
	}
	for _, want := range strings.Split(*goldenLang, ",") {
		want = strings.TrimSpace(want)
		if want == lang || langAliases[want] == lang {
			return true
		}
	}
	return false
}

// Golden compares got with the file at path after normalizing both. With
// -update the file is rewritten instead.
func Golden(t *testing.T, path, got string) {
	t.Helper()

	actual := NormalizeText(got)
	if *update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(actual), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		t.Logf("updated %s", path)
		return
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		t.Fatalf("golden file %s missing; got:\n%s\nrerun with -update to create it", path, actual)
	}
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}

	if expected := NormalizeText(string(data)); expected != actual {
		t.Fatalf("%s mismatch:\n%s\nrerun with -update to accept", path, diff(expected, actual, path))
	}
}

// CompareGolden compares got with the named file in the fixture's
// expected/ directory.
func CompareGolden(t *testing.T, fixture *FixtureContext, name, got string) {
	t.Helper()
	Golden(t, fixture.ExpectedPath(name), got)
}

func diff(expected, actual, path string) string {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: path + " (expected)",
		ToFile:   path + " (got)",
		Context:  3,
	})
	if err != nil {
		return err.Error()
	}
	return text
}

// ForEachLanguage runs fn as a subtest for every fixture language that
// passes the -goldenLang filter. -short keeps only the first.
func ForEachLanguage(t *testing.T, fn func(t *testing.T, fixture *FixtureContext)) {
	t.Helper()

	langs := AvailableLanguages(t)
	if len(langs) == 0 {
		t.Skip("no fixtures")
	}
	if testing.Short() {
		langs = langs[:1]
	}

	for _, lang := range langs {
		if !ShouldTestLang(lang) {
			continue
		}
		t.Run(lang, func(t *testing.T) {
			fn(t, LoadFixture(t, lang))
		})
	}
}
