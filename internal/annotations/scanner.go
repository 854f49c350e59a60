//go:build cgo

package annotations

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/python"
	"golang.org/x/sync/errgroup"

	"archdsl/internal/slogutil"
)

// Scanner finds declarations and their directives in source trees.
// Scanner is safe for concurrent use; each parse uses its own parser.
type Scanner struct {
	opts   Options
	logger *slog.Logger
}

// Result is the outcome of a directory scan.
type Result struct {
	Declarations []Declaration
	// Paths lists the scanned files relative to the scan root.
	Paths []string
	// CacheKeys are the cache paths of Paths, in the same order.
	CacheKeys []string
	Files     int
	CacheHits int
}

// NewScanner creates a scanner.
func NewScanner(opts Options) *Scanner {
	logger := opts.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Scanner{opts: opts, logger: logger}
}

// IsAvailable returns whether scanning is available in this build.
func IsAvailable() bool {
	return true
}

// ScanDir scans every supported file below root and returns declarations
// ordered by path, then by position in the file.
func (s *Scanner) ScanDir(ctx context.Context, root string) ([]Declaration, error) {
	res, err := s.Scan(ctx, root)
	if err != nil {
		return nil, err
	}
	return res.Declarations, nil
}

// Scan is ScanDir with file and cache statistics.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	files, err := s.collect(root)
	if err != nil {
		return nil, err
	}

	perFile := make([][]Declaration, len(files))
	var hits atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	workers := s.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g.SetLimit(workers)

	for i, rel := range files {
		i, rel := i, rel
		g.Go(func() error {
			decls, cached, err := s.scanFile(ctx, root, rel)
			if err != nil {
				return err
			}
			if cached {
				hits.Add(1)
			}
			perFile[i] = decls
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Paths: files, Files: len(files), CacheHits: int(hits.Load())}
	res.CacheKeys = make([]string, len(files))
	for i, rel := range files {
		res.CacheKeys[i] = s.opts.cacheKey(rel)
	}
	for _, decls := range perFile {
		res.Declarations = append(res.Declarations, decls...)
	}

	s.logger.Debug("Scanned directory",
		"root", root,
		"files", res.Files,
		"cacheHits", res.CacheHits,
		"declarations", len(res.Declarations),
	)
	return res, nil
}

// collect lists scannable files below root as slash separated relative
// paths in lexical order.
func (s *Scanner) collect(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if s.opts.ignored(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		lang, ok := LanguageFromExtension(filepath.Ext(path))
		if !ok || !s.opts.wantsLanguage(lang) {
			return nil
		}
		if s.opts.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				return err
			}
			if info.Size() > s.opts.MaxFileSize {
				s.logger.Debug("Skipping oversize file", "path", rel, "size", info.Size())
				return nil
			}
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// ScanFile scans a single file. Declarations carry path as given.
func (s *Scanner) ScanFile(ctx context.Context, path string) ([]Declaration, error) {
	decls, _, err := s.scanFile(ctx, filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return nil, err
	}
	for i := range decls {
		decls[i].File = filepath.ToSlash(path)
	}
	return decls, nil
}

func (s *Scanner) scanFile(ctx context.Context, root, rel string) ([]Declaration, bool, error) {
	source, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, false, err
	}

	lang, ok := LanguageFromExtension(filepath.Ext(rel))
	if !ok {
		return nil, false, nil
	}

	hash := contentHash(s.opts.prefix(), source)
	key := s.opts.cacheKey(rel)

	if s.opts.Cache != nil {
		decls, ok, err := s.opts.Cache.Get(key, hash)
		if err != nil {
			s.logger.Warn("Cache lookup failed", "path", rel, "error", err.Error())
		} else if ok {
			return decls, true, nil
		}
	}

	decls, err := s.ScanSource(ctx, rel, source, lang)
	if err != nil {
		return nil, false, err
	}

	if s.opts.Cache != nil {
		if err := s.opts.Cache.Put(key, hash, decls); err != nil {
			s.logger.Warn("Cache store failed", "path", rel, "error", err.Error())
		}
	}
	return decls, false, nil
}

// contentHash identifies a parse result: the same bytes read with another
// directive prefix yield different declarations.
func contentHash(prefix string, source []byte) string {
	h := sha256.New()
	h.Write([]byte(prefix))
	h.Write([]byte{0})
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}

// normalizeNewlines turns CRLF and lone CR line endings into LF.
func normalizeNewlines(source []byte) []byte {
	if !bytes.ContainsRune(source, '\r') {
		return source
	}
	source = bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(source, []byte("\r"), []byte("\n"))
}

// ScanSource extracts declarations from source bytes. path names the file
// in the returned declarations and determines Python module names.
func (s *Scanner) ScanSource(ctx context.Context, path string, source []byte, lang Language) ([]Declaration, error) {
	source = normalizeNewlines(source)

	tsLang, err := getLanguage(lang)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tsLang)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	x := &extractor{source: source, file: path, lang: lang, prefix: s.opts.prefix()}
	switch lang {
	case LangGo:
		err = x.goFile(tree.RootNode())
	case LangPython:
		err = x.pythonFile(tree.RootNode())
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return x.decls, nil
}

func getLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangGo:
		return golang.GetLanguage(), nil
	case LangPython:
		return python.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}
