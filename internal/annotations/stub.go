//go:build !cgo

package annotations

import (
	"context"
)

// Scanner finds declarations and their directives in source trees.
// This is a stub implementation for non-CGO builds.
type Scanner struct{}

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

// NewScanner creates a scanner. Every scan fails with ErrNoCGO.
func NewScanner(opts Options) *Scanner {
	return &Scanner{}
}

// IsAvailable returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}

// ScanDir returns ErrNoCGO.
func (s *Scanner) ScanDir(ctx context.Context, root string) ([]Declaration, error) {
	return nil, ErrNoCGO
}

// Scan returns ErrNoCGO.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	return nil, ErrNoCGO
}

// ScanFile returns ErrNoCGO.
func (s *Scanner) ScanFile(ctx context.Context, path string) ([]Declaration, error) {
	return nil, ErrNoCGO
}

// ScanSource returns ErrNoCGO.
func (s *Scanner) ScanSource(ctx context.Context, path string, source []byte, lang Language) ([]Declaration, error) {
	return nil, ErrNoCGO
}
