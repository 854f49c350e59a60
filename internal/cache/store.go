// Package cache persists scanned declarations between runs so unchanged
// files are not parsed again.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"archdsl/internal/annotations"
	"archdsl/internal/slogutil"
)

// Store is a SQLite backed declaration cache keyed by file path and
// content hash.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
	dbPath string

	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Run summarizes one scan.
type Run struct {
	ID           string
	Root         string
	Files        int
	CacheHits    int
	Declarations int
	StartedAt    time.Time
	Duration     time.Duration
}

// Open opens or creates the cache database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	// Scanner workers write concurrently; a single connection serializes them.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	s := &Store{
		conn:    conn,
		logger:  logger,
		dbPath:  path,
		encoder: encoder,
		decoder: decoder,
	}
	if err := s.initializeSchema(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	logger.Debug("Opened cache", "path", path)
	return s, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS files (
			path TEXT PRIMARY KEY,
			hash TEXT NOT NULL,
			payload BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			root TEXT NOT NULL,
			files INTEGER NOT NULL,
			cache_hits INTEGER NOT NULL,
			declarations INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.decoder != nil {
		s.decoder.Close()
	}
	if s.encoder != nil {
		_ = s.encoder.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Get returns the cached declarations of path when its content hash still
// matches.
func (s *Store) Get(path, hash string) ([]annotations.Declaration, bool, error) {
	var payload []byte
	err := s.conn.QueryRow(`SELECT payload FROM files WHERE path = ? AND hash = ?`, path, hash).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	raw, err := s.decoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decompress cache entry: %w", err)
	}

	var decls []annotations.Declaration
	if err := json.Unmarshal(raw, &decls); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return decls, true, nil
}

// Put stores the declarations of path, replacing any older entry.
func (s *Store) Put(path, hash string, decls []annotations.Declaration) error {
	raw, err := json.Marshal(decls)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	payload := s.encoder.EncodeAll(raw, nil)

	_, err = s.conn.Exec(`
		INSERT OR REPLACE INTO files (path, hash, payload, updated_at)
		VALUES (?, ?, ?, ?)
	`, path, hash, payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Prune deletes entries below scope whose path is not in keep and returns
// how many were removed. An empty or "." scope covers every entry.
func (s *Store) Prune(scope string, keep []string) (int, error) {
	wanted := make(map[string]bool, len(keep))
	for _, p := range keep {
		wanted[p] = true
	}

	rows, err := s.conn.Query(`SELECT path FROM files`)
	if err != nil {
		return 0, fmt.Errorf("failed to list cache entries: %w", err)
	}
	var stale []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			_ = rows.Close()
			return 0, err
		}
		if !wanted[p] && inScope(scope, p) {
			stale = append(stale, p)
		}
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range stale {
		if _, err := tx.Exec(`DELETE FROM files WHERE path = ?`, p); err != nil {
			return 0, fmt.Errorf("failed to delete cache entry: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.logger.Debug("Pruned cache", "removed", len(stale))
	return len(stale), nil
}

func inScope(scope, p string) bool {
	if scope == "" || scope == "." {
		return true
	}
	return strings.HasPrefix(p, strings.TrimSuffix(scope, "/")+"/")
}

// RecordRun stores a scan summary and returns its id. An empty ID is
// replaced by a new random one.
func (s *Store) RecordRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	_, err := s.conn.Exec(`
		INSERT INTO runs (id, root, files, cache_hits, declarations, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Root,
		run.Files,
		run.CacheHits,
		run.Declarations,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return run.ID, nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	rows, err := s.conn.Query(`
		SELECT id, root, files, cache_hits, declarations, started_at, duration_ms
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&run.ID, &run.Root, &run.Files, &run.CacheHits, &run.Declarations, &startedAt, &durationMS); err != nil {
			return nil, err
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
