package slogutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options selects where and how the CLI logs.
type Options struct {
	// Format is "human" or "json".
	Format string
	// Level is the configured level name; ignored when Override is set.
	Level string
	// Override, when non-nil, replaces Level (set from -v / -q flags).
	Override *slog.Level
	// File, when set, receives a copy of every record in human format.
	File string
}

// Setup builds the process logger writing to w, plus an optional log file.
// The returned closer releases the file and is never nil.
func Setup(w io.Writer, opts Options) (*slog.Logger, io.Closer, error) {
	level := LevelFromString(opts.Level)
	if opts.Override != nil {
		level = *opts.Override
	}

	var primary slog.Handler
	if opts.Format == "json" {
		primary = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		primary = NewHandler(w, &slog.HandlerOptions{Level: level})
	}

	if opts.File == "" {
		return slog.New(primary), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	// The file always records at least info so runs can be audited.
	fileLevel := level
	if fileLevel > slog.LevelInfo {
		fileLevel = slog.LevelInfo
	}
	file := NewHandler(f, &slog.HandlerOptions{Level: fileLevel})
	return slog.New(NewTeeHandler(primary, file)), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
