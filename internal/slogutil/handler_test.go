package slogutil

import (
	"bytes"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"testing"
	"time"
)

var lineRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z \[(debug|info|warn|error)\] `)

func TestHandler_Line(t *testing.T) {
	tests := []struct {
		name string
		log  func(*slog.Logger)
		want string
	}{
		{"no attrs", func(l *slog.Logger) { l.Info("Rendered") }, "[info] Rendered\n"},
		{"plain attrs", func(l *slog.Logger) { l.Info("Scanned sources", "files", 3, "root", "svc") }, "[info] Scanned sources | files=3 root=svc\n"},
		{"quoted string", func(l *slog.Logger) { l.Warn("Skipped", "reason", "too large") }, `[warn] Skipped | reason="too large"` + "\n"},
		{"empty string", func(l *slog.Logger) { l.Info("Loaded", "file", "") }, `[info] Loaded | file=""` + "\n"},
		{"error value", func(l *slog.Logger) { l.Error("Failed", "error", errors.New("boom")) }, "[error] Failed | error=boom\n"},
		{"duration", func(l *slog.Logger) { l.Debug("Done", "took", 1500*time.Millisecond) }, "[debug] Done | took=1.5s\n"},
		{"group", func(l *slog.Logger) { l.WithGroup("scan").With("root", "src").Info("Walk", "files", 2) }, "[info] Walk | scan.root=src scan.files=2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewLogger(&buf, slog.LevelDebug))

			out := buf.String()
			if !lineRE.MatchString(out) {
				t.Fatalf("line %q does not start with a timestamp and level", out)
			}
			if got := out[strings.Index(out, " ")+1:]; got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")

	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("expected 2 lines at warn, got %d:\n%s", got, buf.String())
	}
}

func TestLevelFromString(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for in, want := range tests {
		if got := LevelFromString(in); got != want {
			t.Errorf("LevelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		quiet     bool
		want      slog.Level
	}{
		{0, false, slog.LevelWarn},
		{1, false, slog.LevelInfo},
		{2, false, slog.LevelDebug},
		{4, false, slog.LevelDebug},
		{2, true, LevelSilent},
	}

	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity, tt.quiet); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d, %v) = %v, want %v", tt.verbosity, tt.quiet, got, tt.want)
		}
	}
}

func TestSilentLevel(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, LevelSilent).Error("suppressed")
	NewDiscardLogger().Error("discarded")

	if buf.Len() != 0 {
		t.Errorf("silent logger wrote %q", buf.String())
	}
}

func TestTeeHandler(t *testing.T) {
	var all, warnings bytes.Buffer
	logger := slog.New(NewTeeHandler(
		NewHandler(&all, &slog.HandlerOptions{Level: slog.LevelInfo}),
		NewHandler(&warnings, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)).With("run", "r1")

	logger.Info("scanning")
	logger.Warn("cache unavailable")

	if strings.Count(all.String(), "run=r1") != 2 {
		t.Errorf("info handler should see both records with attrs:\n%s", all.String())
	}
	if strings.Contains(warnings.String(), "scanning") || !strings.Contains(warnings.String(), "cache unavailable") {
		t.Errorf("warn handler got:\n%s", warnings.String())
	}
}
