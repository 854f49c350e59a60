// Package version reports the archdsl build.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Overridden at build time:
//
//	go build -ldflags "-X archdsl/internal/version.Version=1.0.0 -X archdsl/internal/version.Commit=abc123"
var (
	Version   = "0.4.0"
	Commit    = ""
	BuildDate = ""
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// revision returns the commit and build time, falling back to the VCS
// stamp the go command embeds when ldflags did not set them.
func revision() (commit, date string) {
	commit, date = Commit, BuildDate
	if commit != "" && date != "" {
		return commit, date
	}
	info, ok := readBuildInfo()
	if !ok {
		return commit, date
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "" {
				commit = s.Value
			}
		case "vcs.time":
			if date == "" {
				date = s.Value
			}
		}
	}
	return commit, date
}

// Info returns the version with an abbreviated commit when one is known.
func Info() string {
	commit, _ := revision()
	if len(commit) > 7 {
		return fmt.Sprintf("%s (%s)", Version, commit[:7])
	}
	return Version
}

// Full returns the multi-line report printed by `archdsl version`.
func Full() string {
	commit, date := revision()
	if commit == "" {
		commit = "unknown"
	}
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("archdsl version %s\nCommit: %s\nBuilt: %s\nGo: %s",
		Version, commit, date, runtime.Version())
}
