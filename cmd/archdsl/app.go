package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"archdsl/internal/config"
	"archdsl/internal/errors"
	"archdsl/internal/paths"
	"archdsl/internal/slogutil"
)

// skipConfigAnnotation marks commands that must run with default settings
// even when the configuration file is broken.
const skipConfigAnnotation = "archdsl/skip-config"

// cliApp carries the state shared by every command of one invocation.
type cliApp struct {
	root   string
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer

	// persistent flags
	rootFlag  string
	verbosity int
	quiet     bool
	logFormat string
}

// setup resolves the project root, loads the configuration and builds the
// logger.
func (a *cliApp) setup(cmd *cobra.Command) error {
	start := a.rootFlag
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return errors.New(errors.InternalError, "Failed to get current directory", err)
		}
		start = cwd
	}
	root, err := paths.FindRoot(start)
	if err != nil {
		return errors.New(errors.InternalError, "Failed to resolve project root", err)
	}
	a.root = root

	if cmd.Annotations[skipConfigAnnotation] == "true" {
		a.cfg = config.DefaultConfig()
	} else {
		cfg, err := config.LoadConfig(root)
		if err != nil {
			return errors.New(errors.ConfigInvalid, "Failed to load configuration", err).
				WithDetails(map[string]string{"path": config.Path(root)})
		}
		a.cfg = cfg
	}

	opts := slogutil.Options{
		Format: a.cfg.Logging.Format,
		Level:  a.cfg.Logging.Level,
	}
	if a.logFormat != "" {
		opts.Format = a.logFormat
	}
	if a.cfg.Logging.File != "" {
		opts.File = paths.Resolve(root, a.cfg.Logging.File)
	}
	if a.verbosity > 0 || a.quiet {
		level := slogutil.LevelFromVerbosity(a.verbosity, a.quiet)
		opts.Override = &level
	}

	logger, closer, err := slogutil.Setup(cmd.ErrOrStderr(), opts)
	if err != nil {
		return errors.New(errors.ConfigInvalid, "Failed to set up logging", err)
	}
	a.logger = logger
	a.closer = closer

	a.logger.Debug("Resolved project", "root", root)
	return nil
}

func (a *cliApp) close() {
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
}
