package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"archdsl/internal/errors"
	"archdsl/internal/slogutil"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	app := &cliApp{logger: slogutil.NewLogger(stderr, slog.LevelWarn)}
	defer app.close()

	cmd := newRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		app.logger.Error("Command execution failed",
			"error", err.Error(),
			"code", string(errors.CodeOf(err)),
		)
		for _, fix := range errors.GetSuggestedFixes(errors.CodeOf(err)) {
			if fix.Command != "" {
				fmt.Fprintf(stderr, "hint: %s: %s\n", fix.Description, fix.Command)
			} else {
				fmt.Fprintf(stderr, "hint: %s\n", fix.Description)
			}
		}
		return 1
	}
	return 0
}
