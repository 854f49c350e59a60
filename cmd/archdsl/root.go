package main

import (
	"github.com/spf13/cobra"

	"archdsl/internal/version"
)

func newRootCmd(app *cliApp) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "archdsl",
		Short: "archdsl - architecture as code, rendered to DSL",
		Long: `archdsl reads architecture annotations from Go and Python sources, and
optional YAML, TOML or HCL manifests, and renders the resulting component
graph as architecture DSL text for a diagramming tool.`,
		Version:       version.Info(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
	}
	rootCmd.SetVersionTemplate("archdsl version {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.rootFlag, "root", "", "Project root (default: nearest directory with .archdsl or .git)")
	flags.CountVarP(&app.verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	flags.BoolVarP(&app.quiet, "quiet", "q", false, "Suppress all logs")
	flags.StringVar(&app.logFormat, "log-format", "", "Log format: human or json (default from config)")

	rootCmd.AddCommand(
		newRenderCmd(app),
		newExampleCmd(app),
		newConfigCmd(app),
		newVersionCmd(),
	)
	return rootCmd
}
