package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"archdsl/internal/config"
	"archdsl/internal/errors"
)

func newConfigCmd(app *cliApp) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage archdsl configuration",
		Long:  "View and create the configuration stored in .archdsl/config.toml",
	}
	configCmd.AddCommand(newConfigInitCmd(app), newConfigShowCmd(app))
	return configCmd
}

func newConfigInitCmd(app *cliApp) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path(app.root)
			if _, err := os.Stat(path); err == nil && !force {
				// Already initialized is success.
				fmt.Fprintf(cmd.OutOrStdout(), "Configuration already exists at %s\n", path)
				fmt.Fprintln(cmd.OutOrStdout(), "Run 'archdsl config init --force' to overwrite it.")
				return nil
			}

			if err := config.DefaultConfig().Save(app.root); err != nil {
				return errors.New(errors.InternalError, "Failed to write configuration", err)
			}
			app.logger.Info("Initialized configuration", "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration")
	return cmd
}

func newConfigShowCmd(app *cliApp) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Display the configuration after defaults and ARCHDSL_* environment
overrides are applied.

Examples:
  archdsl config show                # TOML
  archdsl config show --format json  # JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "toml":
				return toml.NewEncoder(cmd.OutOrStdout()).Encode(app.cfg)
			case "json":
				out, err := formatJSON(app.cfg)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "Output format (toml, json)")
	return cmd
}
