package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"archdsl/internal/annotations"
	"archdsl/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
		Run: func(cmd *cobra.Command, args []string) {
			scanning := "available"
			if !annotations.IsAvailable() {
				scanning = "unavailable (built without cgo)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
			fmt.Fprintf(cmd.OutOrStdout(), "Source scanning: %s\n", scanning)
		},
	}
}
