package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"archdsl/internal/architecture"
)

const exampleDoc = `
    first line
    second line

    further details are not part of the description
    `

func newExampleCmd(app *cliApp) *cobra.Command {
	var workspace bool

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print a small built-in model",
		Long: `Build a two-function model with the builder API and print it: foo uses a
standalone tasks_abc component, abc uses foo, and both belong to the group
"test".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := buildExample(architecture.NewBuilder(app.logger))
			if err != nil {
				return err
			}

			out := architecture.Render(group)
			if workspace {
				out = architecture.Workspace{
					Name:      app.cfg.Render.WorkspaceName,
					System:    app.cfg.Render.System,
					Container: app.cfg.Render.Container,
					Elements:  []architecture.Element{group},
				}.DSL().String()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&workspace, "workspace", false, "Wrap the output in workspace blocks")
	return cmd
}

// buildExample declares foo and abc the way annotated code would.
func buildExample(b *architecture.Builder) (*architecture.ComponentsGroup, error) {
	group := architecture.NewGroup[*architecture.Component]("test")

	foo := architecture.Entity{Ref: architecture.EntityRef{Package: "example", Name: "foo"}, Doc: exampleDoc}
	abc := architecture.Entity{Ref: architecture.EntityRef{Package: "example", Name: "abc"}, Doc: exampleDoc}

	if _, err := b.RelatesTo(foo, architecture.ByName("tasks_abc"), "uses"); err != nil {
		return nil, err
	}
	if _, err := b.IncludedIn(foo, group); err != nil {
		return nil, err
	}
	if _, err := b.RelatesTo(abc, architecture.ByEntity(foo), "uses"); err != nil {
		return nil, err
	}
	if _, err := b.IncludedIn(abc, group); err != nil {
		return nil, err
	}
	return group, nil
}
