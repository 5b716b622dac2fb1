package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/geoscript-lang/geoscript/pkg/command"
)

// NewCommandsCommand creates the commands command.
func NewCommandsCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List available construction commands",
		Long: `List every command in the table with its category and argument bounds.
Commands are looked up by the display name shown here, case-sensitively.`,
		Example: `  # List all commands
  geoscript commands

  # List only Geometry commands
  geoscript commands --category Geometry`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommands(cmd, category)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only show commands of this category")

	return cmd
}

func runCommands(cmd *cobra.Command, category string) error {
	cfg := ConfigFromContext(cmd.Context())
	k := newKernel(cfg)

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Command", "Category", "Args"})
	for _, def := range k.Table().Definitions() {
		if category != "" && def.Category != command.Category(category) {
			continue
		}
		t.AppendRow(table.Row{def.Name, string(def.Category), def.Arity()})
	}
	t.Render()
	return nil
}
