package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewGraphCommand creates the graph command.
func NewGraphCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <script>",
		Short: "Print a script's dependency graph",
		Long: `Evaluate a script and print the resulting dependency graph in Graphviz
DOT format, edges pointing from each label to the labels built on it.`,
		Example: `  geoscript graph constructions.gs | dot -Tsvg -o graph.svg`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, args[0])
		},
	}
}

func runGraph(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg := ConfigFromContext(cmd.Context())
	k := newKernel(cfg)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := k.Process(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	writeDOT(cmd.OutOrStdout(), k.Construction())
	return nil
}
