package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	var (
		keepGoing bool
		savePath  string
	)

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Evaluate a construction script",
		Long: `Evaluate a script file with one construction command per line. Blank
lines and lines starting with # are skipped. Evaluation stops at the first
error unless --keep-going is set; a failed line never changes the graph.`,
		Example: `  # Run a script and print each result
  geoscript run constructions.gs

  # Keep evaluating past errors
  geoscript run constructions.gs --keep-going

  # Save the resulting session as YAML
  geoscript run constructions.gs --save session.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, args[0], keepGoing, savePath)
		},
	}

	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "continue past failing lines")
	cmd.Flags().StringVar(&savePath, "save", "", "write the final session to a YAML file")

	return cmd
}

func runScript(cmd *cobra.Command, path string, keepGoing bool, savePath string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg := ConfigFromContext(cmd.Context())
	k := newKernel(cfg)
	out := cmd.OutOrStdout()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	failed := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		result, err := k.Process(line)
		if err != nil {
			if !keepGoing {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			failed++
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %v\n", lineNo, err)
			continue
		}
		_, _ = fmt.Fprintln(out, result)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	if savePath != "" {
		if err := saveSession(savePath, k.Construction()); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d lines failed", failed, lineNo)
	}
	return nil
}
