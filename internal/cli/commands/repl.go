package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/geoscript-lang/geoscript/internal/kernel"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive construction shell",
		Long: `Start an interactive shell that evaluates one construction command per
line and keeps the results in a dependency graph for the session.`,
		Example: `  geoscript repl

  geoscript> A = Point(1,2)
  geoscript> B = Point(5,6)
  geoscript> m = Midpoint(A,B)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd)
		},
	}
}

func runRepl(cmd *cobra.Command) error {
	cfg := ConfigFromContext(cmd.Context())
	k := newKernel(cfg)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.REPL.Prompt,
		HistoryFile:     cfg.REPL.HistoryFile,
		AutoComplete:    newReplCompleter(k),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "geoscript %s (session %s)\n", cmd.Root().Version, k.Session())
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cmd, k, line); quit {
				break
			}
			continue
		}

		result, err := k.Process(line)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		_, _ = fmt.Fprintln(out, result)
	}

	return nil
}

// handleDotCommand runs a REPL meta command and reports whether to quit.
func handleDotCommand(cmd *cobra.Command, k *kernel.Kernel, line string) bool {
	parts := strings.Fields(line)
	out := cmd.OutOrStdout()

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printReplHelp(out)

	case ".list":
		renderConstruction(out, k.Construction())

	case ".graph":
		writeDOT(out, k.Construction())

	case ".clear":
		k.Reset()
		_, _ = fmt.Fprintln(out, "Construction cleared")

	case ".save":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .save <file>")
			return false
		}
		if err := saveSession(parts[1], k.Construction()); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintf(out, "Saved %d elements to %s\n", k.Construction().Len(), parts[1])

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", parts[0])
	}
	return false
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .list           List all bound labels and their values
  .graph          Print the dependency graph in DOT format
  .clear          Discard all bindings and start over
  .save <file>    Save the session as YAML
  .quit / .exit   Exit the REPL

Tips:
  - "A = Point(1,2)" binds a label, "Point(1,2)" just evaluates
  - Redefining a label recomputes everything that depends on it
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newReplCompleter creates a readline completer over command names, bound
// labels, and dot-commands. Labels are listed dynamically so completion
// tracks the session as it grows.
func newReplCompleter(k *kernel.Kernel) *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, name := range k.Table().Names() {
		items = append(items, readline.PcItem(name))
	}
	items = append(items, readline.PcItemDynamic(func(string) []string {
		return k.Construction().Labels()
	}))
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".list"),
		readline.PcItem(".graph"),
		readline.PcItem(".clear"),
		readline.PcItem(".save"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}
