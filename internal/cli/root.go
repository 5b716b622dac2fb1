// Package cli provides the command-line interface for geoscript.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/geoscript-lang/geoscript/internal/cli/commands"
	"github.com/geoscript-lang/geoscript/internal/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "geoscript",
		Short: "geoscript - construction command kernel",
		Long: `geoscript evaluates construction commands like "A = Point(1,2)" and
"Line(A,B)", keeping every labeled result in a dependency graph that stays
acyclic and consistent when labels are redefined.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default geoscript.yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.String("mode", "", "policy mode (normal, exam)")

	rootCmd.AddCommand(
		commands.NewReplCommand(),
		commands.NewRunCommand(),
		commands.NewCommandsCommand(),
		commands.NewGraphCommand(),
		commands.NewVersionCommand(Version, GitCommit),
	)

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	return 0
}
