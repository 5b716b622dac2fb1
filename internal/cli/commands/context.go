package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/geoscript-lang/geoscript/internal/config"
	"github.com/geoscript-lang/geoscript/internal/kernel"
	"github.com/geoscript-lang/geoscript/pkg/command"
	"github.com/geoscript-lang/geoscript/pkg/filter"
)

// configKey is used to store config in context.
type configKey struct{}

// WithConfig stores the loaded config in the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext retrieves the loaded config, falling back to defaults
// when the command runs outside the root command's setup (tests).
func ConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{
		Mode: config.DefaultMode,
		REPL: config.REPLConfig{
			Prompt:      config.DefaultPrompt,
			HistoryFile: config.DefaultHistoryFile,
		},
	}
}

// newKernel builds a kernel wired with the policy filters the config asks
// for. The exam allow-list only applies in exam mode; category blocks apply
// in every mode.
func newKernel(cfg *config.Config) *kernel.Kernel {
	opts := []kernel.Option{kernel.WithMode(cfg.Mode)}

	if cfg.Verbose {
		opts = append(opts, kernel.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}

	if cfg.Mode == "exam" && len(cfg.Exam.AllowedCommands) > 0 {
		opts = append(opts, kernel.WithCommandFilters(filter.NewAllowList(cfg.Exam.AllowedCommands...)))
	}
	if len(cfg.Exam.BlockedCategories) > 0 {
		categories := make([]command.Category, len(cfg.Exam.BlockedCategories))
		for i, c := range cfg.Exam.BlockedCategories {
			categories[i] = command.Category(c)
		}
		opts = append(opts, kernel.WithCommandFilters(filter.NewCategoryBlock(categories...)))
	}

	return kernel.New(opts...)
}
