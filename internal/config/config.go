// Package config loads geoscript configuration from defaults, an optional
// YAML file, environment variables, and CLI flags, in ascending precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Defaults.
const (
	DefaultMode        = "normal"
	DefaultPrompt      = "geoscript> "
	DefaultHistoryFile = ".geoscript_history"
)

// Config is the loaded CLI configuration.
type Config struct {
	// Mode selects a policy mode: "normal" or "exam".
	Mode string `koanf:"mode"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	Exam ExamConfig `koanf:"exam"`
	REPL REPLConfig `koanf:"repl"`
}

// ExamConfig configures the exam-mode filter policies.
type ExamConfig struct {
	// AllowedCommands whitelists display names; empty means no whitelist.
	AllowedCommands []string `koanf:"allowed_commands"`
	// BlockedCategories vetoes whole command categories, e.g. "CAS".
	BlockedCategories []string `koanf:"blocked_categories"`
}

// REPLConfig configures the interactive shell.
type REPLConfig struct {
	Prompt      string `koanf:"prompt"`
	HistoryFile string `koanf:"history_file"`
}

// findConfigFile finds the config file to use.
// Priority: explicit path > geoscript.yaml > geoscript.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"geoscript.yaml", "geoscript.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load layers configuration from defaults, the config file, GEOSCRIPT_*
// environment variables, and explicitly set CLI flags.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"mode":              DefaultMode,
		"verbose":           false,
		"repl.prompt":       DefaultPrompt,
		"repl.history_file": DefaultHistoryFile,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if configFile := findConfigFile(cfgFile); configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, fmt.Errorf("config file %s not found", configFile)
		}
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Environment variables. A double underscore nests, a single one
	// stays part of the key: GEOSCRIPT_REPL__HISTORY_FILE -> repl.history_file
	if err := k.Load(env.Provider("GEOSCRIPT_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "GEOSCRIPT_")), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority), only the ones explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
