package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "geoscript.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultMode, cfg.Mode)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultPrompt, cfg.REPL.Prompt)
	assert.Equal(t, DefaultHistoryFile, cfg.REPL.HistoryFile)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
mode: exam
exam:
  allowed_commands:
    - Point
    - Line
  blocked_categories:
    - CAS
repl:
  prompt: "construct> "
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "exam", cfg.Mode)
	assert.Equal(t, []string{"Point", "Line"}, cfg.Exam.AllowedCommands)
	assert.Equal(t, []string{"CAS"}, cfg.Exam.BlockedCategories)
	assert.Equal(t, "construct> ", cfg.REPL.Prompt)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultHistoryFile, cfg.REPL.HistoryFile)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "mode: normal\n")
	t.Setenv("GEOSCRIPT_MODE", "exam")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "exam", cfg.Mode)
}

func TestLoad_EnvNestedKeys(t *testing.T) {
	// Double underscore nests; single underscores stay part of the key.
	t.Setenv("GEOSCRIPT_REPL__PROMPT", "env> ")
	t.Setenv("GEOSCRIPT_REPL__HISTORY_FILE", "/tmp/hist")
	t.Setenv("GEOSCRIPT_EXAM__ALLOWED_COMMANDS", "Point,Line")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "env> ", cfg.REPL.Prompt)
	assert.Equal(t, "/tmp/hist", cfg.REPL.HistoryFile)
	assert.Equal(t, []string{"Point", "Line"}, cfg.Exam.AllowedCommands)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("GEOSCRIPT_MODE", "exam")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("mode", "", "")
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse([]string{"--mode", "normal", "--verbose"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "normal", cfg.Mode)
	assert.True(t, cfg.Verbose)
}

func TestLoad_UnchangedFlagsIgnored(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("mode", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, DefaultMode, cfg.Mode, "unset flags must not override defaults")
}
