package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.gs")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunCommand(t *testing.T) {
	path := writeScript(t, `
# a small construction
A = Point(0,0)
B = Point(4,4)
m = Midpoint(A, B)
`)

	cmd := NewRunCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "m = (2, 2)")
}

func TestRunCommand_StopsAtFirstError(t *testing.T) {
	path := writeScript(t, `
A = Point(0,0)
B = Foo(1)
C = Point(1,1)
`)

	cmd := NewRunCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestRunCommand_KeepGoing(t *testing.T) {
	path := writeScript(t, `
A = Point(0,0)
B = Foo(1)
C = Point(1,1)
`)

	cmd := NewRunCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{path, "--keep-going"})

	err := cmd.Execute()
	require.Error(t, err, "failed lines still fail the run")
	assert.Contains(t, out.String(), "C = (1, 1)")
	assert.Contains(t, errOut.String(), "line 3")
}

func TestRunCommand_SaveSession(t *testing.T) {
	script := writeScript(t, "A = Point(1,2)\n")
	savePath := filepath.Join(t.TempDir(), "session.yaml")

	cmd := NewRunCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{script, "--save", savePath})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(savePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "label: A")
	assert.Contains(t, string(data), "definition: Point(1, 2)")
}

func TestRunCommand_MissingScript(t *testing.T) {
	cmd := NewRunCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.gs")})

	assert.Error(t, cmd.Execute())
}
