package filter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoscript-lang/geoscript/pkg/command"
	"github.com/geoscript-lang/geoscript/pkg/object"
)

func lookup(t *testing.T, name string) *command.Definition {
	t.Helper()
	def, err := command.Builtins().Lookup(name)
	require.NoError(t, err)
	return def
}

func TestAllowList(t *testing.T) {
	f := NewAllowList("Point", "Line")

	assert.NoError(t, f.Check(lookup(t, "Point"), Context{Mode: "exam"}))

	err := f.Check(lookup(t, "Simplify"), Context{Mode: "exam"})
	require.Error(t, err)

	var disallowed *command.DisallowedError
	require.True(t, errors.As(err, &disallowed), "expected *DisallowedError, got %T", err)
	assert.Equal(t, "Simplify", disallowed.Name)
	assert.NotEmpty(t, disallowed.Reason)
}

func TestCategoryBlock(t *testing.T) {
	f := NewCategoryBlock(command.CAS)

	assert.NoError(t, f.Check(lookup(t, "Point"), Context{}))

	err := f.Check(lookup(t, "Expand"), Context{})
	require.Error(t, err)

	var disallowed *command.DisallowedError
	require.True(t, errors.As(err, &disallowed))
	assert.Contains(t, disallowed.Reason, "CAS")
}

func TestArgumentCount(t *testing.T) {
	def := lookup(t, "Line") // exactly 2
	args := func(n int) []object.Value {
		out := make([]object.Value, n)
		for i := range out {
			out[i] = object.Point{}
		}
		return out
	}

	var f ArgumentCount
	assert.NoError(t, f.Check(def, args(2), Context{}))

	for _, n := range []int{1, 3} {
		err := f.Check(def, args(n), Context{})
		require.Error(t, err, "expected error for %d args", n)

		var countErr *command.ArgumentCountError
		require.True(t, errors.As(err, &countErr))
		assert.Equal(t, n, countErr.Got)
		assert.Equal(t, "Line", countErr.Name)
	}
}

func TestArgumentCount_Variadic(t *testing.T) {
	def := lookup(t, "Sum") // 1..n

	var f ArgumentCount
	assert.NoError(t, f.Check(def, []object.Value{object.Number(1)}, Context{}))
	assert.Error(t, f.Check(def, nil, Context{}))
}

func TestArgumentShape(t *testing.T) {
	def := lookup(t, "Circle") // point, number

	var f ArgumentShape
	assert.NoError(t, f.Check(def, []object.Value{object.Point{}, object.Number(3)}, Context{}))

	err := f.Check(def, []object.Value{object.Number(3), object.Number(3)}, Context{})
	require.Error(t, err)

	var typeErr *command.ArgumentTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, 0, typeErr.Position)
	assert.Equal(t, command.PointShape, typeErr.Expected)
	assert.Equal(t, object.KindNumber, typeErr.Got)
}

// recordingFilter notes whether it ran, to verify chain short-circuiting.
type recordingFilter struct {
	ran  bool
	deny bool
}

func (f *recordingFilter) Check(def *command.Definition, _ Context) error {
	f.ran = true
	if f.deny {
		return fmt.Errorf("denied")
	}
	return nil
}

func TestCommandChain_ShortCircuits(t *testing.T) {
	first := &recordingFilter{deny: true}
	second := &recordingFilter{}
	chain := CommandChain{first, second}

	err := chain.Check(lookup(t, "Point"), Context{})
	require.Error(t, err)
	assert.True(t, first.ran)
	assert.False(t, second.ran, "chain must stop at the first denial")
}

func TestCommandChain_AllAllow(t *testing.T) {
	first := &recordingFilter{}
	second := &recordingFilter{}
	chain := CommandChain{first, second}

	require.NoError(t, chain.Check(lookup(t, "Point"), Context{}))
	assert.True(t, first.ran)
	assert.True(t, second.ran)
}

func TestArgumentChain_Order(t *testing.T) {
	chain := ArgumentChain{ArgumentCount{}, ArgumentShape{}}
	def := lookup(t, "Circle")

	// Wrong count and wrong shape: the count filter runs first.
	err := chain.Check(def, []object.Value{object.Number(1)}, Context{})
	require.Error(t, err)

	var countErr *command.ArgumentCountError
	assert.True(t, errors.As(err, &countErr), "expected count error first, got %T", err)
}
