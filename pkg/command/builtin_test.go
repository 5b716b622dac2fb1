package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoscript-lang/geoscript/pkg/object"
)

func run(t *testing.T, name string, args ...object.Value) (object.Value, error) {
	t.Helper()
	def, err := Builtins().Lookup(name)
	require.NoError(t, err)
	return def.Run(Invocation{Args: args})
}

func mustRun(t *testing.T, name string, args ...object.Value) object.Value {
	t.Helper()
	v, err := run(t, name, args...)
	require.NoError(t, err)
	return v
}

func TestBuiltins_Point(t *testing.T) {
	v := mustRun(t, "Point", object.Number(1), object.Number(2))
	assert.Equal(t, object.Point{X: 1, Y: 2}, v)
}

func TestBuiltins_Midpoint(t *testing.T) {
	v := mustRun(t, "Midpoint", object.Point{X: 0, Y: 0}, object.Point{X: 4, Y: 6})
	assert.Equal(t, object.Point{X: 2, Y: 3}, v)
}

func TestBuiltins_Distance(t *testing.T) {
	v := mustRun(t, "Distance", object.Point{X: 0, Y: 0}, object.Point{X: 3, Y: 4})
	assert.Equal(t, object.Number(5), v)
}

func TestBuiltins_LineIsTagged(t *testing.T) {
	p, q := object.Point{X: 0, Y: 0}, object.Point{X: 1, Y: 1}
	v := mustRun(t, "Line", p, q)
	assert.Equal(t, object.Geo{Type: "Line", Args: []object.Value{p, q}}, v)
}

func TestBuiltins_AreaOfPolygon(t *testing.T) {
	square := mustRun(t, "Polygon",
		object.Point{X: 0, Y: 0}, object.Point{X: 2, Y: 0},
		object.Point{X: 2, Y: 2}, object.Point{X: 0, Y: 2})

	v := mustRun(t, "Area", square)
	assert.Equal(t, object.Number(4), v)

	_, err := run(t, "Area", object.Geo{Type: "Line"})
	assert.Error(t, err)
}

func TestBuiltins_Algebra(t *testing.T) {
	assert.Equal(t, object.Number(1), mustRun(t, "Mod", object.Number(7), object.Number(3)))
	assert.Equal(t, object.Number(2), mustRun(t, "Div", object.Number(7), object.Number(3)))
	assert.Equal(t, object.Number(6), mustRun(t, "GCD", object.Number(12), object.Number(18)))
	assert.Equal(t, object.Number(36), mustRun(t, "LCM", object.Number(12), object.Number(18)))
	assert.Equal(t, object.Number(1), mustRun(t, "Min", object.Number(3), object.Number(1), object.Number(2)))
	assert.Equal(t, object.Number(3), mustRun(t, "Max", object.Number(3), object.Number(1), object.Number(2)))
}

func TestBuiltins_DivisionByZero(t *testing.T) {
	_, err := run(t, "Mod", object.Number(7), object.Number(0))
	assert.Error(t, err)

	_, err = run(t, "Div", object.Number(7), object.Number(0))
	assert.Error(t, err)
}

func TestBuiltins_Statistics(t *testing.T) {
	nums := []object.Value{object.Number(1), object.Number(2), object.Number(6)}
	assert.Equal(t, object.Number(9), mustRun(t, "Sum", nums...))
	assert.Equal(t, object.Number(3), mustRun(t, "Mean", nums...))
	assert.Equal(t, object.Number(2), mustRun(t, "Median", nums...))
	assert.Equal(t, object.Number(1.5),
		mustRun(t, "Median", object.Number(1), object.Number(2)))
}

func TestBuiltins_Transformations(t *testing.T) {
	p := object.Point{X: 1, Y: 2}

	assert.Equal(t, object.Point{X: 4, Y: 6},
		mustRun(t, "Translate", p, object.Point{X: 3, Y: 4}))
	assert.Equal(t, object.Point{X: 2, Y: 4},
		mustRun(t, "Dilate", p, object.Number(2)))
	assert.Equal(t, object.Point{X: 9, Y: 8},
		mustRun(t, "Mirror", p, object.Point{X: 5, Y: 5}))
}

func TestBuiltins_Lists(t *testing.T) {
	list := object.List{object.Number(3), object.Number(1), object.Number(2)}

	assert.Equal(t, object.List{object.Number(1), object.Number(2), object.Number(3)},
		mustRun(t, "Sort", list))
	assert.Equal(t, object.Number(3), mustRun(t, "First", list))
	assert.Equal(t, object.Number(2), mustRun(t, "Last", list))
	assert.Equal(t, object.Number(3), mustRun(t, "Length", list))

	_, err := run(t, "First", object.List{})
	assert.Error(t, err)
}

func TestBuiltins_Logical(t *testing.T) {
	a, b := object.Number(1), object.Number(2)

	assert.Equal(t, a, mustRun(t, "If", object.Bool(true), a, b))
	assert.Equal(t, b, mustRun(t, "If", object.Number(0), a, b))
	assert.Equal(t, object.Bool(true), mustRun(t, "IsInteger", object.Number(4)))
	assert.Equal(t, object.Bool(false), mustRun(t, "IsInteger", object.Number(4.5)))
}

func TestBuiltins_Factor(t *testing.T) {
	assert.Equal(t, object.List{object.Number(2), object.Number(2), object.Number(3)},
		mustRun(t, "Factor", object.Number(12)))

	_, err := run(t, "Factor", object.Number(1.5))
	assert.Error(t, err)
}
