package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_LookupByDisplayName(t *testing.T) {
	table := Builtins()

	def, err := table.Lookup("Point")
	require.NoError(t, err)
	assert.Equal(t, "Point", def.Name)
	assert.Equal(t, Geometry, def.Category)
}

// Lookup is keyed by the display name end users type, case-sensitively.
// Any other spelling is an unknown command.
func TestTable_LookupIsCaseSensitive(t *testing.T) {
	table := Builtins()

	for _, name := range []string{"POINT", "point", "PoInt", "POINT_CMD"} {
		t.Run(name, func(t *testing.T) {
			_, err := table.Lookup(name)
			require.Error(t, err)

			var notFound *NotFoundError
			require.True(t, errors.As(err, &notFound), "expected *NotFoundError, got %T", err)
			assert.Equal(t, name, notFound.Name)
		})
	}
}

func TestTable_Category(t *testing.T) {
	table := Builtins()

	cat, err := table.Category("Simplify")
	require.NoError(t, err)
	assert.Equal(t, CAS, cat)

	_, err = table.Category("Nope")
	require.Error(t, err)
}

func TestTable_NamesSorted(t *testing.T) {
	table := NewTable(
		&Definition{Name: "Zeta", Category: Algebra},
		&Definition{Name: "Alpha", Category: Algebra},
		&Definition{Name: "Mid", Category: Algebra},
	)

	assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, table.Names())
	assert.Equal(t, 3, table.Len())
}

func TestDefinition_ShapeAt(t *testing.T) {
	def := &Definition{Name: "Polygon", MinArgs: 3, MaxArgs: Unbounded, Shapes: []Shape{PointShape}}

	// The last declared shape applies to every further position.
	assert.Equal(t, PointShape, def.ShapeAt(0))
	assert.Equal(t, PointShape, def.ShapeAt(7))

	empty := &Definition{Name: "X"}
	assert.Equal(t, Any, empty.ShapeAt(0))
}

func TestDefinition_Arity(t *testing.T) {
	assert.Equal(t, "2", (&Definition{MinArgs: 2, MaxArgs: 2}).Arity())
	assert.Equal(t, "1..3", (&Definition{MinArgs: 1, MaxArgs: 3}).Arity())
	assert.Equal(t, "1..n", (&Definition{MinArgs: 1, MaxArgs: Unbounded}).Arity())
}
