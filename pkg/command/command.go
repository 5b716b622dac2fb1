// Package command defines construction commands and the table that resolves
// them by display name.
package command

import (
	"strconv"

	"github.com/geoscript-lang/geoscript/pkg/object"
)

// Category classifies a command. The set is closed; new categories are a
// code change, not configuration.
type Category string

const (
	Algebra        Category = "Algebra"
	Geometry       Category = "Geometry"
	Statistics     Category = "Statistics"
	Conic          Category = "Conic"
	ListOps        Category = "List"
	Transformation Category = "Transformation"
	Logical        Category = "Logical"
	CAS            Category = "CAS"
)

// Shape is the expected form of an argument at a given position.
type Shape int

const (
	Any Shape = iota
	Scalar
	PointShape
	GeoShape
	ListShape
)

// String returns the shape name used in error messages.
func (s Shape) String() string {
	switch s {
	case Any:
		return "any"
	case Scalar:
		return "number"
	case PointShape:
		return "point"
	case GeoShape:
		return "object"
	case ListShape:
		return "list"
	default:
		return "unknown"
	}
}

// Matches reports whether a resolved value satisfies the shape.
func (s Shape) Matches(v object.Value) bool {
	switch s {
	case Any:
		return true
	case Scalar:
		return v.Kind() == object.KindNumber
	case PointShape:
		return v.Kind() == object.KindPoint
	case GeoShape:
		return v.Kind() == object.KindGeo || v.Kind() == object.KindPoint
	case ListShape:
		return v.Kind() == object.KindList
	default:
		return false
	}
}

// Unbounded marks a command with no upper argument limit.
const Unbounded = -1

// Invocation carries everything a leaf algorithm receives: the resolved,
// filter-validated arguments and the set of labels referenced anywhere in
// the call subtree. Leaves never look up labels themselves.
type Invocation struct {
	Args []object.Value
	Deps []string
}

// RunFunc is the leaf algorithm bound to a command.
type RunFunc func(inv Invocation) (object.Value, error)

// Definition is an immutable command definition. Name is the display name
// end users type and the only valid lookup key.
type Definition struct {
	Name     string
	Category Category
	MinArgs  int
	MaxArgs  int // Unbounded for variadic commands
	// Shapes holds the expected shape per argument position; when a command
	// accepts more arguments than shapes, the last shape applies to the rest.
	Shapes []Shape
	Run    RunFunc
}

// ShapeAt returns the expected shape for the i-th argument.
func (d *Definition) ShapeAt(i int) Shape {
	if len(d.Shapes) == 0 {
		return Any
	}
	if i >= len(d.Shapes) {
		return d.Shapes[len(d.Shapes)-1]
	}
	return d.Shapes[i]
}

// Arity renders the argument bounds for diagnostics, e.g. "2" or "1..n".
func (d *Definition) Arity() string {
	if d.MaxArgs == Unbounded {
		return strconv.Itoa(d.MinArgs) + "..n"
	}
	if d.MinArgs == d.MaxArgs {
		return strconv.Itoa(d.MinArgs)
	}
	return strconv.Itoa(d.MinArgs) + ".." + strconv.Itoa(d.MaxArgs)
}
