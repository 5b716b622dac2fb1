package command

import (
	"fmt"
	"math"
	"sort"

	"github.com/geoscript-lang/geoscript/pkg/object"
)

// Builtins returns the default command table. The leaf math is intentionally
// modest: commands whose computation is trivial (Midpoint, Distance, Sum)
// produce real numbers, the rest produce tagged object descriptions.
func Builtins() *Table {
	return NewTable(
		// Geometry
		&Definition{Name: "Point", Category: Geometry, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{Scalar, Scalar}, Run: runPoint},
		&Definition{Name: "Line", Category: Geometry, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{PointShape, PointShape}, Run: tagged("Line")},
		&Definition{Name: "Segment", Category: Geometry, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{PointShape, PointShape}, Run: tagged("Segment")},
		&Definition{Name: "Ray", Category: Geometry, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{PointShape, PointShape}, Run: tagged("Ray")},
		&Definition{Name: "Midpoint", Category: Geometry, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{PointShape, PointShape}, Run: runMidpoint},
		&Definition{Name: "Distance", Category: Geometry, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{PointShape, PointShape}, Run: runDistance},
		&Definition{Name: "Angle", Category: Geometry, MinArgs: 3, MaxArgs: 3,
			Shapes: []Shape{PointShape, PointShape, PointShape}, Run: runAngle},
		&Definition{Name: "Intersect", Category: Geometry, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{GeoShape, GeoShape}, Run: tagged("Intersect")},
		&Definition{Name: "Polygon", Category: Geometry, MinArgs: 3, MaxArgs: Unbounded,
			Shapes: []Shape{PointShape}, Run: tagged("Polygon")},
		&Definition{Name: "Area", Category: Geometry, MinArgs: 1, MaxArgs: 1,
			Shapes: []Shape{GeoShape}, Run: runArea},

		// Conic
		&Definition{Name: "Circle", Category: Conic, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{PointShape, Scalar}, Run: tagged("Circle")},

		// Algebra
		&Definition{Name: "Mod", Category: Algebra, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{Scalar, Scalar}, Run: runMod},
		&Definition{Name: "Div", Category: Algebra, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{Scalar, Scalar}, Run: runDiv},
		&Definition{Name: "Min", Category: Algebra, MinArgs: 1, MaxArgs: Unbounded,
			Shapes: []Shape{Scalar}, Run: foldNumbers("Min", math.Min)},
		&Definition{Name: "Max", Category: Algebra, MinArgs: 1, MaxArgs: Unbounded,
			Shapes: []Shape{Scalar}, Run: foldNumbers("Max", math.Max)},
		&Definition{Name: "GCD", Category: Algebra, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{Scalar, Scalar}, Run: runGCD},
		&Definition{Name: "LCM", Category: Algebra, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{Scalar, Scalar}, Run: runLCM},

		// Statistics
		&Definition{Name: "Sum", Category: Statistics, MinArgs: 1, MaxArgs: Unbounded,
			Shapes: []Shape{Scalar}, Run: runSum},
		&Definition{Name: "Mean", Category: Statistics, MinArgs: 1, MaxArgs: Unbounded,
			Shapes: []Shape{Scalar}, Run: runMean},
		&Definition{Name: "Median", Category: Statistics, MinArgs: 1, MaxArgs: Unbounded,
			Shapes: []Shape{Scalar}, Run: runMedian},

		// Transformation
		&Definition{Name: "Translate", Category: Transformation, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{GeoShape, PointShape}, Run: runTranslate},
		&Definition{Name: "Rotate", Category: Transformation, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{GeoShape, Scalar}, Run: runRotate},
		&Definition{Name: "Dilate", Category: Transformation, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{GeoShape, Scalar}, Run: runDilate},
		&Definition{Name: "Mirror", Category: Transformation, MinArgs: 2, MaxArgs: 2,
			Shapes: []Shape{GeoShape, PointShape}, Run: runMirror},

		// List
		&Definition{Name: "Sort", Category: ListOps, MinArgs: 1, MaxArgs: 1,
			Shapes: []Shape{ListShape}, Run: runSort},
		&Definition{Name: "First", Category: ListOps, MinArgs: 1, MaxArgs: 1,
			Shapes: []Shape{ListShape}, Run: runFirst},
		&Definition{Name: "Last", Category: ListOps, MinArgs: 1, MaxArgs: 1,
			Shapes: []Shape{ListShape}, Run: runLast},
		&Definition{Name: "Length", Category: ListOps, MinArgs: 1, MaxArgs: 1,
			Shapes: []Shape{ListShape}, Run: runLength},

		// Logical
		&Definition{Name: "If", Category: Logical, MinArgs: 3, MaxArgs: 3,
			Shapes: []Shape{Any, Any, Any}, Run: runIf},
		&Definition{Name: "IsInteger", Category: Logical, MinArgs: 1, MaxArgs: 1,
			Shapes: []Shape{Scalar}, Run: runIsInteger},

		// CAS
		&Definition{Name: "Simplify", Category: CAS, MinArgs: 1, MaxArgs: 1,
			Shapes: []Shape{Any}, Run: runIdentity},
		&Definition{Name: "Expand", Category: CAS, MinArgs: 1, MaxArgs: 1,
			Shapes: []Shape{Any}, Run: runIdentity},
		&Definition{Name: "Factor", Category: CAS, MinArgs: 1, MaxArgs: 1,
			Shapes: []Shape{Scalar}, Run: runFactor},
	)
}

// tagged builds a leaf that wraps its arguments in a tagged object
// description without further computation.
func tagged(typeName string) RunFunc {
	return func(inv Invocation) (object.Value, error) {
		args := make([]object.Value, len(inv.Args))
		copy(args, inv.Args)
		return object.Geo{Type: typeName, Args: args}, nil
	}
}

func runIdentity(inv Invocation) (object.Value, error) {
	return inv.Args[0], nil
}

func runPoint(inv Invocation) (object.Value, error) {
	return object.Point{
		X: float64(inv.Args[0].(object.Number)),
		Y: float64(inv.Args[1].(object.Number)),
	}, nil
}

func runMidpoint(inv Invocation) (object.Value, error) {
	p := inv.Args[0].(object.Point)
	q := inv.Args[1].(object.Point)
	return object.Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}, nil
}

func runDistance(inv Invocation) (object.Value, error) {
	p := inv.Args[0].(object.Point)
	q := inv.Args[1].(object.Point)
	return object.Number(math.Hypot(p.X-q.X, p.Y-q.Y)), nil
}

func runAngle(inv Invocation) (object.Value, error) {
	a := inv.Args[0].(object.Point)
	v := inv.Args[1].(object.Point) // vertex
	b := inv.Args[2].(object.Point)
	ux, uy := a.X-v.X, a.Y-v.Y
	wx, wy := b.X-v.X, b.Y-v.Y
	nu, nw := math.Hypot(ux, uy), math.Hypot(wx, wy)
	if nu == 0 || nw == 0 {
		return nil, fmt.Errorf("angle is undefined for coincident points")
	}
	cos := (ux*wx + uy*wy) / (nu * nw)
	cos = math.Max(-1, math.Min(1, cos))
	return object.Number(math.Acos(cos)), nil
}

// runArea computes the shoelace area of a polygon of resolved points. Other
// object types carry no coordinates here, so their area is undefined.
func runArea(inv Invocation) (object.Value, error) {
	geo, ok := inv.Args[0].(object.Geo)
	if !ok || geo.Type != "Polygon" {
		return nil, fmt.Errorf("area is only defined for polygons")
	}
	pts := make([]object.Point, 0, len(geo.Args))
	for _, a := range geo.Args {
		p, ok := a.(object.Point)
		if !ok {
			return nil, fmt.Errorf("area is only defined for polygons of points")
		}
		pts = append(pts, p)
	}
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return object.Number(math.Abs(sum) / 2), nil
}

func runMod(inv Invocation) (object.Value, error) {
	a := float64(inv.Args[0].(object.Number))
	b := float64(inv.Args[1].(object.Number))
	if b == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	return object.Number(math.Mod(a, b)), nil
}

func runDiv(inv Invocation) (object.Value, error) {
	a := float64(inv.Args[0].(object.Number))
	b := float64(inv.Args[1].(object.Number))
	if b == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	return object.Number(math.Trunc(a / b)), nil
}

func foldNumbers(name string, f func(a, b float64) float64) RunFunc {
	return func(inv Invocation) (object.Value, error) {
		acc := float64(inv.Args[0].(object.Number))
		for _, v := range inv.Args[1:] {
			acc = f(acc, float64(v.(object.Number)))
		}
		return object.Number(acc), nil
	}
}

func runGCD(inv Invocation) (object.Value, error) {
	a := int64(math.Abs(math.Round(float64(inv.Args[0].(object.Number)))))
	b := int64(math.Abs(math.Round(float64(inv.Args[1].(object.Number)))))
	for b != 0 {
		a, b = b, a%b
	}
	return object.Number(a), nil
}

func runLCM(inv Invocation) (object.Value, error) {
	a := int64(math.Abs(math.Round(float64(inv.Args[0].(object.Number)))))
	b := int64(math.Abs(math.Round(float64(inv.Args[1].(object.Number)))))
	if a == 0 || b == 0 {
		return object.Number(0), nil
	}
	g := a
	for r := b; r != 0; {
		g, r = r, g%r
	}
	return object.Number(a / g * b), nil
}

func runSum(inv Invocation) (object.Value, error) {
	var sum float64
	for _, v := range inv.Args {
		sum += float64(v.(object.Number))
	}
	return object.Number(sum), nil
}

func runMean(inv Invocation) (object.Value, error) {
	var sum float64
	for _, v := range inv.Args {
		sum += float64(v.(object.Number))
	}
	return object.Number(sum / float64(len(inv.Args))), nil
}

func runMedian(inv Invocation) (object.Value, error) {
	vals := make([]float64, len(inv.Args))
	for i, v := range inv.Args {
		vals[i] = float64(v.(object.Number))
	}
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 1 {
		return object.Number(vals[n/2]), nil
	}
	return object.Number((vals[n/2-1] + vals[n/2]) / 2), nil
}

func runTranslate(inv Invocation) (object.Value, error) {
	v := inv.Args[1].(object.Point)
	if p, ok := inv.Args[0].(object.Point); ok {
		return object.Point{X: p.X + v.X, Y: p.Y + v.Y}, nil
	}
	return object.Geo{Type: "Translate", Args: []object.Value{inv.Args[0], v}}, nil
}

func runRotate(inv Invocation) (object.Value, error) {
	angle := float64(inv.Args[1].(object.Number))
	if p, ok := inv.Args[0].(object.Point); ok {
		sin, cos := math.Sincos(angle)
		return object.Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}, nil
	}
	return object.Geo{Type: "Rotate", Args: []object.Value{inv.Args[0], inv.Args[1]}}, nil
}

func runDilate(inv Invocation) (object.Value, error) {
	factor := float64(inv.Args[1].(object.Number))
	if p, ok := inv.Args[0].(object.Point); ok {
		return object.Point{X: p.X * factor, Y: p.Y * factor}, nil
	}
	return object.Geo{Type: "Dilate", Args: []object.Value{inv.Args[0], inv.Args[1]}}, nil
}

func runMirror(inv Invocation) (object.Value, error) {
	about := inv.Args[1].(object.Point)
	if p, ok := inv.Args[0].(object.Point); ok {
		return object.Point{X: 2*about.X - p.X, Y: 2*about.Y - p.Y}, nil
	}
	return object.Geo{Type: "Mirror", Args: []object.Value{inv.Args[0], about}}, nil
}

func runSort(inv Invocation) (object.Value, error) {
	list := inv.Args[0].(object.List)
	vals := make([]float64, len(list))
	for i, v := range list {
		n, ok := v.(object.Number)
		if !ok {
			return nil, fmt.Errorf("sort is only defined for lists of numbers")
		}
		vals[i] = float64(n)
	}
	sort.Float64s(vals)
	out := make(object.List, len(vals))
	for i, f := range vals {
		out[i] = object.Number(f)
	}
	return out, nil
}

func runFirst(inv Invocation) (object.Value, error) {
	list := inv.Args[0].(object.List)
	if len(list) == 0 {
		return nil, fmt.Errorf("first is undefined for an empty list")
	}
	return list[0], nil
}

func runLast(inv Invocation) (object.Value, error) {
	list := inv.Args[0].(object.List)
	if len(list) == 0 {
		return nil, fmt.Errorf("last is undefined for an empty list")
	}
	return list[len(list)-1], nil
}

func runLength(inv Invocation) (object.Value, error) {
	return object.Number(len(inv.Args[0].(object.List))), nil
}

func runIf(inv Invocation) (object.Value, error) {
	switch cond := inv.Args[0].(type) {
	case object.Bool:
		if cond {
			return inv.Args[1], nil
		}
		return inv.Args[2], nil
	case object.Number:
		if cond != 0 {
			return inv.Args[1], nil
		}
		return inv.Args[2], nil
	default:
		return nil, fmt.Errorf("condition must be a boolean or a number, got %s", inv.Args[0].Kind())
	}
}

func runIsInteger(inv Invocation) (object.Value, error) {
	n := float64(inv.Args[0].(object.Number))
	return object.Bool(n == math.Trunc(n)), nil
}

func runFactor(inv Invocation) (object.Value, error) {
	f := float64(inv.Args[0].(object.Number))
	if f != math.Trunc(f) || f < 2 {
		return nil, fmt.Errorf("factorization is only defined for integers >= 2")
	}
	n := int64(f)
	var factors object.List
	for d := int64(2); d*d <= n; d++ {
		for n%d == 0 {
			factors = append(factors, object.Number(d))
			n /= d
		}
	}
	if n > 1 {
		factors = append(factors, object.Number(n))
	}
	return factors, nil
}
