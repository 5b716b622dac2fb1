// Package object defines the value model produced by evaluating construction
// commands: numbers, coordinate pairs, lists, and tagged geometric objects.
package object

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a value.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindPoint
	KindList
	KindGeo
)

// String returns the human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindPoint:
		return "point"
	case KindList:
		return "list"
	case KindGeo:
		return "object"
	default:
		return "unknown"
	}
}

// Value is implemented by every evaluation result.
type Value interface {
	Kind() Kind
	String() string
}

// Number is a scalar value.
type Number float64

func (Number) Kind() Kind { return KindNumber }

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// Bool is a truth value, produced by logical commands.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Point is a coordinate pair.
type Point struct {
	X, Y float64
}

func (Point) Kind() Kind { return KindPoint }

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)",
		strconv.FormatFloat(p.X, 'g', -1, 64),
		strconv.FormatFloat(p.Y, 'g', -1, 64))
}

// List is an ordered collection of values.
type List []Value

func (List) Kind() Kind { return KindList }

func (l List) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range l {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteByte('}')
	return b.String()
}

// Geo is a tagged geometric object description, e.g. a line through two
// points. The numeric solving behind these objects is left to callers; the
// kernel only tracks what they are built from.
type Geo struct {
	Type string
	Args []Value
}

func (Geo) Kind() Kind { return KindGeo }

func (g Geo) String() string {
	parts := make([]string, len(g.Args))
	for i, a := range g.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", g.Type, strings.Join(parts, ", "))
}
