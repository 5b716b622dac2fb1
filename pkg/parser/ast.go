package parser

import (
	"strings"

	"github.com/geoscript-lang/geoscript/pkg/object"
)

// Expr is the interface implemented by all expression nodes.
type Expr interface {
	// Pos returns the position of the first token of the expression.
	Pos() Position
	// String renders the expression back as input text.
	String() string

	exprNode()
}

// Literal is a self-contained value: a number, a coordinate tuple, or a
// brace-delimited list of literals.
type Literal struct {
	StartPos Position
	Value    object.Value
}

func (l *Literal) Pos() Position  { return l.StartPos }
func (l *Literal) String() string { return l.Value.String() }
func (*Literal) exprNode()        {}

// Reference names a previously bound label. Whether the label exists is a
// resolution-time question, never a parse-time one.
type Reference struct {
	StartPos Position
	Label    string
}

func (r *Reference) Pos() Position  { return r.StartPos }
func (r *Reference) String() string { return r.Label }
func (*Reference) exprNode()        {}

// CommandCall applies a named command to ordered argument expressions.
type CommandCall struct {
	StartPos Position
	Name     string
	Args     []Expr
}

func (c *CommandCall) Pos() Position { return c.StartPos }

func (c *CommandCall) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (*CommandCall) exprNode() {}

// Assignment binds the result of evaluating Value to Label. Value is always
// a distinct child expression; an assignment node is never its own value.
type Assignment struct {
	StartPos Position
	Label    string
	Value    Expr
}

func (a *Assignment) Pos() Position  { return a.StartPos }
func (a *Assignment) String() string { return a.Label + " = " + a.Value.String() }
func (*Assignment) exprNode()        {}
