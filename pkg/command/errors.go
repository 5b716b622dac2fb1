package command

import (
	"fmt"

	"github.com/geoscript-lang/geoscript/pkg/object"
)

// NotFoundError reports a lookup under an unknown display name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

// DisallowedError reports a command vetoed by a policy filter. The reason is
// deliberately distinct from "unknown command": the command exists, some
// policy forbids it.
type DisallowedError struct {
	Name   string
	Reason string
}

func (e *DisallowedError) Error() string {
	return fmt.Sprintf("command %q is not allowed: %s", e.Name, e.Reason)
}

// ArgumentCountError reports an arity mismatch.
type ArgumentCountError struct {
	Name     string
	Got      int
	Min, Max int // Max is Unbounded for variadic commands
}

func (e *ArgumentCountError) Error() string {
	expected := e.expected()
	return fmt.Sprintf("command %q expects %s arguments, got %d", e.Name, expected, e.Got)
}

func (e *ArgumentCountError) expected() string {
	d := Definition{MinArgs: e.Min, MaxArgs: e.Max}
	return d.Arity()
}

// ArgumentTypeError reports an argument whose resolved value has the wrong
// shape for its position.
type ArgumentTypeError struct {
	Name     string
	Position int // 0-based
	Expected Shape
	Got      object.Kind
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("command %q argument %d: expected %s, got %s",
		e.Name, e.Position+1, e.Expected, e.Got)
}
