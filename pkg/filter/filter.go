// Package filter provides composable policy chains that can veto a command
// or its resolved arguments before execution. Filters are side-effect-free
// predicates; the dispatcher evaluates each chain in registration order and
// stops at the first denial.
package filter

import (
	"github.com/geoscript-lang/geoscript/pkg/command"
	"github.com/geoscript-lang/geoscript/pkg/object"
)

// Context is the read-only evaluation context passed to every filter.
type Context struct {
	// Session is an opaque session identifier.
	Session string
	// Mode is an opaque deployment mode token, e.g. "exam".
	Mode string
}

// CommandFilter decides whether a command may run at all, before its
// arguments are even evaluated. A nil return allows the command; a non-nil
// return is the denial reason.
type CommandFilter interface {
	Check(def *command.Definition, ctx Context) error
}

// ArgumentFilter validates the resolved argument values of a command.
type ArgumentFilter interface {
	Check(def *command.Definition, args []object.Value, ctx Context) error
}

// CommandChain evaluates command filters in order, stopping at the first
// denial.
type CommandChain []CommandFilter

func (c CommandChain) Check(def *command.Definition, ctx Context) error {
	for _, f := range c {
		if err := f.Check(def, ctx); err != nil {
			return err
		}
	}
	return nil
}

// ArgumentChain evaluates argument filters in order, stopping at the first
// denial.
type ArgumentChain []ArgumentFilter

func (c ArgumentChain) Check(def *command.Definition, args []object.Value, ctx Context) error {
	for _, f := range c {
		if err := f.Check(def, args, ctx); err != nil {
			return err
		}
	}
	return nil
}
