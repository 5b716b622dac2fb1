package parser

import "fmt"

// ParseError represents a syntax error with position information.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at column %d: %s", e.Pos.Column, e.Message)
}

// Common error messages.
const (
	errUnexpectedToken = "unexpected token %s, expected %s"
	errEmptyInput      = "empty input"
	errTrailingInput   = "unexpected %s after expression"
	errTupleArity      = "tuple literal must have exactly 2 coordinates, got %d"
	errInvalidNumber   = "invalid number literal %q"
)
