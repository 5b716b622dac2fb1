// Package parser turns one line of construction input into an expression
// tree.
//
// # Grammar Overview
//
//	input → IDENT "=" expr | expr
//	expr  → NUMBER | tuple | list | call | IDENT
//	tuple → "(" NUMBER "," NUMBER ")"
//	list  → "{" [item ("," item)*] "}"        (items are literals)
//	call  → IDENT "(" [expr ("," expr)*] ")"
//
// Parsing is pure: the parser never consults the construction, so whether a
// referenced label exists is decided later, at resolution time. An
// assignment's right-hand side is parsed independently and stored as a child
// node; the assignment node itself is never reused as its own value.
package parser

import (
	"fmt"
	"strconv"

	"github.com/geoscript-lang/geoscript/pkg/object"
)

// Parser parses construction input into an AST.
type Parser struct {
	lexer *Lexer
	token Token // current token
	peek  Token // lookahead token
}

// NewParser creates a new parser for the given input line.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Read two tokens to initialize current and peek.
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a single input line and returns the expression tree.
func Parse(input string) (Expr, error) {
	return NewParser(input).parseInput()
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t TokenType) bool {
	return p.peek.Type == t
}

// expect consumes the current token if it matches, otherwise fails.
func (p *Parser) expect(t TokenType) error {
	if !p.check(t) {
		return p.errorf(p.token.Pos, errUnexpectedToken, p.token.Type, t)
	}
	p.nextToken()
	return nil
}

func (p *Parser) errorf(pos Position, format string, args ...any) error {
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// parseInput parses `label = expr` or a bare expression, requiring the whole
// line to be consumed.
func (p *Parser) parseInput() (Expr, error) {
	if p.check(TOKEN_EOF) {
		return nil, p.errorf(p.token.Pos, errEmptyInput)
	}

	var expr Expr
	var err error

	if p.check(TOKEN_IDENT) && p.checkPeek(TOKEN_ASSIGN) {
		assign := &Assignment{StartPos: p.token.Pos, Label: p.token.Literal}
		p.nextToken() // label
		p.nextToken() // "="
		assign.Value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
		expr = assign
	} else {
		expr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if !p.check(TOKEN_EOF) {
		return nil, p.errorf(p.token.Pos, errTrailingInput, p.token.Type)
	}
	return expr, nil
}

// parseExpr parses one expression.
func (p *Parser) parseExpr() (Expr, error) {
	switch p.token.Type {
	case TOKEN_NUMBER:
		return p.parseNumber()
	case TOKEN_LPAREN:
		return p.parseTuple()
	case TOKEN_LBRACE:
		return p.parseList()
	case TOKEN_IDENT:
		if p.checkPeek(TOKEN_LPAREN) {
			return p.parseCall()
		}
		ref := &Reference{StartPos: p.token.Pos, Label: p.token.Literal}
		p.nextToken()
		return ref, nil
	default:
		return nil, p.errorf(p.token.Pos, errUnexpectedToken, p.token.Type, "expression")
	}
}

func (p *Parser) parseNumber() (*Literal, error) {
	pos := p.token.Pos
	f, err := strconv.ParseFloat(p.token.Literal, 64)
	if err != nil {
		return nil, p.errorf(pos, errInvalidNumber, p.token.Literal)
	}
	p.nextToken()
	return &Literal{StartPos: pos, Value: object.Number(f)}, nil
}

// parseTuple parses a coordinate pair literal like (1,2). Commas inside the
// parentheses belong to the tuple, not to a surrounding argument list.
func (p *Parser) parseTuple() (*Literal, error) {
	pos := p.token.Pos
	p.nextToken() // "("

	var coords []float64
	for {
		if !p.check(TOKEN_NUMBER) {
			return nil, p.errorf(p.token.Pos, errUnexpectedToken, p.token.Type, TOKEN_NUMBER)
		}
		f, err := strconv.ParseFloat(p.token.Literal, 64)
		if err != nil {
			return nil, p.errorf(p.token.Pos, errInvalidNumber, p.token.Literal)
		}
		coords = append(coords, f)
		p.nextToken()

		if p.check(TOKEN_COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	if len(coords) != 2 {
		return nil, p.errorf(pos, errTupleArity, len(coords))
	}
	return &Literal{StartPos: pos, Value: object.Point{X: coords[0], Y: coords[1]}}, nil
}

// parseList parses a brace-delimited list of literals like {1, 2, (3,4)}.
func (p *Parser) parseList() (*Literal, error) {
	pos := p.token.Pos
	p.nextToken() // "{"

	var items object.List
	if !p.check(TOKEN_RBRACE) {
		for {
			item, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			lit, ok := item.(*Literal)
			if !ok {
				return nil, p.errorf(item.Pos(), "list literals may only contain literals")
			}
			items = append(items, lit.Value)

			if p.check(TOKEN_COMMA) {
				p.nextToken()
				continue
			}
			break
		}
	}

	if err := p.expect(TOKEN_RBRACE); err != nil {
		return nil, err
	}
	return &Literal{StartPos: pos, Value: items}, nil
}

// parseCall parses Name(arg1, arg2, ...). Argument expressions are split on
// commas at this nesting level only; nested calls and tuple literals consume
// their own commas.
func (p *Parser) parseCall() (*CommandCall, error) {
	call := &CommandCall{StartPos: p.token.Pos, Name: p.token.Literal}
	p.nextToken() // name
	p.nextToken() // "("

	if !p.check(TOKEN_RPAREN) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)

			if p.check(TOKEN_COMMA) {
				p.nextToken()
				continue
			}
			break
		}
	}

	if err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return call, nil
}
