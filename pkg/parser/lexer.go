package parser

// Lexer tokenizes one line of construction input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	col     int  // current column number (1-based)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{Column: l.col, Offset: l.pos}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := l.currentPos()

	var tok Token
	tok.Pos = pos

	switch l.ch {
	case 0:
		tok.Type = TOKEN_EOF
		tok.Literal = ""
	case '=':
		tok = l.newToken(TOKEN_ASSIGN, "=")
	case ',':
		tok = l.newToken(TOKEN_COMMA, ",")
	case '(':
		tok = l.newToken(TOKEN_LPAREN, "(")
	case ')':
		tok = l.newToken(TOKEN_RPAREN, ")")
	case '{':
		tok = l.newToken(TOKEN_LBRACE, "{")
	case '}':
		tok = l.newToken(TOKEN_RBRACE, "}")
	case '-':
		if isDigit(l.peekChar()) {
			return l.readNumber(pos)
		}
		tok = l.newToken(TOKEN_ILLEGAL, "-")
	default:
		if isDigit(l.ch) {
			return l.readNumber(pos)
		}
		if isIdentStart(l.ch) {
			return l.readIdentifier(pos)
		}
		tok = l.newToken(TOKEN_ILLEGAL, string(l.ch))
	}

	l.readChar()
	return tok
}

// newToken builds a single-character token and stays on the current char;
// the caller advances.
func (l *Lexer) newToken(t TokenType, literal string) Token {
	return Token{Type: t, Literal: literal, Pos: l.currentPos()}
}

// readNumber reads a numeric literal, including an optional leading minus
// and a fractional part. There is no arithmetic in the grammar, so a minus
// directly followed by a digit always belongs to the number.
func (l *Lexer) readNumber(pos Position) Token {
	start := l.pos
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return Token{Type: TOKEN_NUMBER, Literal: l.input[start:l.pos], Pos: pos}
}

// readIdentifier reads a label or command name.
func (l *Lexer) readIdentifier(pos Position) Token {
	start := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return Token{Type: TOKEN_IDENT, Literal: l.input[start:l.pos], Pos: pos}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Identifiers are ASCII only; any non-ASCII byte lexes as ILLEGAL.
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentStart(ch byte) bool {
	return ch == '_' || isLetter(ch)
}

func isIdentPart(ch byte) bool {
	return ch == '_' || ch == '\'' || isLetter(ch) || isDigit(ch)
}
