package token

import (
	"fmt"

	"github.com/signadot/sisl/sislerr"
)

// Lexer tokenizes SISL source text one token at a time, with one
// token of lookahead. It is a straightforward hand-written scanner
// (spec §4.B); the SISL surface has no indentation sensitivity or
// multi-line literal forms, so it needs none of the streaming or
// balance-tracking machinery a larger lexer would.
type Lexer struct {
	input string
	pos    int
	line   int
	column int

	hasPeek bool
	peeked  Token
}

// NewLexer returns a Lexer over input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, column: 1}
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.input) }

func (l *Lexer) current() byte {
	if l.atEnd() {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) advance() {
	if l.atEnd() {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c == '-' || c == '.'
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && isWhitespace(l.current()) {
		l.advance()
	}
}

// lexErrorf builds a sislerr.ErrSISLParse-wrapped error carrying the
// current line and column, matching the "offset or element where
// possible" diagnostic requirement of spec §7.
func lexErrorf(line, col int, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at line %d, column %d", sislerr.ErrSISLParse, msg, line, col)
}

// scanString scans a quoted string token. The returned Value is the
// raw content between the quotes, escape sequences still intact:
// unescaping is a separate concern (package token's Unescape),
// applied by the parser once it knows the value is being used as a
// !str payload, !bool payload, and so on.
func (l *Lexer) scanString() (Token, error) {
	startLine, startCol := l.line, l.column
	l.advance() // opening quote

	start := l.pos
	for !l.atEnd() && l.current() != '"' {
		if l.current() == '\\' {
			l.advance()
			if l.atEnd() {
				return Token{}, lexErrorf(l.line, l.column, "unterminated escape sequence")
			}
		}
		l.advance()
	}
	if l.atEnd() {
		return Token{}, lexErrorf(startLine, startCol, "unterminated string")
	}
	value := l.input[start:l.pos]
	l.advance() // closing quote
	return Token{Type: String, Value: value, Line: startLine, Column: startCol}, nil
}

func (l *Lexer) scanName() Token {
	startLine, startCol := l.line, l.column
	start := l.pos
	for !l.atEnd() && isNameChar(l.current()) {
		l.advance()
	}
	return Token{Type: Name, Value: l.input[start:l.pos], Line: startLine, Column: startCol}
}

// Next returns the next token, consuming it.
func (l *Lexer) Next() (Token, error) {
	if l.hasPeek {
		l.hasPeek = false
		return l.peeked, nil
	}
	return l.scan()
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if !l.hasPeek {
		tok, err := l.scan()
		if err != nil {
			return Token{}, err
		}
		l.peeked = tok
		l.hasPeek = true
	}
	return l.peeked, nil
}

func (l *Lexer) scan() (Token, error) {
	l.skipWhitespace()
	if l.atEnd() {
		return Token{Type: EOF, Line: l.line, Column: l.column}, nil
	}

	line, col := l.line, l.column
	c := l.current()
	switch c {
	case '{':
		l.advance()
		return Token{Type: LBrace, Value: "{", Line: line, Column: col}, nil
	case '}':
		l.advance()
		return Token{Type: RBrace, Value: "}", Line: line, Column: col}, nil
	case ':':
		l.advance()
		return Token{Type: Colon, Value: ":", Line: line, Column: col}, nil
	case ',':
		l.advance()
		return Token{Type: Comma, Value: ",", Line: line, Column: col}, nil
	case '!':
		l.advance()
		return Token{Type: Bang, Value: "!", Line: line, Column: col}, nil
	case '"':
		return l.scanString()
	default:
		if isNameStart(c) {
			return l.scanName(), nil
		}
		return Token{}, lexErrorf(line, col, "unexpected character %q", c)
	}
}
