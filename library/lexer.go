// SPDX-License-Identifier: MIT

package library

import (
	"fmt"
	"strings"
	"unicode"
)

// Lexer splits library source into tokens.
type Lexer struct {
	source      []rune
	file        string
	start       int
	current     int
	line        int
	column      int
	startColumn int
	tokens      []Token
}

// NewLexer returns a lexer over source; file only labels errors.
func NewLexer(source, file string) *Lexer {
	return &Lexer{
		source: []rune(source),
		file:   file,
		line:   1,
		column: 1,
		tokens: make([]Token, 0, len(source)/4),
	}
}

// ScanTokens returns every token, ending with TokenEOF, or the first
// lexical error.
func (l *Lexer) ScanTokens() ([]Token, error) {
	for !l.isAtEnd() {
		l.start = l.current
		l.startColumn = l.column
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, Token{Type: TokenEOF, Line: l.line, Column: l.column})

	return l.tokens, nil
}

func (l *Lexer) scanToken() error {
	r := l.advance()
	switch r {
	case ' ', '\t', '\r':
	case '\n':
		l.add(TokenNewline, "")
		l.line++
		l.column = 1
	case '#', ';':
		for !l.isAtEnd() && l.peek() != '\n' {
			l.advance()
		}
	case '=':
		l.add(TokenEqual, "=")
	case '(':
		l.add(TokenLParen, "(")
	case ')':
		l.add(TokenRParen, ")")
	case ',':
		l.add(TokenComma, ",")
	case '*':
		l.add(TokenStar, "*")
	case '+':
		l.add(TokenPlus, "+")
	case '"':
		return l.scanString()
	default:
		switch {
		case unicode.IsDigit(r) || r == '-' || r == '.':
			return l.scanNumber()
		case isIdentStart(r):
			for !l.isAtEnd() && isIdentPart(l.peek()) {
				l.advance()
			}
			l.add(TokenIdent, string(l.source[l.start:l.current]))
		default:
			return l.errorf("unexpected character %q", r)
		}
	}

	return nil
}

func (l *Lexer) scanString() error {
	var sb strings.Builder
	for !l.isAtEnd() && l.peek() != '"' {
		r := l.advance()
		if r == '\n' {
			return l.errorf("unterminated string")
		}
		if r == '\\' && !l.isAtEnd() {
			r = l.advance()
		}
		sb.WriteRune(r)
	}
	if l.isAtEnd() {
		return l.errorf("unterminated string")
	}
	l.advance()
	l.add(TokenString, sb.String())

	return nil
}

func (l *Lexer) scanNumber() error {
	digits := unicode.IsDigit(l.source[l.start])
	for !l.isAtEnd() && (unicode.IsDigit(l.peek()) || l.peek() == '.') {
		if unicode.IsDigit(l.peek()) {
			digits = true
		}
		l.advance()
	}
	if !digits {
		return l.errorf("malformed number %q", string(l.source[l.start:l.current]))
	}
	l.add(TokenNumber, string(l.source[l.start:l.current]))

	return nil
}

func (l *Lexer) add(t TokenType, lexeme string) {
	l.tokens = append(l.tokens, Token{Type: t, Lexeme: lexeme, Line: l.line, Column: l.startColumn})
}

func (l *Lexer) advance() rune {
	r := l.source[l.current]
	l.current++
	l.column++

	return r
}

func (l *Lexer) peek() rune { return l.source[l.current] }

func (l *Lexer) isAtEnd() bool { return l.current >= len(l.source) }

func (l *Lexer) errorf(format string, args ...any) error {
	return &ParseError{
		File:   l.file,
		Line:   l.line,
		Column: l.startColumn,
		Err:    ErrSyntax,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) || r == '_' }

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\'' || r == '.'
}
