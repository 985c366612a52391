package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/sandrolain/golispc/pkg/types"
)

const eof = -1

// Lexer converts source text into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go" technique.
type Lexer struct {
	input   string // Input string being scanned
	length  int    // Length of input string
	start   int    // Start position of current token
	current int    // Current position in input
	width   int    // Width of last rune read
	err     error  // First error encountered
}

// NewLexer creates a new lexer from the provided input string.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		length: len(input),
	}
}

// Tokenize scans the whole input and returns its tokens in source order.
// It stops at the first unrecognized character or unterminated string.
//
// Example:
//
//	tokens, err := parser.Tokenize(`(concat "foo" "bar")`)
//	// ( concat foo bar )
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		t := l.Next()
		switch t.Type {
		case TokenEOF:
			return tokens, nil
		case TokenError:
			return nil, l.Error()
		}
		tokens = append(tokens, t)
	}
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns TokenEOF for all
// subsequent calls. After a failure it returns TokenError for all subsequent
// calls and Error reports the cause.
func (l *Lexer) Next() Token {
	if l.err != nil {
		return Token{Type: TokenError, Position: l.start}
	}

	l.skipWhitespace()

	ch := l.nextRune()
	switch {
	case ch == eof:
		return l.eof()
	case ch == '(' || ch == ')':
		return l.newToken(TokenParen)
	case ch == '"':
		return l.scanString()
	case isDigit(ch):
		l.acceptAll(isDigit)
		return l.newToken(TokenNumber)
	case isLetter(ch):
		l.acceptAll(isLetter)
		return l.newToken(TokenName)
	}

	if ch == utf8.RuneError && l.width == 1 {
		bad := l.input[l.start:l.current]
		return l.error(types.ErrUnrecognizedChar, l.start, bad,
			fmt.Sprintf("invalid UTF-8 byte %q", bad))
	}
	return l.error(types.ErrUnrecognizedChar, l.start, string(ch),
		fmt.Sprintf("unrecognized character %q", ch))
}

// Error returns the first error encountered during lexing, if any.
func (l *Lexer) Error() error {
	return l.err
}

// scanString reads a string literal. The opening quote has already been
// consumed; neither quote is part of the token value.
func (l *Lexer) scanString() Token {
	quotePos := l.start
	l.ignore()

Loop:
	for {
		switch l.nextRune() {
		case '"':
			break Loop
		case eof:
			return l.error(types.ErrStringNotClosed, quotePos, `"`+l.input[l.start:l.current],
				"unterminated string literal")
		}
	}

	l.backup()
	t := l.newToken(TokenString)
	t.Position = quotePos
	l.acceptRune('"')
	l.ignore()
	return t
}

// Helper methods

func (l *Lexer) eof() Token {
	return Token{
		Type:     TokenEOF,
		Position: l.current,
	}
}

func (l *Lexer) error(code types.ErrorCode, position int, token, message string) Token {
	l.err = types.NewError(code, message, position).WithToken(token)
	l.start = position
	return Token{
		Type:     TokenError,
		Value:    token,
		Position: position,
	}
}

func (l *Lexer) newToken(tt TokenType) Token {
	t := Token{
		Type:     tt,
		Value:    l.input[l.start:l.current],
		Position: l.start,
	}
	l.width = 0
	l.start = l.current
	return t
}

func (l *Lexer) nextRune() rune {
	if l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) backup() {
	l.current -= l.width
}

func (l *Lexer) ignore() {
	l.start = l.current
}

func (l *Lexer) acceptRune(r rune) bool {
	return l.accept(func(c rune) bool {
		return c == r
	})
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

func (l *Lexer) skipWhitespace() {
	l.acceptAll(isWhitespace)
	l.ignore()
}

// Character classification functions

func isWhitespace(r rune) bool {
	return r != eof && unicode.IsSpace(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isLetter accepts ASCII letters only; names are case-insensitive in the
// sense that both cases are valid, not that they are folded.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
