package parser

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType uint8

const (
	// Special tokens, never part of a Tokenize result
	TokenEOF TokenType = iota
	TokenError

	// Grouping
	TokenParen // ( or )

	// Literals
	TokenNumber // 123
	TokenString // "hello", quotes stripped
	TokenName   // add
)

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "(eof)"
	case TokenError:
		return "(error)"
	case TokenParen:
		return "(paren)"
	case TokenNumber:
		return "(number)"
	case TokenString:
		return "(string)"
	case TokenName:
		return "(name)"
	default:
		return "(unknown)"
	}
}

// Token represents a lexical token.
type Token struct {
	Type     TokenType // Type of the token
	Value    string    // Literal text of the token
	Position int       // Starting byte offset in the input string
}

// String returns a compact representation such as `(name) "add" @1`.
func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d", t.Type, t.Value, t.Position)
}

// IsOpen reports whether the token is an opening parenthesis.
func (t Token) IsOpen() bool {
	return t.Type == TokenParen && t.Value == "("
}

// IsClose reports whether the token is a closing parenthesis.
func (t Token) IsClose() bool {
	return t.Type == TokenParen && t.Value == ")"
}
