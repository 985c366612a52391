package parser

// Package parser implements the front end of golispc: a lexer for the Lisp
// call language and a recursive descent parser producing the source AST.
//
// # Architecture
//
// The parser consists of two components:
//   - Lexer: Tokenizes the input into a flat sequence of tokens
//   - Parser: Builds a Program tree from the tokens
//
// There is no error recovery: the first invalid character or token aborts
// with a *types.Error carrying its position.
//
// # Grammar
//
//	Program    := Expression*
//	Expression := NUMBER | STRING | "(" NAME Expression* ")"
//
// # Example
//
//	unit, err := parser.ParseString("(add 2 (subtract 4 2))")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ast := unit.AST()

import (
	"github.com/sandrolain/golispc/pkg/types"
)

// Parse builds a source tree from a token sequence produced by Tokenize.
//
// Example:
//
//	tokens, _ := parser.Tokenize(`(concat "foo" "bar")`)
//	unit, err := parser.Parse(tokens)
func Parse(tokens []Token, opts ...ParseOption) (*types.Unit, error) {
	p := NewParser(tokens, opts...)
	return p.Parse()
}

// ParseString tokenizes and parses input in one call. The returned unit
// keeps input as its source text.
func ParseString(input string, opts ...ParseOption) (*types.Unit, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	p := NewParser(tokens, opts...)
	p.source = input
	return p.Parse()
}

// ParseOption configures parser behavior.
type ParseOption func(*ParseOptions)

// ParseOptions holds parser configuration.
type ParseOptions struct {
	// MaxDepth limits call nesting to prevent stack exhaustion.
	// Zero or a negative value disables the limit.
	MaxDepth int
}

// DefaultMaxDepth is the nesting limit used when no option overrides it.
const DefaultMaxDepth = 10000

// WithMaxDepth sets the maximum call nesting depth.
func WithMaxDepth(depth int) ParseOption {
	return func(opts *ParseOptions) {
		opts.MaxDepth = depth
	}
}
