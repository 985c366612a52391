package parser

import (
	"fmt"

	"github.com/sandrolain/golispc/pkg/types"
)

// Parser implements a recursive descent parser over a token slice.
// A Parser is single-use; it owns the arena of the tree it builds.
type Parser struct {
	tokens []Token
	pos    int // index of the current token
	depth  int // current call nesting
	arena  *types.Arena[types.ASTNode]
	source string
	opts   ParseOptions
}

// NewParser creates a new parser for the given tokens.
func NewParser(tokens []Token, opts ...ParseOption) *Parser {
	options := ParseOptions{
		MaxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Parser{
		tokens: tokens,
		arena:  types.NewArena[types.ASTNode](),
		opts:   options,
	}
}

// Parse consumes every token and returns the Program.
func (p *Parser) Parse() (*types.Unit, error) {
	root := types.NewNode(p.arena, types.NodeProgram, 0)

	for !p.atEnd() {
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		root.Body = append(root.Body, node)
	}

	return types.NewUnit(root, p.source, p.arena), nil
}

// parseExpression parses a literal or a call at the current token.
func (p *Parser) parseExpression() (*types.ASTNode, error) {
	if p.atEnd() {
		return nil, p.errorAtEnd(types.ErrUnexpectedEnd, "unexpected end of input: expected an expression")
	}

	tok := p.current()
	switch {
	case tok.Type == TokenNumber:
		p.advance()
		n := types.NewNode(p.arena, types.NodeNumberLiteral, tok.Position)
		n.Value = tok.Value
		return n, nil

	case tok.Type == TokenString:
		p.advance()
		n := types.NewNode(p.arena, types.NodeStringLiteral, tok.Position)
		n.Value = tok.Value
		return n, nil

	case tok.IsOpen():
		return p.parseCall()

	case tok.IsClose():
		return nil, p.error(types.ErrUnexpectedToken, tok, "unmatched closing parenthesis")

	default:
		return nil, p.error(types.ErrUnexpectedToken, tok,
			fmt.Sprintf("unexpected token %s %q, expected a number, a string or '('", tok.Type, tok.Value))
	}
}

// parseCall parses '(' NAME Expression* ')'. The current token is '('.
func (p *Parser) parseCall() (*types.ASTNode, error) {
	open := p.current()

	if p.opts.MaxDepth > 0 && p.depth >= p.opts.MaxDepth {
		return nil, p.error(types.ErrMaxDepth, open,
			fmt.Sprintf("maximum nesting depth %d exceeded", p.opts.MaxDepth))
	}
	p.depth++
	defer func() { p.depth-- }()

	p.advance()

	if p.atEnd() {
		return nil, p.errorAtEnd(types.ErrUnexpectedEnd, "unexpected end of input: expected function name after '('")
	}
	name := p.current()
	if name.Type != TokenName {
		return nil, p.error(types.ErrMissingName, name,
			fmt.Sprintf("expected function name after '(' but got %s %q", name.Type, name.Value))
	}
	p.advance()

	node := types.NewNode(p.arena, types.NodeCallExpression, open.Position)
	node.Name = name.Value

	for {
		if p.atEnd() {
			return nil, p.errorAtEnd(types.ErrUnexpectedEnd,
				fmt.Sprintf("unexpected end of input: missing ')' for call to %q opened at position %d", node.Name, open.Position))
		}
		if p.current().IsClose() {
			p.advance()
			return node, nil
		}

		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Params = append(node.Params, arg)
	}
}

// Helper methods

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) current() Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	p.pos++
}

func (p *Parser) error(code types.ErrorCode, tok Token, message string) error {
	return types.NewError(code, message, tok.Position).WithToken(tok.Value)
}

// errorAtEnd reports an error positioned just past the last token.
func (p *Parser) errorAtEnd(code types.ErrorCode, message string) error {
	return types.NewError(code, message, p.endPosition())
}

func (p *Parser) endPosition() int {
	if len(p.tokens) == 0 {
		return 0
	}
	last := p.tokens[len(p.tokens)-1]
	end := last.Position + len(last.Value)
	if last.Type == TokenString {
		end += 2
	}
	return end
}
