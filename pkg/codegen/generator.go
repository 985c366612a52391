// Package codegen renders a target tree as C-style source text.
//
//	Program              statements joined by "\n"
//	ExpressionStatement  expression followed by ";"
//	CallExpression       callee "(" arguments joined by ", " ")"
//	Identifier           name
//	NumberLiteral        value, unchanged
//	StringLiteral        value in double quotes, unescaped
package codegen

import (
	"fmt"
	"strings"

	"github.com/sandrolain/golispc/pkg/types"
)

// Generate renders node and everything below it.
func Generate(node *types.TargetNode) (string, error) {
	var b strings.Builder
	if err := writeNode(&b, node); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeNode(b *strings.Builder, node *types.TargetNode) error {
	if node == nil {
		return types.NewError(types.ErrUnknownTargetNode, "cannot generate code for a nil node", -1)
	}

	switch node.Type {
	case types.NodeProgram:
		for i, stmt := range node.Body {
			if i > 0 {
				b.WriteByte('\n')
			}
			if err := writeNode(b, stmt); err != nil {
				return err
			}
		}

	case types.NodeExpressionStatement:
		if err := writeNode(b, node.Expression); err != nil {
			return err
		}
		b.WriteByte(';')

	case types.NodeCallExpression:
		if err := writeNode(b, node.Callee); err != nil {
			return err
		}
		b.WriteByte('(')
		for i, arg := range node.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := writeNode(b, arg); err != nil {
				return err
			}
		}
		b.WriteByte(')')

	case types.NodeIdentifier:
		b.WriteString(node.Name)

	case types.NodeNumberLiteral:
		b.WriteString(node.Value)

	case types.NodeStringLiteral:
		b.WriteByte('"')
		b.WriteString(node.Value)
		b.WriteByte('"')

	default:
		return types.NewError(types.ErrUnknownTargetNode,
			fmt.Sprintf("cannot generate code for node of type %q", node.Type), -1).
			WithToken(string(node.Type))
	}
	return nil
}
