package codegen_test

import (
	"errors"
	"testing"

	"github.com/sandrolain/golispc/pkg/codegen"
	"github.com/sandrolain/golispc/pkg/types"
)

func ident(name string) *types.TargetNode {
	return &types.TargetNode{Type: types.NodeIdentifier, Name: name}
}

func num(v string) *types.TargetNode {
	return &types.TargetNode{Type: types.NodeNumberLiteral, Value: v}
}

func str(v string) *types.TargetNode {
	return &types.TargetNode{Type: types.NodeStringLiteral, Value: v}
}

func call(name string, args ...*types.TargetNode) *types.TargetNode {
	return &types.TargetNode{Type: types.NodeCallExpression, Callee: ident(name), Arguments: args}
}

func stmt(expr *types.TargetNode) *types.TargetNode {
	return &types.TargetNode{Type: types.NodeExpressionStatement, Expression: expr}
}

func program(body ...*types.TargetNode) *types.TargetNode {
	return &types.TargetNode{Type: types.NodeProgram, Body: body}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		node *types.TargetNode
		want string
	}{
		{"empty program", program(), ""},
		{"identifier", ident("add"), "add"},
		{"number is verbatim", num("007"), "007"},
		{"string is quoted", str("foo bar"), `"foo bar"`},
		{"embedded quote is not escaped", str(`a"b`), `"a"b"`},
		{"call without arguments", call("now"), "now()"},
		{"statement", stmt(call("f", num("1"))), "f(1);"},
		{
			"nested call",
			program(stmt(call("add", num("2"), call("subtract", num("4"), num("2"))))),
			"add(2, subtract(4, 2));",
		},
		{
			"strings",
			program(stmt(call("concat", str("foo"), str("bar")))),
			`concat("foo", "bar");`,
		},
		{
			"statements on separate lines",
			program(stmt(call("add", num("2"), num("2"))), stmt(call("subtract", num("4"), num("2")))),
			"add(2, 2);\nsubtract(4, 2);",
		},
		{
			"literal-only program",
			program(num("42"), str("foo")),
			"42\n\"foo\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codegen.Generate(tt.node)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateUnknownNode(t *testing.T) {
	tests := []struct {
		name string
		node *types.TargetNode
	}{
		{"unknown type", &types.TargetNode{Type: "Bogus"}},
		{"nested unknown type", program(stmt(call("f", &types.TargetNode{Type: "Bogus"})))},
		{"nil root", nil},
		{"statement without expression", program(&types.TargetNode{Type: types.NodeExpressionStatement})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := codegen.Generate(tt.node)
			if err == nil {
				t.Fatalf("expected error, got %q", out)
			}
			if out != "" {
				t.Errorf("expected no partial output, got %q", out)
			}
			if !errors.Is(err, types.ErrCodegen) {
				t.Errorf("expected codegen error, got %v", err)
			}
		})
	}
}
