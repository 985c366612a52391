package parser_test

import (
	"errors"
	"testing"

	"github.com/sandrolain/golispc/pkg/parser"
	"github.com/sandrolain/golispc/pkg/types"
)

func FuzzParseString(f *testing.F) {
	seeds := []string{
		`(add 2 (subtract 4 2))`,
		`(concat "foo" "bar")`,
		`(add 2 2) (subtract 4 2)`,
		`42 "x"`,
		``,
		`(`,
		`)`,
		`(add 2`,
		`(add 2 @)`,
		`(f "abc`,
		`((f))`,
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		unit, err := parser.ParseString(input)
		if err != nil {
			var perr *types.Error
			if !errors.As(err, &perr) {
				t.Fatalf("error is not a *types.Error: %v", err)
			}
			if !errors.Is(err, types.ErrLex) && !errors.Is(err, types.ErrParse) {
				t.Fatalf("unexpected error kind %q: %v", perr.Code, err)
			}
			return
		}
		if unit.AST() == nil || unit.AST().Type != types.NodeProgram {
			t.Fatalf("parse of %q did not yield a Program", input)
		}
	})
}
