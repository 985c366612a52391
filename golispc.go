// Package golispc compiles a tiny Lisp-style call language into C-style call
// statements.
//
//	(add 2 (subtract 4 2))   =>   add(2, subtract(4, 2));
//
// A program is a sequence of expressions: number literals, string literals
// and parenthesised calls. Every top-level call becomes one statement on its
// own line.
//
// # Quick Start
//
//	out, err := golispc.Compile(`(concat "foo" "bar")`)
//	// out == `concat("foo", "bar");`
//
//	// With options
//	out, err := golispc.Compile(src,
//	    golispc.WithMaxDepth(64),
//	)
//
// # More Information
//
//   - Parser: github.com/sandrolain/golispc/pkg/parser
//   - Traverser: github.com/sandrolain/golispc/pkg/traverser
//   - Transformer: github.com/sandrolain/golispc/pkg/transformer
//   - Code generator: github.com/sandrolain/golispc/pkg/codegen
//   - Compiler: github.com/sandrolain/golispc/pkg/compiler
//   - Types: github.com/sandrolain/golispc/pkg/types
package golispc

import (
	"context"
	"fmt"

	"github.com/sandrolain/golispc/pkg/compiler"
	"github.com/sandrolain/golispc/pkg/parser"
	"github.com/sandrolain/golispc/pkg/types"
)

// Version returns the current version of golispc.
func Version() string {
	return "v0.1.0-dev"
}

// Option aliases compiler.Option so callers need a single import.
type Option = compiler.Option

// Re-exported compiler options. Compile builds a fresh compiler per call,
// so WithCaching is not offered here: pass a long-lived cache with WithCache,
// or reuse a compiler.Compiler.
var (
	WithCache       = compiler.WithCache
	WithConcurrency = compiler.WithConcurrency
	WithMaxParallel = compiler.WithMaxParallel
	WithMaxDepth    = compiler.WithMaxDepth
	WithTimeout     = compiler.WithTimeout
	WithDebug       = compiler.WithDebug
	WithLogger      = compiler.WithLogger
	WithCallees     = compiler.WithCallees
)

// Compile translates source into C-style call statements.
//
// Each call configures a new compiler.Compiler; nothing is retained between
// calls except a cache passed through WithCache. For repeated compilations,
// create a compiler.Compiler once and reuse it.
func Compile(source string, opts ...Option) (string, error) {
	return CompileContext(context.Background(), source, opts...)
}

// CompileContext is like Compile with a caller-supplied context.
func CompileContext(ctx context.Context, source string, opts ...Option) (string, error) {
	return compiler.New(opts...).Compile(ctx, source)
}

// MustCompile is like Compile but panics if source cannot be compiled.
func MustCompile(source string, opts ...Option) string {
	out, err := Compile(source, opts...)
	if err != nil {
		panic(fmt.Sprintf("golispc: Compile(%q): %v", source, err))
	}
	return out
}

// Parse returns the source tree of a program without transforming it.
func Parse(source string) (*types.Unit, error) {
	return parser.ParseString(source)
}
