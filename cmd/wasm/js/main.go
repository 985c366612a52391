//go:build js && wasm

// Command golispc-wasm-js is the WebAssembly entrypoint for browser and Node.js.
//
// It exposes a global `golispc` object with the following API:
//
//	golispc.version()          -> string
//	golispc.compile(source)    -> string  (throws on error)
//	golispc.compiler()         -> { compile(source) -> string }  (cached, throws on error)
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o golispc.wasm ./cmd/wasm/js/
//
// Usage in a browser:
//
//	<script src="wasm_exec.js"></script>
//	<script>
//	  const go = new Go()
//	  WebAssembly.instantiateStreaming(fetch('golispc.wasm'), go.importObject)
//	    .then(r => { go.run(r.instance); console.log(golispc.compile('(add 1 2)')) })
//	</script>
package main

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/sandrolain/golispc"
	"github.com/sandrolain/golispc/pkg/compiler"
)

// jsThrow panics with a JS Error so the caller receives a thrown exception.
func jsThrow(msg string) {
	js.Global().Get("Error").New(msg)
	panic(msg)
}

func sourceArg(fn string, args []js.Value) string {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		jsThrow(fmt.Sprintf("%s requires 1 argument: source (string)", fn))
	}
	return args[0].String()
}

// jsCompile implements golispc.compile(source).
func jsCompile(_ js.Value, args []js.Value) interface{} {
	src := sourceArg("golispc.compile", args)
	out, err := golispc.Compile(src, golispc.WithConcurrency(false))
	if err != nil {
		jsThrow(fmt.Sprintf("golispc.compile: %v", err))
	}
	return out
}

// jsCompiler implements golispc.compiler(), a reusable compiler with caching.
func jsCompiler(_ js.Value, _ []js.Value) interface{} {
	c := compiler.New(compiler.WithCaching(true), compiler.WithConcurrency(false))

	compileFn := js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		src := sourceArg("compiler.compile", args)
		out, err := c.Compile(context.Background(), src)
		if err != nil {
			jsThrow(fmt.Sprintf("compiler.compile: %v", err))
		}
		return out
	})

	return js.ValueOf(map[string]interface{}{"compile": compileFn})
}

func main() {
	api := map[string]interface{}{
		"compile":  js.FuncOf(jsCompile),
		"compiler": js.FuncOf(jsCompiler),
		"version": js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
			return golispc.Version()
		}),
	}
	js.Global().Set("golispc", js.ValueOf(api))

	// Block forever, the JS event loop owns execution from here.
	select {}
}
