//go:build wasip1

// Command golispc-wasm-wasi is the WASI (wasip1) entrypoint for use from any
// language that supports the WebAssembly System Interface.
//
// Protocol: single JSON object on stdin, single JSON object on stdout.
//
//	stdin:  { "source": "<program>" }
//	stdout: { "output": "<C-style code>" }                  on success
//	        { "error": "<text>", "code": "P0202",
//	          "message": "<message>", "position": 6 }       on failure (exit code 1)
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o golispc.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo '{"source":"(add 2 (subtract 4 2))"}' | wasmtime golispc.wasm
package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/sandrolain/golispc"
	"github.com/sandrolain/golispc/pkg/types"
)

type request struct {
	Source string `json:"source"`
}

type response struct {
	Output   *string `json:"output,omitempty"`
	Error    string  `json:"error,omitempty"`
	Code     string  `json:"code,omitempty"`
	Message  string  `json:"message,omitempty"`
	Position *int    `json:"position,omitempty"`
}

func writeResponse(r response, exitCode int) {
	_ = json.NewEncoder(os.Stdout).Encode(r)
	os.Exit(exitCode)
}

func failure(err error) response {
	resp := response{Error: err.Error()}
	var cerr *types.Error
	if errors.As(err, &cerr) {
		pos := cerr.Position
		resp.Code = string(cerr.Code)
		resp.Message = cerr.Message
		resp.Position = &pos
	}
	return resp
}

func main() {
	var req request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(response{Error: "invalid request JSON: " + err.Error()}, 1)
	}

	out, err := golispc.CompileContext(context.Background(), req.Source,
		golispc.WithConcurrency(false),
	)
	if err != nil {
		writeResponse(failure(err), 1)
	}

	writeResponse(response{Output: &out}, 0)
}
