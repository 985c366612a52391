// Package wasirun runs the WASI build of golispc (cmd/wasm/wasi) inside an
// embedded wazero runtime, so the same JSON protocol can be driven from Go
// without an external WebAssembly engine.
//
// # Example
//
//	bin, _ := os.ReadFile("golispc.wasm")
//	r, err := wasirun.New(ctx, bin)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close(ctx)
//	out, err := r.Compile(ctx, "(add 1 2)")
package wasirun

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"

	"github.com/sandrolain/golispc/pkg/types"
)

// Request is the stdin payload understood by the WASI module.
type Request struct {
	Source string `json:"source"`
}

// Response is the stdout payload written by the WASI module.
type Response struct {
	Output   *string `json:"output,omitempty"`
	Error    string  `json:"error,omitempty"`
	Code     string  `json:"code,omitempty"`
	Message  string  `json:"message,omitempty"`
	Position *int    `json:"position,omitempty"`
}

// Runner holds a compiled WASI module. Each Compile call instantiates a fresh
// module instance.
type Runner struct {
	runtime  wazero.Runtime
	compiled wazero.CompiledModule
}

// New compiles wasm and prepares a runtime with WASI preview1 imports.
func New(ctx context.Context, wasm []byte) (*Runner, error) {
	rt := wazero.NewRuntime(ctx)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("instantiate wasi: %w", err)
	}

	compiled, err := rt.CompileModule(ctx, wasm)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("compile module: %w", err)
	}

	return &Runner{runtime: rt, compiled: compiled}, nil
}

// Close releases the runtime and every module compiled into it.
func (r *Runner) Close(ctx context.Context) error {
	return r.runtime.Close(ctx)
}

// Run sends req to a new module instance and decodes its response. The exit
// code of the instance is returned alongside.
func (r *Runner) Run(ctx context.Context, req Request) (Response, int, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Response{}, 0, err
	}

	var stdout, stderr bytes.Buffer
	cfg := wazero.NewModuleConfig().
		WithName("").
		WithArgs("golispc").
		WithStdin(bytes.NewReader(payload)).
		WithStdout(&stdout).
		WithStderr(&stderr)

	exitCode := 0
	mod, err := r.runtime.InstantiateModule(ctx, r.compiled, cfg)
	if mod != nil {
		defer mod.Close(ctx)
	}
	if err != nil {
		var exitErr *sys.ExitError
		if !errors.As(err, &exitErr) {
			return Response{}, 0, fmt.Errorf("run module: %w", err)
		}
		exitCode = int(exitErr.ExitCode())
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return Response{}, exitCode, fmt.Errorf("decode response: %w (stderr: %s)", err, stderr.String())
	}
	return resp, exitCode, nil
}

// Compile compiles source inside the module. Compilation failures come back
// as *types.Error with the code reported by the module.
func (r *Runner) Compile(ctx context.Context, source string) (string, error) {
	resp, _, err := r.Run(ctx, Request{Source: source})
	if err != nil {
		return "", err
	}
	if resp.Error != "" {
		if resp.Code == "" {
			return "", errors.New(resp.Error)
		}
		pos := -1
		if resp.Position != nil {
			pos = *resp.Position
		}
		return "", types.NewError(types.ErrorCode(resp.Code), resp.Message, pos)
	}
	if resp.Output == nil {
		return "", errors.New("module returned neither output nor error")
	}
	return *resp.Output, nil
}
