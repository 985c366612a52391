package wasirun_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/golispc"
	"github.com/sandrolain/golispc/pkg/types"
	"github.com/sandrolain/golispc/pkg/wasirun"
)

// wasiBinaryPath returns the path to golispc.wasm (wasip1 build).
func wasiBinaryPath(t testing.TB) string {
	t.Helper()
	if p := os.Getenv("GOLISPC_WASI"); p != "" {
		return p
	}
	_, thisFile, _, ok := runtime.Caller(0)
	if ok {
		return filepath.Join(filepath.Dir(thisFile), "..", "..", "cmd", "wasm", "wasi", "golispc.wasm")
	}
	return filepath.Join("cmd", "wasm", "wasi", "golispc.wasm")
}

// loadRunner skips the test when the WASI binary has not been built.
func loadRunner(t *testing.T) *wasirun.Runner {
	t.Helper()
	path := wasiBinaryPath(t)
	bin, err := os.ReadFile(path)
	if err != nil {
		t.Skipf("golispc.wasm not found (%s), run: GOOS=wasip1 GOARCH=wasm go build -o %s ./cmd/wasm/wasi/", path, path)
	}
	ctx := context.Background()
	r, err := wasirun.New(ctx, bin)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close(ctx) })
	return r
}

func TestNewRejectsInvalidModule(t *testing.T) {
	_, err := wasirun.New(context.Background(), []byte("not a wasm module"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile module")
}

func TestWASICorrectness(t *testing.T) {
	r := loadRunner(t)
	ctx := context.Background()

	for _, src := range []string{
		"(add 2 (subtract 4 2))",
		`(concat "foo" "bar")`,
		"(add 2 2) (subtract 4 2)",
		"",
		`1 "x"`,
	} {
		want, err := golispc.Compile(src)
		require.NoError(t, err)

		got, err := r.Compile(ctx, src)
		require.NoError(t, err, "source %q", src)
		assert.Equal(t, want, got, "source %q", src)
	}
}

func TestWASIErrors(t *testing.T) {
	r := loadRunner(t)
	ctx := context.Background()

	resp, code, err := r.Run(ctx, wasirun.Request{Source: "(add 2"})
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Equal(t, string(types.ErrUnexpectedEnd), resp.Code)
	assert.Nil(t, resp.Output)

	_, err = r.Compile(ctx, "(add 2 @)")
	assert.True(t, errors.Is(err, types.ErrLex))
	var cerr *types.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 7, cerr.Position)
}
