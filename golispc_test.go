package golispc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/golispc"
	"github.com/sandrolain/golispc/pkg/cache"
	"github.com/sandrolain/golispc/pkg/types"
)

func TestCompile(t *testing.T) {
	out, err := golispc.Compile("(add 2 (subtract 4 2))")
	require.NoError(t, err)
	assert.Equal(t, "add(2, subtract(4, 2));", out)
}

func TestCompileWithOptions(t *testing.T) {
	_, err := golispc.Compile("(a (b (c 1)))", golispc.WithMaxDepth(2))
	assert.True(t, errors.Is(err, types.ErrParse))
}

func TestCompileWithSharedCache(t *testing.T) {
	shared := cache.New(8)
	for i := 0; i < 2; i++ {
		out, err := golispc.Compile("(f 1)", golispc.WithCache(shared))
		require.NoError(t, err)
		assert.Equal(t, "f(1);", out)
	}
	assert.Equal(t, 1, shared.Len())

	got, ok := shared.Get("(f 1)")
	require.True(t, ok)
	assert.Equal(t, "f(1);", got)
}

func TestCompileContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := golispc.CompileContext(ctx, "(f)")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMustCompile(t *testing.T) {
	assert.Equal(t, `concat("foo", "bar");`, golispc.MustCompile(`(concat "foo" "bar")`))
	assert.Panics(t, func() { golispc.MustCompile("(add 2") })
}

func TestParse(t *testing.T) {
	unit, err := golispc.Parse("(f 1) 2")
	require.NoError(t, err)
	assert.Len(t, unit.AST().Body, 2)
	assert.Equal(t, "(f 1) 2", unit.Source())
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, golispc.Version())
}
