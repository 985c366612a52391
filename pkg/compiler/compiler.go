// Package compiler composes the front end and back end into a single
// source-to-source pipeline:
//
//	tokenize -> parse -> transform -> generate
//
// Each stage is a pure function of its input, so one Compiler may be shared
// across goroutines.
//
// # Example
//
//	c := compiler.New(compiler.WithCaching(true))
//	out, err := c.Compile(ctx, "(add 2 (subtract 4 2))")
//	// out == "add(2, subtract(4, 2));"
//
// # Concurrency
//
// CompileMany compiles independent programs in parallel and returns their
// outputs in input order.
//
//	outs, err := c.CompileMany(ctx, []string{"(a 1)", "(b 2)"})
package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sandrolain/golispc/pkg/cache"
	"github.com/sandrolain/golispc/pkg/codegen"
	"github.com/sandrolain/golispc/pkg/functions"
	"github.com/sandrolain/golispc/pkg/parser"
	"github.com/sandrolain/golispc/pkg/transformer"
)

// Compiler turns Lisp-style source programs into C-style call statements.
type Compiler struct {
	opts   Options
	logger *slog.Logger
	cache  *cache.Cache // non-nil when Caching is enabled
}

// Options configures compiler behavior.
type Options struct {
	// Caching enables output caching keyed by source text.
	// The default cache holds up to 256 entries with LRU eviction.
	Caching bool
	// CacheSize sets the maximum number of cached outputs.
	// Only used when Caching is true and no explicit Cache is provided.
	CacheSize int
	// Cache is a custom output cache. If non-nil, Caching is implicitly enabled.
	// A cache must only be shared between identically configured compilers.
	// With Callees set, entries are keyed by registry generation as well as
	// source, so registry changes take effect on the next Compile.
	Cache *cache.Cache
	// Concurrency lets CompileMany compile programs in parallel.
	Concurrency bool
	// MaxParallel caps the number of programs CompileMany compiles at once.
	// Zero means GOMAXPROCS.
	MaxParallel int
	// MaxDepth limits call nesting in the parser.
	MaxDepth int
	// Timeout bounds a single Compile call. Zero disables it.
	Timeout time.Duration
	// Debug enables per-stage debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
	// Callees renames known callees and checks their arity.
	Callees *functions.Registry
}

// defaultConcurrency is false on WebAssembly targets, see compiler_wasm.go.
var defaultConcurrency = true

// New creates a Compiler with default options.
func New(opts ...Option) *Compiler {
	options := Options{
		Concurrency: defaultConcurrency,
		MaxDepth:    parser.DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	var c *cache.Cache
	if options.Cache != nil {
		c = options.Cache
	} else if options.Caching {
		c = cache.New(options.CacheSize)
	}

	return &Compiler{
		opts:   options,
		logger: options.Logger,
		cache:  c,
	}
}

// Options returns a copy of the compiler configuration.
func (c *Compiler) Options() Options {
	return c.opts
}

// Cache returns the output cache, or nil when caching is disabled.
func (c *Compiler) Cache() *cache.Cache {
	return c.cache
}

// Compile translates one source program. The empty program compiles to the
// empty string.
func (c *Compiler) Compile(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	if c.cache == nil {
		return c.compile(ctx, source)
	}

	hit := true
	out, err := c.cache.GetOrCompile(c.cacheKey(source), func() (string, error) {
		hit = false
		return c.compile(ctx, source)
	})
	if hit && err == nil && c.opts.Debug {
		c.logger.Debug("cache hit", "bytes", len(source))
	}
	return out, err
}

// cacheKey scopes source to the current callee registry generation, so
// changing the registry never serves output compiled under the old one.
// A NUL byte never appears in a source that compiles.
func (c *Compiler) cacheKey(source string) string {
	if c.opts.Callees == nil {
		return source
	}
	return strconv.FormatUint(c.opts.Callees.Generation(), 10) + "\x00" + source
}

// SourceError reports which source of a CompileMany batch failed.
type SourceError struct {
	Index int
	Err   error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %d: %v", e.Index, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// CompileMany compiles every source and returns the outputs in input order.
// The first error cancels the remaining work and is returned as a
// *SourceError.
func (c *Compiler) CompileMany(ctx context.Context, sources []string) ([]string, error) {
	outs := make([]string, len(sources))

	if !c.opts.Concurrency || len(sources) < 2 {
		for i, src := range sources {
			out, err := c.Compile(ctx, src)
			if err != nil {
				return nil, &SourceError{Index: i, Err: err}
			}
			outs[i] = out
		}
		return outs, nil
	}

	limit := c.opts.MaxParallel
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	sem := make(chan struct{}, limit)

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			out, err := c.Compile(gctx, src)
			if err != nil {
				return &SourceError{Index: i, Err: err}
			}
			outs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outs, nil
}

func (c *Compiler) compile(ctx context.Context, source string) (string, error) {
	start := time.Now()

	tokens, err := parser.Tokenize(source)
	if err != nil {
		return "", err
	}
	if c.opts.Debug {
		c.logger.Debug("tokenized", "tokens", len(tokens), "elapsed", time.Since(start))
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	unit, err := parser.Parse(tokens, parser.WithMaxDepth(c.opts.MaxDepth))
	if err != nil {
		return "", err
	}
	if c.opts.Debug {
		c.logger.Debug("parsed", "nodes", unit.NodeCount(), "elapsed", time.Since(start))
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	var topts []transformer.Option
	if c.opts.Callees != nil {
		topts = append(topts, transformer.WithCallees(c.opts.Callees))
	}
	target, err := transformer.TransformUnit(unit, topts...)
	if err != nil {
		return "", err
	}
	if c.opts.Debug {
		c.logger.Debug("transformed", "statements", len(target.Body), "elapsed", time.Since(start))
	}

	out, err := codegen.Generate(target)
	if err != nil {
		return "", err
	}
	if c.opts.Debug {
		c.logger.Debug("generated", "bytes", len(out), "elapsed", time.Since(start))
	}
	return out, nil
}

// Option configures compiler behavior.
type Option func(*Options)

// WithCaching enables or disables output caching.
// When enabled, a default LRU cache of 256 entries is created.
func WithCaching(enabled bool) Option {
	return func(opts *Options) {
		opts.Caching = enabled
	}
}

// WithCacheSize sets the maximum number of cached outputs.
// Only effective when combined with WithCaching(true).
func WithCacheSize(size int) Option {
	return func(opts *Options) {
		opts.CacheSize = size
	}
}

// WithCache attaches an external output cache.
func WithCache(c *cache.Cache) Option {
	return func(opts *Options) {
		opts.Cache = c
	}
}

// WithConcurrency enables or disables parallel CompileMany.
func WithConcurrency(enabled bool) Option {
	return func(opts *Options) {
		opts.Concurrency = enabled
	}
}

// WithMaxParallel caps the parallelism of CompileMany.
func WithMaxParallel(n int) Option {
	return func(opts *Options) {
		opts.MaxParallel = n
	}
}

// WithMaxDepth sets the maximum call nesting depth.
func WithMaxDepth(depth int) Option {
	return func(opts *Options) {
		opts.MaxDepth = depth
	}
}

// WithTimeout sets the per-program compile timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) Option {
	return func(opts *Options) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithCallees sets the callee registry used by the transformer.
func WithCallees(reg *functions.Registry) Option {
	return func(opts *Options) {
		opts.Callees = reg
	}
}
