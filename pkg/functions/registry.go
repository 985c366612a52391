// Package functions provides a registry of known callees for the transformer.
//
// By default every call is emitted under its source name. A Registry lets
// callers rename callees in the generated code and check argument counts.
//
// # Example
//
//	reg := functions.NewRegistry()
//	reg.Register(functions.CalleeDef{Name: "concat", Target: "strcat", MinArgs: 2, MaxArgs: 2})
//	out, err := golispc.Compile(`(concat "a" "b")`, compiler.WithCallees(reg))
//	// out == `strcat("a", "b");`
package functions

import (
	"fmt"
	"sync"
)

// Variadic marks a CalleeDef without an upper argument bound.
const Variadic = -1

// CalleeDef describes a known function.
type CalleeDef struct {
	// Name is the function name as it appears in source, e.g. "add".
	Name string
	// Target is the identifier emitted in generated code.
	// Leave empty to keep Name.
	Target string
	// MinArgs is the minimum accepted argument count.
	MinArgs int
	// MaxArgs is the maximum accepted argument count, or Variadic.
	MaxArgs int
}

// Identifier returns the name to emit for the callee.
func (d CalleeDef) Identifier() string {
	if d.Target != "" {
		return d.Target
	}
	return d.Name
}

// CheckArity reports an error when n arguments are not accepted.
func (d CalleeDef) CheckArity(n int) error {
	if n < d.MinArgs {
		return fmt.Errorf("%s expects at least %d argument(s), got %d", d.Name, d.MinArgs, n)
	}
	if d.MaxArgs != Variadic && n > d.MaxArgs {
		return fmt.Errorf("%s expects at most %d argument(s), got %d", d.Name, d.MaxArgs, n)
	}
	return nil
}

// Registry is a set of callee definitions keyed by source name.
// Safe for concurrent use by multiple goroutines.
type Registry struct {
	mu     sync.RWMutex
	defs   map[string]CalleeDef
	strict bool
	gen    uint64 // bumped on every change
}

// NewRegistry creates an empty, non-strict registry.
func NewRegistry(defs ...CalleeDef) *Registry {
	r := &Registry{defs: make(map[string]CalleeDef, len(defs))}
	for _, d := range defs {
		r.Register(d)
	}
	return r
}

// Register adds or replaces a definition.
func (r *Registry) Register(d CalleeDef) {
	r.mu.Lock()
	r.defs[d.Name] = d
	r.gen++
	r.mu.Unlock()
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (CalleeDef, bool) {
	r.mu.RLock()
	d, ok := r.defs[name]
	r.mu.RUnlock()
	return d, ok
}

// SetStrict makes the transformer reject callees missing from the registry.
func (r *Registry) SetStrict(strict bool) {
	r.mu.Lock()
	r.strict = strict
	r.gen++
	r.mu.Unlock()
}

// Strict reports whether unknown callees are rejected.
func (r *Registry) Strict() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.strict
}

// Generation returns a counter that changes whenever the registry does.
// Outputs cached under one generation are stale under another.
func (r *Registry) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gen
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}
