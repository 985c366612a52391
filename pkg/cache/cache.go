// Package cache provides a thread-safe LRU cache for compiled output.
//
// The cache is used by the compiler when the WithCaching option is enabled.
// Compilation is a pure function of the source text, so the generated code
// can be reused whenever the same source is compiled again.
//
// # Example
//
//	c := cache.New(1024)
//	out, err := c.GetOrCompile("(add 1 2)", compile)
package cache

import (
	"container/list"
	"sync"
)

// entry is a cache entry stored in the doubly-linked list.
type entry struct {
	key    string
	output string
}

// Cache is a thread-safe LRU (Least Recently Used) cache of generated code
// keyed by source text.
// Once the capacity is reached, the least recently accessed entry is evicted.
//
// Safe for concurrent use by multiple goroutines.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

// New creates a new LRU cache with the given capacity.
// capacity must be > 0; if <= 0, a default of 256 is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 256
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get retrieves compiled output from the cache.
// Returns (output, true) if found and moves the entry to front (MRU).
// Returns ("", false) if not present.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	el, ok := c.items[key]
	if !ok {
		c.mu.RUnlock()
		return "", false
	}
	out := el.Value.(*entry).output
	// Already at the front: skip the write lock entirely.
	alreadyFront := c.ll.Front() == el
	c.mu.RUnlock()

	if !alreadyFront {
		// Promote to front under write lock; re-check in case of concurrent eviction.
		c.mu.Lock()
		el, ok = c.items[key]
		if ok {
			c.ll.MoveToFront(el)
			out = el.Value.(*entry).output
		}
		c.mu.Unlock()

		if !ok {
			return "", false
		}
	}
	return out, true
}

// Set inserts or replaces an output in the cache.
// If at capacity, the least recently used entry is evicted first.
func (c *Cache) Set(key, output string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value = &entry{key: key, output: output}
		c.ll.MoveToFront(el)
		return
	}

	if c.ll.Len() >= c.capacity {
		c.evictLocked()
	}

	el := c.ll.PushFront(&entry{key: key, output: output})
	c.items[key] = el
}

// GetOrCompile retrieves the output for key from cache, or calls compile()
// to create it, caches the result, and returns it.
// Errors are never cached, so a failing key is recompiled on every call.
func (c *Cache) GetOrCompile(key string, compile func() (string, error)) (string, error) {
	if out, ok := c.Get(key); ok {
		return out, nil
	}
	out, err := compile()
	if err != nil {
		return "", err
	}
	c.Set(key, out)
	return out, nil
}

// Len returns the number of entries currently in the cache.
func (c *Cache) Len() int {
	c.mu.RLock()
	n := len(c.items)
	c.mu.RUnlock()
	return n
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Invalidate removes a single entry from the cache.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.Remove(el)
		delete(c.items, key)
	}
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}

// evictLocked removes the least recently used entry.
// Must be called with c.mu held for writing.
func (c *Cache) evictLocked() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}
