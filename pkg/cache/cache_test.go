package cache_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sandrolain/golispc/pkg/cache"
)

func TestCacheNew(t *testing.T) {
	c := cache.New(10)
	if got := c.Len(); got != 0 {
		t.Fatalf("expected empty cache, got %d", got)
	}
	if got := c.Capacity(); got != 10 {
		t.Fatalf("expected capacity 10, got %d", got)
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := cache.New(0)
	if got := c.Capacity(); got != 256 {
		t.Fatalf("expected default capacity 256, got %d", got)
	}
}

func TestCacheSetGet(t *testing.T) {
	c := cache.New(4)
	c.Set("(add 1 2)", "add(1, 2);")
	if got := c.Len(); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}
	got, ok := c.Get("(add 1 2)")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != "add(1, 2);" {
		t.Fatalf("expected cached output, got %q", got)
	}
}

func TestCacheMiss(t *testing.T) {
	c := cache.New(4)
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected cache miss")
	}
}

func TestCacheEmptyOutputIsAHit(t *testing.T) {
	c := cache.New(4)
	c.Set("", "")
	if _, ok := c.Get(""); !ok {
		t.Fatal("expected empty program to be cached")
	}
}

func TestCacheLRUEviction(t *testing.T) {
	c := cache.New(3)
	for _, k := range []string{"a", "b", "c", "d"} {
		c.Set(k, k+";")
	}
	if got := c.Len(); got != 3 {
		t.Fatalf("expected 3 entries after eviction, got %d", got)
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal(`expected "a" to be evicted (LRU)`)
	}
	if _, ok := c.Get("d"); !ok {
		t.Fatal(`expected most-recently-inserted "d" to survive`)
	}
}

func TestCacheGetPromotes(t *testing.T) {
	c := cache.New(2)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a") // a becomes most recently used
	c.Set("c", "3")
	if _, ok := c.Get("a"); !ok {
		t.Fatal(`expected "a" to survive after being read`)
	}
	if _, ok := c.Get("b"); ok {
		t.Fatal(`expected "b" to be evicted`)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := cache.New(4)
	c.Set("k", "v")
	c.Invalidate("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss after Invalidate")
	}
	c.Invalidate("never-set")
}

func TestCacheClear(t *testing.T) {
	c := cache.New(4)
	for _, k := range []string{"a", "b", "c"} {
		c.Set(k, k)
	}
	c.Clear()
	if got := c.Len(); got != 0 {
		t.Fatalf("expected 0 after Clear, got %d", got)
	}
}

func TestCacheGetOrCompile(t *testing.T) {
	c := cache.New(4)
	callCount := 0
	compileFn := func() (string, error) {
		callCount++
		return "f(1);", nil
	}

	out1, err := c.GetOrCompile("(f 1)", compileFn)
	if err != nil || out1 != "f(1);" {
		t.Fatalf("first GetOrCompile: %q, %v", out1, err)
	}
	if callCount != 1 {
		t.Fatalf("expected 1 compile call, got %d", callCount)
	}

	out2, err := c.GetOrCompile("(f 1)", compileFn)
	if err != nil || out2 != out1 {
		t.Fatalf("second GetOrCompile: %q, %v", out2, err)
	}
	if callCount != 1 {
		t.Fatalf("expected still 1 call (cached), got %d", callCount)
	}
}

func TestCacheGetOrCompileDoesNotCacheErrors(t *testing.T) {
	c := cache.New(4)
	boom := errors.New("boom")
	calls := 0
	for i := 0; i < 2; i++ {
		_, err := c.GetOrCompile("(f", func() (string, error) {
			calls++
			return "", boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected compile error, got %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected 2 compile calls, got %d", calls)
	}
	if c.Len() != 0 {
		t.Fatalf("expected no entries, got %d", c.Len())
	}
}

func TestCacheSetUpdate(t *testing.T) {
	c := cache.New(4)
	c.Set("k", "a")
	c.Set("k", "b") // overwrite
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit after overwrite")
	}
	if got != "b" {
		t.Fatalf("expected updated output, got %q", got)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after overwrite, got %d", c.Len())
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := cache.New(16)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				k := fmt.Sprintf("k%d", (g*100+i)%32)
				c.Set(k, k)
				if v, ok := c.Get(k); ok && v != k {
					t.Errorf("key %q holds %q", k, v)
				}
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > c.Capacity() {
		t.Fatalf("cache grew past capacity: %d", c.Len())
	}
}

func TestCacheConcurrentOverwrite(t *testing.T) {
	c := cache.New(4)
	c.Set("k", "a")

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c.Set("k", "b")
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if v, ok := c.Get("k"); !ok || (v != "a" && v != "b") {
					t.Errorf("Get(k) = %q, %v", v, ok)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got, _ := c.Get("k"); got != "b" {
		t.Fatalf("expected last written output, got %q", got)
	}
}
