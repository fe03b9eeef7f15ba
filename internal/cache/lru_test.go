// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestLRU_BasicOperations(t *testing.T) {
	c := NewLRU[string, int](3, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		if got, found := c.Get(key); !found || got != want {
			t.Errorf("Get(%q) = %d, %v; want %d", key, got, found, want)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Expected len 3, got %d", c.Len())
	}

	c.Add("a", 10)
	if got, _ := c.Get("a"); got != 10 {
		t.Errorf("Add must replace the value, got %d", got)
	}
}

func TestLRU_Eviction(t *testing.T) {
	var evicted []string
	c := NewLRU[string, int](3, time.Minute, WithEvictCallback(func(k string, _ int) {
		evicted = append(evicted, k)
	}))

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	// Access 'a' to make it most recently used
	c.Get("a")

	// 'b' is now the least recently used
	c.Add("d", 4)

	if _, found := c.Get("b"); found {
		t.Error("Expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := c.Get(key); !found {
			t.Errorf("Expected %q to be present", key)
		}
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Errorf("evict callback got %v, want [b]", evicted)
	}
}

func TestLRU_TTLRefreshedOnAccess(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := NewLRU[string, int](10, time.Minute, WithClock[string, int](clock.Now))

	c.Add("a", 1)
	c.Add("b", 2)

	clock.Advance(40 * time.Second)
	c.Get("a")
	clock.Advance(40 * time.Second)

	if _, found := c.Get("a"); !found {
		t.Error("accessed entry must have its TTL extended")
	}
	if _, found := c.Get("b"); found {
		t.Error("untouched entry must expire")
	}
}

func TestLRU_CleanupExpired(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	removed := 0
	c := NewLRU[int, string](10, time.Minute,
		WithClock[int, string](clock.Now),
		WithEvictCallback(func(int, string) { removed++ }),
	)

	for i := 0; i < 5; i++ {
		c.Add(i, strconv.Itoa(i))
	}
	clock.Advance(2 * time.Minute)
	c.Add(99, "fresh")

	if n := c.CleanupExpired(); n != 5 {
		t.Errorf("CleanupExpired = %d, want 5", n)
	}
	if removed != 5 {
		t.Errorf("callback ran %d times, want 5", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 live entry, got %d", c.Len())
	}
}

func TestLRU_GetOrAdd(t *testing.T) {
	c := NewLRU[string, *int](2, time.Minute)

	calls := 0
	create := func() *int {
		calls++
		v := calls
		return &v
	}

	first, created := c.GetOrAdd("s1", create)
	if !created || *first != 1 {
		t.Fatalf("first GetOrAdd = %d, %v", *first, created)
	}
	second, created := c.GetOrAdd("s1", create)
	if created || second != first {
		t.Error("second GetOrAdd must return the cached value")
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestLRU_RangeAndRemove(t *testing.T) {
	c := NewLRU[string, int](5, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	var order []string
	c.Range(func(k string, _ int) bool {
		order = append(order, k)
		return true
	})
	if len(order) != 3 || order[0] != "c" || order[2] != "a" {
		t.Errorf("Range order = %v, want most recent first", order)
	}

	if !c.Remove("b") || c.Remove("b") {
		t.Error("Remove must report presence once")
	}
	hits, misses, size := c.Stats()
	if size != 2 || hits != 0 || misses != 0 {
		t.Errorf("Stats = %d/%d/%d", hits, misses, size)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int, int](100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.Add(g*1000+i, i)
				c.Get(g*1000 + i/2)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("capacity exceeded: %d", c.Len())
	}
}
