// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

// Package cache provides the bounded in-memory cache used to keep one
// indicators engine per browser session.
package cache

import (
	"sync"
	"time"
)

// entry is a node of the LRU list.
type entry[K comparable, V any] struct {
	key       K
	value     V
	prev      *entry[K, V]
	next      *entry[K, V]
	expiresAt time.Time
}

// LRU is a thread-safe Least Recently Used cache with TTL support.
//
// Key features:
//   - O(1) Get, Add, Remove operations
//   - O(1) LRU eviction when capacity is reached
//   - TTL refreshed on access, lazy expiration
//   - optional eviction callback
//
// A hashmap gives lookups and a doubly-linked list keeps the order:
// head.next is the most recently used, tail.prev the least.
type LRU[K comparable, V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time
	onEvict  func(K, V)

	items map[K]*entry[K, V]
	head  *entry[K, V]
	tail  *entry[K, V]

	hits   int64
	misses int64
}

// Option configures an LRU.
type Option[K comparable, V any] func(*LRU[K, V])

// WithEvictCallback is called, outside the lock, for every entry dropped
// by eviction, expiry or Remove.
func WithEvictCallback[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *LRU[K, V]) { c.onEvict = fn }
}

// WithClock replaces time.Now, for tests.
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *LRU[K, V]) { c.now = now }
}

// NewLRU creates a cache with the given capacity and TTL.
func NewLRU[K comparable, V any](capacity int, ttl time.Duration, opts ...Option[K, V]) *LRU[K, V] {
	if capacity <= 0 {
		capacity = 1000
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	c := &LRU[K, V]{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[K]*entry[K, V], capacity),
		head:     &entry[K, V]{},
		tail:     &entry[K, V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key if present and not expired. A hit moves the
// entry to the front and extends its TTL.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	v, ok, dropped := c.getLocked(key)
	c.mu.Unlock()

	c.notify(dropped)
	return v, ok
}

// GetOrAdd returns the cached value for key, or stores and returns the
// result of create. created reports which happened.
func (c *LRU[K, V]) GetOrAdd(key K, create func() V) (value V, created bool) {
	c.mu.Lock()
	v, ok, dropped := c.getLocked(key)
	if ok {
		c.mu.Unlock()
		c.notify(dropped)
		return v, false
	}
	v = create()
	dropped = append(dropped, c.addLocked(key, v)...)
	c.mu.Unlock()

	c.notify(dropped)
	return v, true
}

// Add adds or replaces an entry. If the cache is over capacity, the least
// recently used entry is evicted.
func (c *LRU[K, V]) Add(key K, value V) {
	c.mu.Lock()
	dropped := c.addLocked(key, value)
	c.mu.Unlock()

	c.notify(dropped)
}

// Remove drops an entry. It returns true if the key was present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	e, ok := c.items[key]
	if ok {
		c.unlink(e)
	}
	c.mu.Unlock()

	if ok {
		c.notify([]*entry[K, V]{e})
	}
	return ok
}

// Len returns the number of entries, expired ones included until they are
// touched or cleaned up.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Range calls fn for every live entry from most to least recently used
// without changing the order. fn must not call back into the cache.
func (c *LRU[K, V]) Range(fn func(K, V) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for e := c.head.next; e != c.tail; e = e.next {
		if now.After(e.expiresAt) {
			continue
		}
		if !fn(e.key, e.value) {
			return
		}
	}
}

// CleanupExpired removes every expired entry and returns how many went.
func (c *LRU[K, V]) CleanupExpired() int {
	c.mu.Lock()
	now := c.now()
	var dropped []*entry[K, V]
	for e := c.tail.prev; e != c.head; {
		prev := e.prev
		if now.After(e.expiresAt) {
			c.unlink(e)
			dropped = append(dropped, e)
		}
		e = prev
	}
	c.mu.Unlock()

	c.notify(dropped)
	return len(dropped)
}

// Stats returns hit/miss statistics.
func (c *LRU[K, V]) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.items)
}

// Internal methods (must be called with lock held)

func (c *LRU[K, V]) getLocked(key K) (V, bool, []*entry[K, V]) {
	var zero V
	e, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false, nil
	}
	now := c.now()
	if now.After(e.expiresAt) {
		c.unlink(e)
		c.misses++
		return zero, false, []*entry[K, V]{e}
	}
	e.expiresAt = now.Add(c.ttl)
	c.moveToFront(e)
	c.hits++
	return e.value, true, nil
}

func (c *LRU[K, V]) addLocked(key K, value V) []*entry[K, V] {
	expiresAt := c.now().Add(c.ttl)

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return nil
	}

	e := &entry[K, V]{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(e)
	c.items[key] = e

	var dropped []*entry[K, V]
	for len(c.items) > c.capacity {
		oldest := c.tail.prev
		c.unlink(oldest)
		dropped = append(dropped, oldest)
	}
	return dropped
}

func (c *LRU[K, V]) addToFront(e *entry[K, V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *LRU[K, V]) moveToFront(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.addToFront(e)
}

// unlink removes an entry from both the list and the map.
func (c *LRU[K, V]) unlink(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.items, e.key)
}

func (c *LRU[K, V]) notify(dropped []*entry[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range dropped {
		c.onEvict(e.key, e.value)
	}
}
