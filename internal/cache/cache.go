// Package cache provides a small generic cache with a soft size limit.
//
// The cache tracks a monotonic access tick per entry and, once the soft
// limit is exceeded, evicts the least recently used quarter of its
// entries in one batch. Batched eviction keeps Set amortized cheap
// without maintaining a linked list.
//
// The canvas uses it to hold recently rendered viewport composites, so
// flipping between a handful of zoom levels does not re-rasterize the
// page every time.
package cache

import "sync"

// Cache is a generic cache with LRU-biased batch eviction.
//
// Cache is safe for concurrent use and must not be copied after
// creation.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*entry[V]
	softLimit int
	tick      int64
}

type entry[V any] struct {
	value V
	atime int64
}

// New creates a cache evicting down from softLimit entries. A limit of
// 0 means unbounded.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*entry[V]),
		softLimit: softLimit,
	}
}

// Get retrieves a value and refreshes its access time.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.tick++
	e.atime = c.tick
	return e.value, true
}

// Set stores a value, evicting stale entries when the soft limit is
// exceeded.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	c.entries[key] = &entry[V]{value: value, atime: c.tick}
	c.evict()
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.tick = 0
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// evict removes the oldest entries until the cache is at 3/4 of its
// soft limit. Caller must hold c.mu.
func (c *Cache[K, V]) evict() {
	if c.softLimit <= 0 || len(c.entries) <= c.softLimit {
		return
	}
	target := c.softLimit * 3 / 4
	if target < 1 {
		target = 1
	}
	for len(c.entries) > target {
		var (
			oldestKey K
			oldest    int64 = -1
		)
		for k, e := range c.entries {
			if oldest < 0 || e.atime < oldest {
				oldestKey = k
				oldest = e.atime
			}
		}
		delete(c.entries, oldestKey)
	}
}
