package cache

import (
	"context"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 1000

// LRUCache is a thread-safe cache evicting the least recently used entries.
type LRUCache[K comparable, V any] struct {
	cache   *lru.Cache[K, V]
	onEvict atomic.Pointer[func(K, V)]
}

// NewLRUCache creates a cache holding at most capacity entries.
func NewLRUCache[K comparable, V any](capacity int) *LRUCache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &LRUCache[K, V]{}
	inner, err := lru.NewWithEvict(capacity, func(key K, value V) {
		if fn := c.onEvict.Load(); fn != nil {
			(*fn)(key, value)
		}
	})
	if err != nil {
		// only returned for non-positive sizes
		panic(err)
	}
	c.cache = inner
	return c
}

// SetEvictCallback registers fn to run whenever an entry leaves the cache.
func (c *LRUCache[K, V]) SetEvictCallback(fn func(key K, value V)) {
	if fn == nil {
		c.onEvict.Store(nil)
		return
	}
	c.onEvict.Store(&fn)
}

// Put stores value under key.
func (c *LRUCache[K, V]) Put(key K, value V) {
	c.cache.Add(key, value)
}

// Get returns the value stored under key and marks it as recently used.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	return c.cache.Get(key)
}

// Remove deletes key and returns the value it held.
func (c *LRUCache[K, V]) Remove(key K) (V, bool) {
	value, ok := c.cache.Peek(key)
	if !ok {
		return value, false
	}
	c.cache.Remove(key)
	return value, true
}

// Len returns the number of entries.
func (c *LRUCache[K, V]) Len() int {
	return c.cache.Len()
}

// Clear removes every entry.
func (c *LRUCache[K, V]) Clear() {
	c.cache.Purge()
}

// FlushAll removes every entry. It never fails.
func (c *LRUCache[K, V]) FlushAll(context.Context) error {
	c.Clear()
	return nil
}
