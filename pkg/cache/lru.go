package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU evicts the least recently used entry once capacity is reached.
type LRU[K comparable, V any] struct {
	cache *lru.Cache[K, V]
}

// NewLRU creates an LRU cache holding at most capacity entries.
func NewLRU[K comparable, V any](capacity int) (*LRU[K, V], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	c, err := lru.New[K, V](capacity)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{cache: c}, nil
}

// Get returns the cached value for key (LRU is thread-safe).
func (c *LRU[K, V]) Get(key K) (V, bool) {
	return c.cache.Get(key)
}

// Put stores value under key, evicting the oldest entry if at capacity.
func (c *LRU[K, V]) Put(key K, value V) {
	c.cache.Add(key, value)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return c.cache.Len()
}

// Purge removes all entries.
func (c *LRU[K, V]) Purge() {
	c.cache.Purge()
}
