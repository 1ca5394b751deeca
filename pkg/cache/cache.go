// Package cache provides the bounded result caches used to memoize
// decompositions of hot tokens.
package cache

import "errors"

// ErrInvalidCapacity is returned when a cache is created with a capacity below one.
var ErrInvalidCapacity = errors.New("cache: capacity must be at least 1")

// ErrInvalidEvictionFactor is returned when an LFU eviction factor is outside (0, 1].
var ErrInvalidEvictionFactor = errors.New("cache: eviction factor must be in (0, 1]")

// Cache is a bounded key/value store. Implementations are safe for concurrent use.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Put(key K, value V)
	Len() int
	Purge()
}
