package cache

import (
	"container/list"
	"sync"
)

// lfuEntry is a cache node. frequency doubles as the index of the bucket
// holding elem.
type lfuEntry[K comparable, V any] struct {
	key       K
	value     V
	frequency int
	elem      *list.Element
}

// LFU evicts the least frequently used entries once capacity is reached.
//
// Entries live in frequency buckets 0..capacity-1, each ordered by insertion.
// A hit moves an entry one bucket up; in the top bucket it only moves to the
// back, so staler entries there are evicted first. Eviction removes a fraction
// of the capacity in one pass, starting at the lowest non-empty bucket.
type LFU[K comparable, V any] struct {
	mu         sync.Mutex
	capacity   int
	evictCount int
	items      map[K]*lfuEntry[K, V]
	buckets    []*list.List
	lowest     int
}

// NewLFU creates an LFU cache holding at most capacity entries. Each eviction
// drops max(1, capacity*evictionFactor) entries.
func NewLFU[K comparable, V any](capacity int, evictionFactor float64) (*LFU[K, V], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if evictionFactor <= 0 || evictionFactor > 1 {
		return nil, ErrInvalidEvictionFactor
	}
	c := &LFU[K, V]{
		capacity:   capacity,
		evictCount: max(1, int(float64(capacity)*evictionFactor)),
		items:      make(map[K]*lfuEntry[K, V], capacity),
		buckets:    make([]*list.List, capacity),
	}
	for i := range c.buckets {
		c.buckets[i] = list.New()
	}
	return c, nil
}

// Get returns the value for key and records the access.
func (c *LFU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.touch(e)
	return e.value, true
}

// Put stores value under key. Replacing an existing value counts as an access.
func (c *LFU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.value = value
		c.touch(e)
		return
	}
	if len(c.items) >= c.capacity {
		c.evict()
	}
	e := &lfuEntry[K, V]{key: key, value: value}
	e.elem = c.buckets[0].PushBack(e)
	c.items[key] = e
	c.lowest = 0
}

// Len returns the number of cached entries.
func (c *LFU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Purge removes all entries.
func (c *LFU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.items)
	for _, b := range c.buckets {
		b.Init()
	}
	c.lowest = 0
}

// touch raises e's frequency by one, capped at the top bucket.
func (c *LFU[K, V]) touch(e *lfuEntry[K, V]) {
	top := c.capacity - 1
	if e.frequency == top {
		c.buckets[top].MoveToBack(e.elem)
		return
	}
	from := c.buckets[e.frequency]
	from.Remove(e.elem)
	if e.frequency == c.lowest && from.Len() == 0 {
		c.lowest++
	}
	e.frequency++
	e.elem = c.buckets[e.frequency].PushBack(e)
}

// evict removes up to evictCount entries, lowest frequency and oldest first.
func (c *LFU[K, V]) evict() {
	for n := c.evictCount; n > 0 && len(c.items) > 0; {
		b := c.buckets[c.lowest]
		if b.Len() == 0 {
			c.lowest++
			continue
		}
		e := b.Remove(b.Front()).(*lfuEntry[K, V])
		delete(c.items, e.key)
		n--
	}
	for c.lowest < c.capacity-1 && c.buckets[c.lowest].Len() == 0 {
		c.lowest++
	}
}
