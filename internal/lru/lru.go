// Package lru is a small size and TTL bounded LRU cache. Expired entries are
// dropped lazily on access, no background goroutine is started.
package lru

import (
	"container/list"
	"sync"
	"time"
)

// EvictCallback is used to get a callback when a cache entry is evicted
type EvictCallback[K comparable, V any] func(key K, value V)

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// LRU implements a thread-safe LRU with expirable entries.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	size      int
	ttl       time.Duration
	evictList *list.List // front is the most recently used
	items     map[K]*list.Element
	onEvict   EvictCallback[K, V]

	now func() time.Time
}

// NewLRU returns a new thread-safe cache with expirable entries.
//
// Size 0 makes the cache unbounded, ttl 0 turns expiring off.
func NewLRU[K comparable, V any](size int, onEvict EvictCallback[K, V], ttl time.Duration) *LRU[K, V] {
	if size < 0 {
		size = 0
	}
	if ttl < 0 {
		ttl = 0
	}

	return &LRU[K, V]{
		size:      size,
		ttl:       ttl,
		evictList: list.New(),
		items:     make(map[K]*list.Element),
		onEvict:   onEvict,
		now:       time.Now,
	}
}

// WithClock replaces the time source, used by tests
func (c *LRU[K, V]) WithClock(now func() time.Time) *LRU[K, V] {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	return c
}

func (c *LRU[K, V]) expired(ent *entry[K, V]) bool {
	return c.ttl > 0 && !c.now().Before(ent.expiresAt)
}

// Add adds a value to the cache, returns true if an eviction occurred.
func (c *LRU[K, V]) Add(key K, value V) (evicted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if elem, ok := c.items[key]; ok {
		c.evictList.MoveToFront(elem)
		ent := elem.Value.(*entry[K, V])
		ent.value = value
		ent.expiresAt = expiresAt
		return false
	}

	c.items[key] = c.evictList.PushFront(&entry[K, V]{key: key, value: value, expiresAt: expiresAt})

	if c.size > 0 && c.evictList.Len() > c.size {
		c.removeElement(c.evictList.Back())
		return true
	}
	return false
}

// Get looks up a key's value, expired entries are removed and reported missing.
func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return value, false
	}

	ent := elem.Value.(*entry[K, V])
	if c.expired(ent) {
		c.removeElement(elem)
		return value, false
	}

	c.evictList.MoveToFront(elem)
	return ent.value, true
}

// Contains checks if a key is in the cache without updating recency
func (c *LRU[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	return ok && !c.expired(elem.Value.(*entry[K, V]))
}

// Remove removes the provided key from the cache, returning if the key was contained.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
		return true
	}
	return false
}

// Keys returns the live keys, oldest first
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, len(c.items))
	for elem := c.evictList.Back(); elem != nil; elem = elem.Prev() {
		if ent := elem.Value.(*entry[K, V]); !c.expired(ent) {
			keys = append(keys, ent.key)
		}
	}
	return keys
}

// Len returns the number of items in the cache, expired ones included until they are touched.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Purge clears the cache completely, onEvict is called for each evicted key.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for elem := c.evictList.Back(); elem != nil; elem = c.evictList.Back() {
		c.removeElement(elem)
	}
}

func (c *LRU[K, V]) removeElement(elem *list.Element) {
	ent := c.evictList.Remove(elem).(*entry[K, V])
	delete(c.items, ent.key)
	if c.onEvict != nil {
		c.onEvict(ent.key, ent.value)
	}
}
