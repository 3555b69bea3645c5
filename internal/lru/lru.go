// Package lru provides a small fixed-capacity map that evicts the least
// recently used entry when it overflows.
//
// A Cache is not safe for concurrent use; it is meant to be confined to the
// Bubble Tea update loop like the rest of the navigation state.
package lru

import "container/list"

// DefaultCapacity is the number of entries kept by the navigation caches.
const DefaultCapacity = 200

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache is a bounded key/value store with strict least-recently-used
// eviction. The front of the recency list holds the most recent entry.
type Cache[K comparable, V any] struct {
	capacity int
	order    *list.List
	items    map[K]*list.Element
}

// New returns a cache holding at most capacity entries. Capacities below one
// are raised to one.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache[K, V]{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[K]*list.Element, capacity),
	}
}

// Get returns the value stored for key and marks it most recently used.
// Missing keys are not inserted.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry[K, V]).value, true
}

// Peek returns the value stored for key without touching recency order.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return el.Value.(*entry[K, V]).value, true
}

// Put stores value under key and marks it most recently used, evicting the
// least recently used entry first when the cache is full.
func (c *Cache[K, V]) Put(key K, value V) {
	if el, ok := c.items[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}
	if c.order.Len() >= c.capacity {
		c.evictOldest()
	}
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
}

// Remove drops key from the cache. It reports whether an entry existed.
func (c *Cache[K, V]) Remove(key K) bool {
	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.items, key)
	return true
}

// Len returns the number of stored entries.
func (c *Cache[K, V]) Len() int {
	return c.order.Len()
}

// Cap returns the fixed capacity.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// Keys lists keys from most to least recently used.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[K, V]).key)
	}
	return keys
}

func (c *Cache[K, V]) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry[K, V]).key)
}
