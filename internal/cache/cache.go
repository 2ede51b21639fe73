package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	expires time.Time
}

// TTL is a small expiring cache keyed by int64. It replaces hidden
// package-level memoization of lookups: construct one and inject it into
// whichever service needs it. Expired entries are dropped lazily on Get.
type TTL[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[int64]entry[V]
}

func NewTTL[V any](ttl time.Duration) *TTL[V] {
	return &TTL[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[int64]entry[V]),
	}
}

func (c *TTL[V]) Get(key int64) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expires) {
		c.Invalidate(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTL[V]) Set(key int64, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expires: c.now().Add(c.ttl)}
}

func (c *TTL[V]) Invalidate(key int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
