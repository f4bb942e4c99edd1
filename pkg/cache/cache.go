// Package cache provides a TTL cache with an injected clock, so expiry is
// testable without timers.
package cache

import (
	"context"
	"sync"
	"time"
)

type item[V any] struct {
	value    V
	storedAt time.Time
}

// TTL is a generic key/value cache. Entries expire ttl after they were
// stored; expiry is evaluated lazily against the injected clock.
type TTL[V any] struct {
	mu    sync.RWMutex
	items map[string]item[V]
	ttl   time.Duration
	now   func() time.Time
}

// NewTTL creates a cache with the given time-to-live. now may be nil, in
// which case time.Now is used.
func NewTTL[V any](ttl time.Duration, now func() time.Time) *TTL[V] {
	if now == nil {
		now = time.Now
	}
	return &TTL[V]{
		items: make(map[string]item[V]),
		ttl:   ttl,
		now:   now,
	}
}

// Get returns the cached value for key if it has not expired.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.storedAt) >= c.ttl {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Set stores value under key, resetting its expiry.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	c.items[key] = item[V]{value: value, storedAt: c.now()}
	c.mu.Unlock()
}

// GetOrFetch returns the cached value or invokes fetch, caching a
// successful result. Fetch errors are returned without poisoning the cache.
func (c *TTL[V]) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	c.Set(key, value)
	return value, nil
}
