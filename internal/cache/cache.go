// Package cache provides a TTL cache for registry responses. Entries
// are keyed by registry and package name so two ecosystems can hold a
// package of the same name without collision.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the default cache time-to-live
const DefaultTTL = 24 * time.Hour

// Cache is a concurrency-safe in-memory cache with per-entry expiry.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	data    []byte
	expires time.Time
}

// New creates a cache with the given TTL. A zero ttl falls back to
// DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Key builds the cache key for a package lookup.
func Key(registry, name string) string {
	return registry + "\x00" + name
}

// Get retrieves data from cache if it exists and is not expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expires) {
		return nil, false
	}
	return e.data, true
}

// Set stores data in the cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	c.entries[key] = entry{data: data, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Clear removes all cached entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len reports the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
