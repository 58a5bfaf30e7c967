// Package cache provides an in-memory result cache for completed searches,
// keyed by normalized query text.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/aetherlearn/pathweaver/internal/types"
)

const (
	// DefaultTTL is how long a cached result stays servable.
	DefaultTTL = 24 * time.Hour
	// DefaultCapacity bounds the number of cached queries.
	DefaultCapacity = 100
)

type entry struct {
	items    []types.ContentItem
	storedAt time.Time
}

// Cache is a bounded TTL cache over discovered content lists. Lookup is
// exact match on the normalized query; no fuzzy or semantic matching.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	entries  map[string]entry
	now      func() time.Time
}

// New returns a cache with the given TTL and capacity. Non-positive values
// fall back to the defaults.
func New(ttl time.Duration, capacity int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[string]entry),
		now:      time.Now,
	}
}

// Key normalizes a query into its cache key.
func Key(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Check returns the cached items for a query, or ok=false when the query
// was never stored or its entry has expired. Expired entries are removed
// on the spot.
func (c *Cache) Check(query string) ([]types.ContentItem, bool) {
	key := Key(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.items, true
}

// Store saves the items under the query's normalized key. When the cache is
// full the oldest entry is evicted first.
func (c *Cache) Store(query string, items []types.ContentItem) {
	key := Key(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictOldestLocked()
	}
	c.entries[key] = entry{items: items, storedAt: c.now()}
}

// Len reports the number of live entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for key, e := range c.entries {
		if first || e.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.storedAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
