package fetch

import (
	"encoding/json"
	"sync"
	"time"
)

var nowFunc = time.Now // mockable

// Key derives a cache key from an ordered argument list using stable
// structural (JSON) serialization. Identical argument lists map to the same
// key. Callers must only pass serialization-safe values: no cyclic
// references, no reliance on non-deterministic map key order.
func Key(args ...interface{}) (string, error) {
	if len(args) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(args)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type cacheEntry struct {
	value    interface{}
	storedAt time.Time
}

// Cache is a bounded, insertion-ordered result cache. Entries are evicted
// explicitly (Invalidate/Clear), implicitly at read time once older than the
// caller's TTL, or oldest-inserted-first when the cache is at capacity.
// A Cache may be shared between executors; each reader applies its own TTL.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[string]cacheEntry
	order   []string // insertion order; index 0 is the oldest
}

func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheMaxEntries
	}
	return &Cache{
		max:     maxEntries,
		entries: make(map[string]cacheEntry, maxEntries),
	}
}

// Get returns the cached value for key if it was stored less than ttl ago.
// Expired entries are removed on read.
func (c *Cache) Get(key string, ttl time.Duration) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if ttl > 0 && nowFunc().Sub(e.storedAt) >= ttl {
		c.remove(key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, evicting the oldest inserted entry first when
// the cache is at capacity. Overwriting an existing key keeps its insertion
// position.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		for len(c.entries) >= c.max && len(c.order) > 0 {
			c.remove(c.order[0])
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = cacheEntry{value: value, storedAt: nowFunc()}
}

func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(key)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry, c.max)
	c.order = c.order[:0]
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove expects c.mu to be held.
func (c *Cache) remove(key string) {
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
