package uritemplate

import (
	"sync"

	"github.com/cespare/xxhash"
	"golang.org/x/sync/singleflight"
)

// Cache is a concurrency-safe cache of parsed templates, so callers that
// expand the same template string repeatedly pay the parse cost once.
// Entries are keyed by the xxhash of the raw string and verified against
// the raw string, so hash collisions cannot alias two templates.
type Cache struct {
	mu      sync.RWMutex
	entries map[uint64][]*Template
	group   singleflight.Group
}

// NewCache creates an empty template cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[uint64][]*Template),
	}
}

// Parse returns the cached Template for raw, parsing and storing it on
// first use. Concurrent first parses of the same string are deduplicated;
// parse errors are returned to every waiter and nothing is cached.
func (c *Cache) Parse(raw string) (*Template, error) {
	key := xxhash.Sum64String(raw)

	c.mu.RLock()
	if t := c.find(key, raw); t != nil {
		c.mu.RUnlock()
		return t, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.group.Do(raw, func() (interface{}, error) {
		t, err := Parse(raw)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if cached := c.find(key, raw); cached != nil {
			return cached, nil
		}
		c.entries[key] = append(c.entries[key], t)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Template), nil
}

// Len returns the number of cached templates.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, bucket := range c.entries {
		n += len(bucket)
	}
	return n
}

// find must be called with at least a read lock held.
func (c *Cache) find(key uint64, raw string) *Template {
	for _, t := range c.entries[key] {
		if t.raw == raw {
			return t
		}
	}
	return nil
}
