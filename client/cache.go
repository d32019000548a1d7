package client

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ValidationCache remembers the server's verdict for exact field values,
// keyed "field:value", so blurring an unchanged field does not re-issue a
// network check. Any edit produces a different key and therefore a miss;
// no TTL is needed for correctness, only the size cap for memory.
type ValidationCache struct {
	mu         sync.Mutex
	entries    map[string]bool
	maxEntries int
	sf         singleflight.Group
}

// NewValidationCache caps the cache at maxEntries (256 when non-positive).
// Hitting the cap clears the cache; every key is value-derived, so a
// refetch always reproduces the dropped verdicts.
func NewValidationCache(maxEntries int) *ValidationCache {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &ValidationCache{
		entries:    make(map[string]bool),
		maxEntries: maxEntries,
	}
}

func cacheKey(field, value string) string { return field + ":" + value }

func (c *ValidationCache) Get(field, value string) (valid, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	valid, ok = c.entries[cacheKey(field, value)]
	return valid, ok
}

func (c *ValidationCache) Set(field, value string, valid bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.maxEntries {
		c.entries = make(map[string]bool)
	}
	c.entries[cacheKey(field, value)] = valid
}

// Clear resets the cache, as on form reset after a successful submission.
func (c *ValidationCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]bool)
}

func (c *ValidationCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Lookup returns the cached verdict or runs check once, deduping
// concurrent lookups of the same field:value through singleflight.
func (c *ValidationCache) Lookup(ctx context.Context, field, value string, check func(ctx context.Context) (bool, error)) (bool, error) {
	key := cacheKey(field, value)

	if valid, ok := c.Get(field, value); ok {
		return valid, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		if valid, ok := c.Get(field, value); ok {
			return valid, nil
		}
		valid, err := check(ctx)
		if err != nil {
			return false, err
		}
		c.Set(field, value, valid)
		return valid, nil
	})
	if err != nil {
		return false, err
	}

	return v.(bool), nil
}
