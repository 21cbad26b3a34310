package cache

import (
	"sync"

	"worldforge/internal/mapgen"
)

// MapCache holds exactly one generated Map: the service's process-wide
// "current world", guarded by a mutex so concurrent HTTP handlers can read
// or replace it safely. The generation core never touches this type —
// it is the service layer's bookkeeping, not the core's.
type MapCache struct {
	mu      sync.RWMutex
	m       *mapgen.Map
	seed    uint64
	params  mapgen.Params
	timings mapgen.Timings
}

// NewMapCache returns an empty cache.
func NewMapCache() *MapCache {
	return &MapCache{}
}

// Store replaces the cached Map, the seed/params it was generated with, and
// its most recent stage timings.
func (c *MapCache) Store(m *mapgen.Map, seed uint64, params mapgen.Params, timings mapgen.Timings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = m
	c.seed = seed
	c.params = params
	c.timings = timings
}

// Load returns the cached Map, its seed and params, and whether a Map has
// been stored yet.
func (c *MapCache) Load() (*mapgen.Map, uint64, mapgen.Params, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.m == nil {
		return nil, 0, mapgen.Params{}, false
	}
	return c.m, c.seed, c.params, true
}

// Timings returns the stage timings recorded by the most recent Store call.
func (c *MapCache) Timings() mapgen.Timings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timings
}

// Clear empties the cache.
func (c *MapCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = nil
	c.timings = nil
}
