// Package cache provides memoization for machine compilation. Hosts that
// compile the same definition text repeatedly (template expansion, tests,
// multi-tenant services holding machine definitions as data) skip the
// parse-and-validate pass on a hit.
package cache

import (
	"crypto/sha256"
	"sync"

	"github.com/statec-xyz/go-statec/dsl"
	"github.com/statec-xyz/go-statec/machine"
)

// SpecCache caches compiled machines keyed by a hash of the source text.
// Compilation failures are not cached.
type SpecCache struct {
	mu        sync.RWMutex
	cache     map[[sha256.Size]byte]*machine.Spec
	maxSize   int
	hits      int64
	misses    int64
	evictions int64
}

// New creates a cache with the specified maximum size. When the cache is
// full, an arbitrary entry is evicted. Set maxSize to 0 for unlimited.
func New(maxSize int) *SpecCache {
	return &SpecCache{
		cache:   make(map[[sha256.Size]byte]*machine.Spec),
		maxSize: maxSize,
	}
}

// Get retrieves the compiled machine for the given source text.
// Returns nil if not cached.
func (c *SpecCache) Get(source string) *machine.Spec {
	key := sha256.Sum256([]byte(source))

	// Full lock: the hit counters are written on every lookup.
	c.mu.Lock()
	defer c.mu.Unlock()

	if spec, ok := c.cache[key]; ok {
		c.hits++
		return spec
	}
	c.misses++
	return nil
}

// Put stores a compiled machine under its source text.
func (c *SpecCache) Put(source string, spec *machine.Spec) {
	key := sha256.Sum256([]byte(source))

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxSize > 0 && len(c.cache) >= c.maxSize {
		for k := range c.cache {
			delete(c.cache, k)
			c.evictions++
			break
		}
	}
	c.cache[key] = spec
}

// GetOrCompile retrieves from the cache or compiles the definition text
// and caches the result.
func (c *SpecCache) GetOrCompile(source string) (*machine.Spec, error) {
	if spec := c.Get(source); spec != nil {
		return spec, nil
	}
	spec, err := dsl.ParseSpec(source)
	if err != nil {
		return nil, err
	}
	c.Put(source, spec)
	return spec, nil
}

// Clear removes all entries from the cache.
func (c *SpecCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[[sha256.Size]byte]*machine.Spec)
}

// Size returns the current number of cached entries.
func (c *SpecCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Stats holds cache statistics.
type Stats struct {
	Size      int
	MaxSize   int
	Hits      int64
	Misses    int64
	Evictions int64
	HitRate   float64
}

// Stats returns cache statistics.
func (c *SpecCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return Stats{
		Size:      len(c.cache),
		MaxSize:   c.maxSize,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		HitRate:   hitRate,
	}
}
