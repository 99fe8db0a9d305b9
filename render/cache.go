// ABOUTME: In-memory figure cache keyed by a sha256 of figure kind, dataset ID, and filter state.
// ABOUTME: Supports TTL-based expiry, a size cap, concurrent access, and manual clearing. Errors are never cached.
package render

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// FigureFunc produces the bytes of one rendered figure.
type FigureFunc func() ([]byte, error)

// DefaultMaxEntries bounds the cache when no explicit cap is given.
const DefaultMaxEntries = 512

// cacheEntry holds a single cached render result with its creation timestamp.
type cacheEntry struct {
	data      []byte
	createdAt time.Time
}

// FigureCache memoizes rendered figures. The dataset is immutable, so a
// figure only changes when the dataset ID or the filter state changes.
type FigureCache struct {
	ttl        time.Duration
	maxEntries int
	entries    map[string]*cacheEntry
	mu         sync.RWMutex
	now        func() time.Time
}

// NewFigureCache creates a FigureCache whose entries expire after ttl.
// maxEntries <= 0 selects DefaultMaxEntries.
func NewFigureCache(ttl time.Duration, maxEntries int) *FigureCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &FigureCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]*cacheEntry),
		now:        time.Now,
	}
}

// Get returns the cached figure for key, rendering it with fn on a miss or
// after expiry.
func (c *FigureCache) Get(key string, fn FigureFunc) ([]byte, error) {
	c.mu.RLock()
	if entry, ok := c.entries[key]; ok {
		if c.now().Sub(entry.createdAt) < c.ttl {
			data := entry.data
			c.mu.RUnlock()
			return data, nil
		}
	}
	c.mu.RUnlock()

	data, err := fn()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	c.entries[key] = &cacheEntry{
		data:      data,
		createdAt: c.now(),
	}
	c.mu.Unlock()

	return data, nil
}

// evictLocked drops expired entries, or the oldest entry when none expired.
func (c *FigureCache) evictLocked() {
	now := c.now()
	var oldestKey string
	var oldest time.Time
	removed := false
	for k, e := range c.entries {
		if now.Sub(e.createdAt) >= c.ttl {
			delete(c.entries, k)
			removed = true
			continue
		}
		if oldestKey == "" || e.createdAt.Before(oldest) {
			oldestKey, oldest = k, e.createdAt
		}
	}
	if !removed && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Len returns the number of entries currently in the cache (including expired ones).
func (c *FigureCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *FigureCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// FigureKey derives a deterministic cache key for one figure.
func FigureKey(kind, datasetID, filterKey string) string {
	return fmt.Sprintf("%x:%s", sha256.Sum256([]byte(datasetID+"\x00"+filterKey)), kind)
}
