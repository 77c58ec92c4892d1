package console

import (
	"sync"
	"time"

	"github.com/perttu/commission-console/internal/pricing"
)

// TierCache provides thread-safe caching of per-manufacturer tier systems
// with TTL support, so list views don't refetch configuration on every
// render.
type TierCache struct {
	mu      sync.RWMutex
	entries map[string]tierCacheEntry
	ttl     time.Duration
}

type tierCacheEntry struct {
	sys     *pricing.TierSystem
	expires time.Time
}

// NewTierCache creates a tier cache with the specified TTL.
func NewTierCache(ttl time.Duration) *TierCache {
	return &TierCache{
		entries: make(map[string]tierCacheEntry),
		ttl:     ttl,
	}
}

// Get returns the cached tier system for a manufacturer if present and not
// expired.
func (c *TierCache) Get(manufacturerID string) (*pricing.TierSystem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[manufacturerID]
	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.sys, true
}

// Set stores a tier system with the configured TTL.
func (c *TierCache) Set(manufacturerID string, sys *pricing.TierSystem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[manufacturerID] = tierCacheEntry{
		sys:     sys,
		expires: time.Now().Add(c.ttl),
	}
}

// Clear removes all cached entries.
func (c *TierCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]tierCacheEntry)
}
