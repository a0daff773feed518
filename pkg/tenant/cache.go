package tenant

import (
	"context"
	"sync"
	"time"
)

// CacheMode selects the expiration policy of the tenant cache.
type CacheMode string

const (
	// CacheModePreload keeps entries forever; the whole tenant set is
	// bulk-loaded at startup.
	CacheModePreload CacheMode = "preload"
	// CacheModeLazy stores entries on demand with a TTL and sweeps
	// expired entries periodically.
	CacheModeLazy CacheMode = "lazy"
	// CacheModeDisabled stores nothing; every lookup misses.
	CacheModeDisabled CacheMode = "disabled"
)

// DefaultSweepInterval is how often the lazy-mode sweeper removes expired
// entries. The interval is fixed and independent of the entry TTL.
const DefaultSweepInterval = time.Minute

// Cache is the interface for tenant cache implementations. Keys are the
// extracted request identifiers, not tenant IDs.
type Cache interface {
	// Get retrieves a tenant from cache by key.
	Get(ctx context.Context, key string) (*Tenant, bool)

	// Set stores a tenant under key. Expiration follows the cache policy.
	Set(ctx context.Context, key string, tenant *Tenant)

	// Delete removes a single entry.
	Delete(ctx context.Context, key string)

	// Clear removes all entries.
	Clear(ctx context.Context)

	// Len reports the number of stored entries.
	Len() int

	// Close stops background work and clears the cache. Safe to call
	// more than once and safe when no background work was started.
	Close() error
}

// CacheConfig configures a memory cache.
type CacheConfig struct {
	Mode CacheMode     `env:"TENANCY_CACHE_MODE" envDefault:"lazy"`
	TTL  time.Duration `env:"TENANCY_CACHE_TTL" envDefault:"5m"`

	// SweepInterval overrides the expired-entry sweep period.
	// Zero means DefaultSweepInterval.
	SweepInterval time.Duration `env:"-"`
}

type cacheEntry struct {
	tenant *Tenant
	// expiresAt is zero for entries that never expire (preload mode).
	expiresAt time.Time
}

// memoryCache is the in-process policy cache. Entries are immutable value
// snapshots, so last-write-wins per key is sufficient under concurrency.
type memoryCache struct {
	mode CacheMode
	ttl  time.Duration

	mu    sync.RWMutex
	items map[string]cacheEntry

	stop    chan struct{}
	done    chan struct{}
	started bool
	closed  bool
}

// NewMemoryCache creates a policy-driven in-process tenant cache.
// Lazy mode starts a background sweeper immediately; Close stops it.
func NewMemoryCache(cfg CacheConfig) Cache {
	c := &memoryCache{
		mode:  cfg.Mode,
		ttl:   cfg.TTL,
		items: make(map[string]cacheEntry),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	if c.mode == CacheModeLazy {
		interval := cfg.SweepInterval
		if interval <= 0 {
			interval = DefaultSweepInterval
		}
		c.started = true
		go c.sweep(interval)
	}

	return c
}

// Get returns the cached tenant for key. Disabled mode always misses;
// lazy mode evicts expired entries on read in addition to sweeping.
func (c *memoryCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	if c.mode == CacheModeDisabled {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return entry.tenant, true
}

// Set stores a tenant under key according to the cache policy.
func (c *memoryCache) Set(ctx context.Context, key string, tenant *Tenant) {
	if c.mode == CacheModeDisabled || key == "" {
		return
	}

	entry := cacheEntry{tenant: tenant}
	if c.mode == CacheModeLazy {
		entry.expiresAt = time.Now().Add(c.ttl)
	}

	c.mu.Lock()
	c.items[key] = entry
	c.mu.Unlock()
}

// Delete removes the entry for key.
func (c *memoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Clear removes all entries.
func (c *memoryCache) Clear(ctx context.Context) {
	c.mu.Lock()
	c.items = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len reports the number of stored entries, including not-yet-swept
// expired ones.
func (c *memoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the sweeper and clears all entries. Idempotent, and safe
// when the sweeper was never started.
func (c *memoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	started := c.started
	c.items = make(map[string]cacheEntry)
	c.mu.Unlock()

	if started {
		close(c.stop)
		<-c.done
	}
	return nil
}

// sweep periodically removes expired entries.
func (c *memoryCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *memoryCache) removeExpired() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.items {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(c.items, key)
		}
	}
}
