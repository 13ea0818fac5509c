package membership

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// Cache stores resolved membership sets keyed by user identifier.
type Cache interface {
	// Get retrieves a cached membership set.
	Get(ctx context.Context, key string) ([]tenant.ID, bool)

	// Set stores a membership set with the given TTL.
	Set(ctx context.Context, key string, ids []tenant.ID, ttl time.Duration)

	// Delete removes a cached set.
	Delete(ctx context.Context, key string)

	// Close releases any resources held by the cache.
	Close() error
}

type memoryEntry struct {
	ids       []tenant.ID
	expiresAt time.Time
}

// memoryCache is the default in-process cache. Expired entries are swept
// by a background goroutine; Close stops it.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	stop    chan struct{}
	done    chan struct{}
	closed  bool
}

// NewInMemoryCache creates an in-process membership cache with periodic
// cleanup of expired entries.
func NewInMemoryCache() Cache {
	c := &memoryCache{
		entries: make(map[string]memoryEntry),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *memoryCache) Get(_ context.Context, key string) ([]tenant.ID, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.ids, true
}

func (c *memoryCache) Set(_ context.Context, key string, ids []tenant.ID, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{ids: ids, expiresAt: time.Now().Add(ttl)}
}

func (c *memoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *memoryCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

func (c *memoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}
