package secrets

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value      string
	expiration time.Time
}

func (e *cacheEntry) isExpired(now time.Time) bool {
	return now.After(e.expiration)
}

// InMemoryCache is a thread-safe TTL cache for secret values.
type InMemoryCache struct {
	entries    map[string]*cacheEntry
	maxSize    int
	defaultTTL time.Duration
	now        func() time.Time
	mu         sync.Mutex
}

var _ Cache = (*InMemoryCache)(nil)

// NewInMemoryCache creates a cache with the given default TTL.
// If maxSize is 0, the cache has no size limit.
func NewInMemoryCache(defaultTTL time.Duration, maxSize int) *InMemoryCache {
	return &InMemoryCache{
		entries:    make(map[string]*cacheEntry),
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Get returns the cached value if present and not expired.
func (c *InMemoryCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if entry.isExpired(c.now()) {
		delete(c.entries, key)
		return "", false
	}
	return entry.value, true
}

// Set stores a value. When the cache is full the entry closest to expiry is evicted.
func (c *InMemoryCache) Set(key, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl == 0 {
		ttl = c.defaultTTL
	}
	now := c.now()

	if _, exists := c.entries[key]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldest time.Time
		for k, entry := range c.entries {
			if oldestKey == "" || entry.expiration.Before(oldest) {
				oldestKey = k
				oldest = entry.expiration
			}
		}
		delete(c.entries, oldestKey)
	}

	c.entries[key] = &cacheEntry{value: value, expiration: now.Add(ttl)}
}

// Delete removes a specific key from the cache.
func (c *InMemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Size returns the number of live entries, pruning expired ones.
func (c *InMemoryCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if entry.isExpired(now) {
			delete(c.entries, key)
		}
	}
	return len(c.entries)
}
