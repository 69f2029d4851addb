package secrets

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryCache_GetSet(t *testing.T) {
	cache := NewInMemoryCache(5*time.Minute, 10)

	_, found := cache.Get("missing")
	assert.False(t, found)

	cache.Set("k", "v", 0)
	value, found := cache.Get("k")
	assert.True(t, found)
	assert.Equal(t, "v", value)
	assert.Equal(t, 1, cache.Size())

	cache.Delete("k")
	_, found = cache.Get("k")
	assert.False(t, found)
}

func TestInMemoryCache_Expiry(t *testing.T) {
	cache := NewInMemoryCache(time.Minute, 0)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("short", "a", time.Second)
	cache.Set("long", "b", 0)

	now = now.Add(2 * time.Second)
	_, found := cache.Get("short")
	assert.False(t, found)
	value, found := cache.Get("long")
	assert.True(t, found)
	assert.Equal(t, "b", value)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 0, cache.Size())
}

func TestInMemoryCache_EvictsClosestToExpiry(t *testing.T) {
	cache := NewInMemoryCache(time.Minute, 2)

	cache.Set("a", "1", time.Second)
	cache.Set("b", "2", time.Hour)
	cache.Set("c", "3", time.Hour)

	_, found := cache.Get("a")
	assert.False(t, found)
	_, found = cache.Get("b")
	assert.True(t, found)
	_, found = cache.Get("c")
	assert.True(t, found)

	// Overwriting an existing key does not evict.
	cache.Set("c", "4", time.Hour)
	assert.Equal(t, 2, cache.Size())
}

func TestInMemoryCache_Concurrent(t *testing.T) {
	cache := NewInMemoryCache(time.Minute, 0)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			cache.Set(key, key, 0)
			_, _ = cache.Get(key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, cache.Size())
}
