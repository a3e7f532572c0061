package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ignatzorin/videocrew-backend/internal/goroutine"
)

// Ключи кэша.
const (
	PortfolioCachePrefix  = "portfolio:"
	PortfolioListCacheKey = PortfolioCachePrefix + "list"
)

// CacheService provides in-memory caching with TTL and invalidation support.
type CacheService struct {
	mu    sync.RWMutex
	cache map[string]*cacheEntry
	now   func() time.Time
	// generation растёт при каждой инвалидации. GetOrSet не сохраняет значение,
	// загруженное до инвалидации.
	generation uint64
}

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// NewCacheService creates a new cache service.
// Background cleanup stops when ctx is cancelled.
func NewCacheService(ctx context.Context) *CacheService {
	cs := &CacheService{
		cache: make(map[string]*cacheEntry),
		now:   time.Now,
	}

	goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
		cs.cleanupLoop(ctx, 5*time.Minute)
	})

	return cs
}

// Get retrieves a value from cache.
func (cs *CacheService) Get(key string) (interface{}, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	entry, exists := cs.cache[key]
	if !exists {
		return nil, false
	}

	// Check if expired
	if cs.now().After(entry.expiresAt) {
		// Don't delete here, let cleanup handle it
		return nil, false
	}

	return entry.data, true
}

// Set stores a value in cache with TTL.
func (cs *CacheService) Set(key string, value interface{}, ttl time.Duration) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.cache[key] = &cacheEntry{
		data:      value,
		expiresAt: cs.now().Add(ttl),
	}
}

// Delete removes a key from cache.
func (cs *CacheService) Delete(key string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.generation++
	delete(cs.cache, key)
}

// InvalidateByPrefix removes all keys with the given prefix.
func (cs *CacheService) InvalidateByPrefix(prefix string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.generation++
	for key := range cs.cache {
		if strings.HasPrefix(key, prefix) {
			delete(cs.cache, key)
		}
	}
}

// GetOrSet retrieves a value from cache or computes it if not found.
// Errors are not cached. A value computed while the cache was invalidated
// is returned to the caller but not stored.
func (cs *CacheService) GetOrSet(
	key string,
	ttl time.Duration,
	fn func() (interface{}, error),
) (interface{}, error) {
	if value, found := cs.Get(key); found {
		return value, nil
	}

	cs.mu.RLock()
	gen := cs.generation
	cs.mu.RUnlock()

	value, err := fn()
	if err != nil {
		return nil, err
	}

	cs.setIfGeneration(key, value, ttl, gen)

	return value, nil
}

// setIfGeneration сохраняет значение, только если с момента gen не было инвалидаций.
func (cs *CacheService) setIfGeneration(key string, value interface{}, ttl time.Duration, gen uint64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.generation != gen {
		return
	}
	cs.cache[key] = &cacheEntry{
		data:      value,
		expiresAt: cs.now().Add(ttl),
	}
}

func (cs *CacheService) cleanupLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cs.removeExpired()
		}
	}
}

// removeExpired removes expired entries.
func (cs *CacheService) removeExpired() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := cs.now()
	for key, entry := range cs.cache {
		if now.After(entry.expiresAt) {
			delete(cs.cache, key)
		}
	}
}
