package imagestore

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Cache stores image bytes by key for a limited time.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is an in-process Cache. A zero or negative TTL keeps entries
// until the cache is dropped.
type MemoryCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]memoryItem
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]memoryItem),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if c.ttl > 0 && !c.now().Before(item.expiresAt) {
		delete(c.items, key)
		return nil, false, nil
	}
	return item.value, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = memoryItem{value: value, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// NewCache returns a Redis-backed cache when redisURL is set and an
// in-memory cache otherwise.
func NewCache(ctx context.Context, redisURL string, ttl time.Duration, logger *slog.Logger) (Cache, error) {
	logger = logger.With("component", "imagecache")

	if redisURL == "" {
		logger.Debug("Redis disabled, using in-memory cache")
		return NewMemoryCache(ttl), nil
	}

	client, err := ConnectRedis(ctx, redisURL, logger)
	if err != nil {
		return nil, err
	}
	return NewRedisCache(client, ttl), nil
}
