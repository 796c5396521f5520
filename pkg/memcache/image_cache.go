package memcache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ImageCache stores JSON-encoded image lookups. Entries are written once and then only read.
type ImageCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Clear(ctx context.Context) error
}

// CacheKey joins lower-cased parts into a stable key.
func CacheKey(parts ...string) string {
	lowered := make([]string, len(parts))
	for i, p := range parts {
		lowered[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(lowered, "-")
}

type MemoryImageCache struct {
	mu    sync.RWMutex
	store map[string][]byte
}

func NewMemoryImageCache() *MemoryImageCache {
	return &MemoryImageCache{store: make(map[string][]byte)}
}

func (c *MemoryImageCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	data, ok := c.store[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryImageCache) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.store[key]; !exists {
		c.store[key] = data
	}
	return nil
}

func (c *MemoryImageCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string][]byte)
	return nil
}

const imageKeyPrefix = "planner:image:"

// RedisImageCache shares image lookups across instances.
type RedisImageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisImageCache(client *redis.Client, ttl time.Duration) *RedisImageCache {
	return &RedisImageCache{client: client, ttl: ttl}
}

func (c *RedisImageCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, imageKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisImageCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.SetNX(ctx, imageKeyPrefix+key, data, c.ttl).Err()
}

func (c *RedisImageCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, imageKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
