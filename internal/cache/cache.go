package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is an optional Redis response cache. With Enabled false every
// lookup misses and every store is a no-op, so callers never branch.
type Cache struct {
	Enabled bool
	client  *redis.Client
	ttl     time.Duration
	log     *slog.Logger
}

func New(addr string, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		return &Cache{Enabled: false, log: logger}
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cache{
		Enabled: true,
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		ttl:     ttl,
		log:     logger,
	}
}

// Key derives a stable cache key from its parts.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return "pantrychef:" + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached value and whether it was found. Errors degrade
// to a miss.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if !c.Enabled {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.log.Warn("cache.get_failed", "key", key, "error", err)
		return "", false
	}
	return val, true
}

// Set stores the value. Errors are logged and swallowed.
func (c *Cache) Set(ctx context.Context, key, value string) {
	if !c.Enabled {
		return
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.log.Warn("cache.set_failed", "key", key, "error", err)
	}
}

// Invalidate removes keys. Errors are logged and swallowed.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache.invalidate_failed", "error", err)
	}
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
