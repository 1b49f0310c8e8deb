package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

const keyPrefix = "propertyhub:"

// Cache stores JSON values with a fixed TTL. Store failures are logged and
// otherwise ignored; a nil *Cache is valid and caches nothing.
type Cache struct {
	kv     KV
	ttl    time.Duration
	logger *zap.Logger
}

func New(kv KV, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		kv:     kv,
		ttl:    ttl,
		logger: logger.Named("cache"),
	}
}

// Key builds the key of a cached read of resource.
func Key(resource string, parts ...string) string {
	return keyPrefix + resource + ":" + strings.Join(parts, ":")
}

// Load decodes the cached value of key into out and reports whether it was
// present.
func (c *Cache) Load(ctx context.Context, key string, out any) bool {
	if c == nil {
		return false
	}
	raw, err := c.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.logger.Warn("Cache read failed", zap.Error(err), zap.String("key", key))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		c.logger.Warn("Dropping undecodable cache entry", zap.Error(err), zap.String("key", key))
		_ = c.kv.Delete(ctx, key)
		return false
	}
	return true
}

func (c *Cache) Store(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Cache encode failed", zap.Error(err), zap.String("key", key))
		return
	}
	if err := c.kv.Set(ctx, key, string(raw), c.ttl); err != nil {
		c.logger.Warn("Cache write failed", zap.Error(err), zap.String("key", key))
	}
}

// InvalidateResource drops every cached read of resource.
func (c *Cache) InvalidateResource(ctx context.Context, resource string) {
	if c == nil {
		return
	}
	pattern := keyPrefix + resource + ":*"
	keys, err := c.kv.ScanKeys(ctx, pattern)
	if err != nil {
		c.logger.Warn("Cache scan failed", zap.Error(err), zap.String("pattern", pattern))
		return
	}
	if err := c.kv.Delete(ctx, keys...); err != nil {
		c.logger.Warn("Cache delete failed", zap.Error(err), zap.String("pattern", pattern))
		return
	}
	if len(keys) > 0 {
		c.logger.Debug("Invalidated cache entries", zap.String("resource", resource), zap.Int("count", len(keys)))
	}
}

// Through returns the cached value of key, or calls fetch and caches a
// successful result.
func Through[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	if c.Load(ctx, key, &cached) {
		return cached, nil
	}
	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}
	c.Store(ctx, key, v)
	return v, nil
}
