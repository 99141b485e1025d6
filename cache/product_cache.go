package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ProductListCachePrefix = "products:v:"
	CacheVersionKey        = "products:version"
)

// ProductCache caches rendered storefront product listings under a
// versioned key. Invalidate bumps the version so every older key is
// unreachable and left to expire. A nil *ProductCache always misses.
type ProductCache struct {
	client store
	ttl    time.Duration
	logger *zap.Logger
}

func NewProductCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ProductCache {
	return &ProductCache{client: client, ttl: ttl, logger: logger}
}

// GetList returns the cached body for key, if any.
func (c *ProductCache) GetList(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	version, err := c.version(ctx)
	if err != nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, c.listKey(version, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Failed to read product list cache", zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// SetListAsync stores body under key without blocking the request.
func (c *ProductCache) SetListAsync(key string, body []byte) {
	if c == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.SetList(bgCtx, key, body)
	}()
}

func (c *ProductCache) SetList(ctx context.Context, key string, body []byte) {
	version, err := c.version(ctx)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.listKey(version, key), body, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache product list", zap.Error(err))
	}
}

// Invalidate makes every cached listing stale.
func (c *ProductCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	newVersion, err := c.client.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	c.logger.Info("Product cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

func (c *ProductCache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, CacheVersionKey).Int64()
	if err == nil && ver > 0 {
		return ver, nil
	}
	if errors.Is(err, redis.Nil) {
		// first writer wins; everybody else reads its value back
		if _, err := c.client.SetNX(ctx, CacheVersionKey, 1, 0).Result(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, CacheVersionKey).Int64()
	}
	if err == nil {
		err = fmt.Errorf("invalid cache version %d", ver)
	}
	return 0, err
}

func (c *ProductCache) listKey(version int64, key string) string {
	return fmt.Sprintf("%s%d:%s", ProductListCachePrefix, version, key)
}
