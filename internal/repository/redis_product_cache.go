package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront-server/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check
var _ ProductCache = (*redisProductCache)(nil)

const (
	catalogFirstPageKey = "catalog:first_page"
	catalogFirstPageTTL = 60 * time.Second
)

type redisProductCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisProductCache creates a Redis-backed cache for the catalog's first page.
// Cache failures are logged and treated as misses; the catalog never depends on
// Redis being up.
func NewRedisProductCache(client *redis.Client, logger *zap.Logger) ProductCache {
	return &redisProductCache{
		client: client,
		logger: logger.Named("RedisProductCache"),
	}
}

func (c *redisProductCache) GetFirstPage(ctx context.Context) ([]models.Product, bool) {
	data, err := c.client.Get(ctx, catalogFirstPageKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Failed to read catalog cache", zap.Error(err))
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		c.logger.Warn("Corrupt catalog cache entry, dropping it", zap.Error(err))
		c.Invalidate(ctx)
		return nil, false
	}
	return products, true
}

func (c *redisProductCache) SetFirstPage(ctx context.Context, products []models.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		c.logger.Error("Failed to marshal catalog page for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, catalogFirstPageKey, data, catalogFirstPageTTL).Err(); err != nil {
		c.logger.Warn("Failed to write catalog cache", zap.Error(err))
	}
}

func (c *redisProductCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, catalogFirstPageKey).Err(); err != nil {
		c.logger.Warn("Failed to invalidate catalog cache", zap.Error(err))
	}
}
