package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
	"github.com/herbalroots/wellness-hub/internal/pkg/metrics"
)

const (
	catalogKey      = "catalog:products:v1"
	defaultCacheTTL = 5 * time.Minute
)

// CatalogCache is a read-through cache for the product catalog. Redis
// failures never fail a read; the loader is called instead.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
	log    zerolog.Logger
}

// NewCatalogCache wraps client. ttl <= 0 uses defaultCacheTTL.
func NewCatalogCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CatalogCache{client: client, ttl: ttl, log: log}
}

// Products returns the cached catalog, calling load on a miss. Concurrent
// misses share one load.
func (c *CatalogCache) Products(ctx context.Context, load func(ctx context.Context) ([]domain.Product, error)) ([]domain.Product, error) {
	b, err := c.client.Get(ctx, catalogKey).Bytes()
	switch {
	case err == nil:
		var products []domain.Product
		if jsonErr := json.Unmarshal(b, &products); jsonErr == nil {
			metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return products, nil
		}
		c.log.Warn().Msg("corrupt catalog cache entry, reloading")
		metrics.CatalogCacheTotal.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
	default:
		c.log.Warn().Err(err).Msg("catalog cache read failed, loading from store")
		metrics.CatalogCacheTotal.WithLabelValues("error").Inc()
	}

	v, err, _ := c.sf.Do(catalogKey, func() (any, error) {
		products, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(products); err == nil {
			if err := c.client.Set(ctx, catalogKey, raw, c.ttl).Err(); err != nil {
				c.log.Warn().Err(err).Msg("catalog cache write failed")
			}
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]domain.Product)
	return append([]domain.Product(nil), shared...), nil
}

// Invalidate drops the cached catalog.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
