package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/singleflight"
)

const productCacheTTL = time.Minute

// CachedCatalogClient fronts the catalog with a short-lived Redis cache.
// Concurrent misses for the same product collapse into one upstream call.
// Checkout bypasses this layer on purpose: price-at-purchase must come from
// the live catalog, not a cached copy.
type CachedCatalogClient struct {
	inner CatalogClientInterface
	rdb   *redis.Client
	group singleflight.Group
}

func NewCachedCatalogClient(inner CatalogClientInterface, rdb *redis.Client) *CachedCatalogClient {
	return &CachedCatalogClient{inner: inner, rdb: rdb}
}

func (c *CachedCatalogClient) GetProductById(ctx context.Context, id uint64) (*ProductInfo, error) {
	cacheKey := fmt.Sprintf("product:%d", id)

	if c.rdb != nil {
		cached, err := c.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var p ProductInfo
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	v, err, _ := c.group.Do(cacheKey, func() (any, error) {
		p, err := c.inner.GetProductById(ctx, id)
		if err != nil {
			return nil, err
		}
		if c.rdb != nil && p != nil {
			if data, err := json.Marshal(p); err == nil {
				if err := c.rdb.Set(ctx, cacheKey, data, productCacheTTL).Err(); err != nil {
					log.Printf("product cache set failed for %d: %v", id, err)
				}
			}
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.(*ProductInfo), nil
}
