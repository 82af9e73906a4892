package cache

import (
	"context"
	"encoding/json"
	"github.com/redis/go-redis/v9"
	"storefront/models"
	"time"
)

const productsKey = "products"

// ProductCache keeps the full product list in a redis sorted set, scored by position.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl}
}

// Get reports ok=false when the list is not cached.
func (c *ProductCache) Get(ctx context.Context) ([]models.Product, bool, error) {
	members, err := c.rdb.ZRange(ctx, productsKey, 0, -1).Result()
	if err != nil {
		return nil, false, err
	}
	if len(members) == 0 {
		return nil, false, nil
	}

	products := make([]models.Product, 0, len(members))
	for _, member := range members {
		var product models.Product
		if err := json.Unmarshal([]byte(member), &product); err != nil {
			return nil, false, err
		}
		products = append(products, product)
	}
	return products, true, nil
}

func (c *ProductCache) Set(ctx context.Context, products []models.Product) error {
	members := make([]redis.Z, 0, len(products))
	for i, product := range products {
		productJSON, err := json.Marshal(product)
		if err != nil {
			return err
		}
		members = append(members, redis.Z{Score: float64(i), Member: productJSON})
	}

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, productsKey)
		if len(members) > 0 {
			pipe.ZAdd(ctx, productsKey, members...)
			if c.ttl > 0 {
				pipe.Expire(ctx, productsKey, c.ttl)
			}
		}
		return nil
	})
	return err
}

func (c *ProductCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, productsKey).Err()
}
