// README: Redis read-through cache for region tariffs. Quotes are never cached.
package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const tariffKeyPrefix = "pricing:tariff:%s"

type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(redis *redis.Client, ttl time.Duration) *Cache {
	return &Cache{redis: redis, ttl: ttl}
}

// Get returns the cached tariff and whether it was present.
func (c *Cache) Get(ctx context.Context, region string) (Config, bool, error) {
	b, err := c.redis.Get(ctx, tariffKey(region)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Config{}, false, nil
	}
	if err != nil {
		return Config{}, false, err
	}
	var r tariffRecord
	if err := json.Unmarshal(b, &r); err != nil {
		return Config{}, false, fmt.Errorf("decode cached tariff %s: %w", region, err)
	}
	cfg, err := r.config()
	if err != nil {
		return Config{}, false, err
	}
	return cfg, true, nil
}

func (c *Cache) Set(ctx context.Context, region string, cfg Config) error {
	b, err := json.Marshal(newTariffRecord(cfg))
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, tariffKey(region), b, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, region string) error {
	return c.redis.Del(ctx, tariffKey(region)).Err()
}

func tariffKey(region string) string {
	return fmt.Sprintf(tariffKeyPrefix, region)
}
