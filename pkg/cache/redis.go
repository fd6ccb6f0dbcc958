package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"goodwill-valuation/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisCache shares cached entries between API instances. Values are stored
// as JSON and come back from Get as []byte; use GetFromCache to decode them.
// Redis failures are logged and treated as misses.
type redisCache struct {
	client            *redis.Client
	prefix            string
	defaultExpiration time.Duration
	timeout           time.Duration
	log               *logger.Logger
}

func NewRedisCache(client *redis.Client, prefix string, defaultExpiration time.Duration, log *logger.Logger) Cache {
	return &redisCache{
		client:            client,
		prefix:            prefix,
		defaultExpiration: defaultExpiration,
		timeout:           time.Second,
		log:               log.Named("redis_cache"),
	}
}

func (c *redisCache) Set(key string, value interface{}, duration time.Duration) {
	b, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Failed to encode cache value", zap.String("key", key), zap.Error(err))
		return
	}

	// same duration rules as go-cache: 0 means default, negative means never
	switch {
	case duration == 0:
		duration = c.defaultExpiration
	case duration < 0:
		duration = 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	if err := c.client.Set(ctx, c.prefix+key, b, duration).Err(); err != nil {
		c.log.Warn("Failed to write cache entry", zap.String("key", key), zap.Error(err))
	}
}

func (c *redisCache) Get(key string) (interface{}, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Failed to read cache entry", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return b, true
}

func (c *redisCache) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		c.log.Warn("Failed to delete cache entry", zap.String("key", key), zap.Error(err))
	}
}

// Flush removes only the keys under this cache's prefix.
func (c *redisCache) Flush() {
	ctx := context.Background()
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("Failed to flush cache entry", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("Failed to scan cache keys", zap.Error(err))
	}
}
