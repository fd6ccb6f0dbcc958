package cache

import (
	"encoding/json"
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache interface {
	Set(key string, value interface{}, duration time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
	Flush()
}

type goCache struct {
	internal *cache.Cache
}

// NewCache returns a new Cache instance with default expiration and cleanup interval
func NewCache(defaultExpiration, cleanupInterval time.Duration) Cache {
	return &goCache{
		internal: cache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *goCache) Set(key string, value interface{}, duration time.Duration) {
	c.internal.Set(key, value, duration)
}

func (c *goCache) Get(key string) (interface{}, bool) {
	return c.internal.Get(key)
}

func (c *goCache) Delete(key string) {
	c.internal.Delete(key)
}

func (c *goCache) Flush() {
	c.internal.Flush()
}

// GetFromCache returns the value under key when it exists and has type T.
// Encoded values from a remote cache are decoded into T.
func GetFromCache[T any](c Cache, key string) (T, bool) {
	var zero T
	val, found := c.Get(key)
	if !found {
		return zero, false
	}
	if typedVal, ok := val.(T); ok {
		return typedVal, true
	}
	if raw, ok := val.([]byte); ok {
		var decoded T
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return zero, false
		}
		return decoded, true
	}
	return zero, false
}
