package cache

import (
	"testing"
	"time"

	"goodwill-valuation/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedisCache_UnreachableServerDegradesToMiss(t *testing.T) {
	core, recorded := observer.New(zap.WarnLevel)
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisCache(client, "test:", time.Minute, logger.Wrap(zap.New(core)))

	assert.NotPanics(t, func() {
		c.Set("k", map[string]int{"a": 1}, 0)
		c.Delete("k")
	})

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.GreaterOrEqual(t, recorded.FilterMessage("Failed to read cache entry").Len(), 1)
	assert.GreaterOrEqual(t, recorded.FilterMessage("Failed to write cache entry").Len(), 1)
}

func TestRedisCache_UnencodableValue(t *testing.T) {
	core, recorded := observer.New(zap.WarnLevel)
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	c := NewRedisCache(client, "test:", time.Minute, logger.Wrap(zap.New(core)))
	c.Set("k", make(chan int), 0)

	assert.Equal(t, 1, recorded.FilterMessage("Failed to encode cache value").Len())
}

func newTestRedisCache(t *testing.T) (*miniredis.Miniredis, Cache) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, NewRedisCache(client, "test:", time.Minute, logger.NewNop())
}

func TestRedisCache_SetGet(t *testing.T) {
	srv, c := newTestRedisCache(t)

	c.Set("k", map[string]int{"a": 1}, 0)

	assert.True(t, srv.Exists("test:k"), "key is stored under the prefix")
	got, ok := GetFromCache[map[string]int](c, "k")
	require.True(t, ok)
	assert.Equal(t, map[string]int{"a": 1}, got)

	c.Delete("k")
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestRedisCache_Expiration(t *testing.T) {
	srv, c := newTestRedisCache(t)

	tests := []struct {
		name     string
		duration time.Duration
		wantTTL  time.Duration
	}{
		{name: "zero uses default", duration: 0, wantTTL: time.Minute},
		{name: "negative never expires", duration: -1, wantTTL: 0},
		{name: "explicit", duration: 5 * time.Second, wantTTL: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.Set(tt.name, "v", tt.duration)
			assert.Equal(t, tt.wantTTL, srv.TTL("test:"+tt.name))
		})
	}

	srv.FastForward(2 * time.Minute)
	_, ok := c.Get("zero uses default")
	assert.False(t, ok)
	_, ok = c.Get("negative never expires")
	assert.True(t, ok)
}

func TestRedisCache_FlushKeepsOtherPrefixes(t *testing.T) {
	srv, c := newTestRedisCache(t)
	require.NoError(t, srv.Set("other:k", "keep"))

	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Flush()

	assert.False(t, srv.Exists("test:a"))
	assert.False(t, srv.Exists("test:b"))
	assert.True(t, srv.Exists("other:k"))
}
