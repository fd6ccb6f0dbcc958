package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetFromCache(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	c.Set("name", "acme", 0)
	c.Set("count", 3, 0)

	name, ok := GetFromCache[string](c, "name")
	assert.True(t, ok)
	assert.Equal(t, "acme", name)

	_, ok = GetFromCache[string](c, "count")
	assert.False(t, ok, "wrong type is a miss")

	_, ok = GetFromCache[string](c, "missing")
	assert.False(t, ok)

	c.Delete("name")
	_, ok = GetFromCache[string](c, "name")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	c.Set("short", 1, 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
}

func TestGetFromCache_DecodesEncodedValues(t *testing.T) {
	type entry struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	c := NewCache(time.Minute, time.Minute)
	c.Set("encoded", []byte(`{"name":"acme","count":2}`), 0)
	c.Set("broken", []byte(`{"name":`), 0)

	got, ok := GetFromCache[entry](c, "encoded")
	assert.True(t, ok)
	assert.Equal(t, entry{Name: "acme", Count: 2}, got)

	_, ok = GetFromCache[entry](c, "broken")
	assert.False(t, ok, "undecodable value is a miss")
}
