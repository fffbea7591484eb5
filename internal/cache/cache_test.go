package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return c, mr
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var got payload
	assert.False(t, c.GetJSON(ctx, "top-decorators", &got), "expected miss before set")

	c.SetJSON(ctx, "top-decorators", payload{Name: "a", Count: 3}, time.Minute)
	assert.True(t, c.GetJSON(ctx, "top-decorators", &got))
	assert.Equal(t, payload{Name: "a", Count: 3}, got)
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.SetJSON(ctx, "service-centers", payload{Name: "dhaka"}, time.Minute)
	c.Invalidate(ctx, "service-centers")

	var got payload
	assert.False(t, c.GetJSON(ctx, "service-centers", &got))
}

func TestCache_PoisonedEntryDropped(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	mr.Set("service-centers", "{not json")

	var got payload
	assert.False(t, c.GetJSON(ctx, "service-centers", &got))
	assert.False(t, mr.Exists("service-centers"), "poisoned entry should be deleted")
}

func TestCache_NilIsDisabled(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var got payload
	assert.False(t, c.GetJSON(ctx, "k", &got))
	c.SetJSON(ctx, "k", payload{}, time.Minute) // must not panic
	c.Invalidate(ctx, "k")
	assert.NoError(t, c.Close())
}
