package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(true)
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	etag := c.Set(ctx, "players:2024", []byte(`{"data":[]}`), time.Minute)
	assert.Equal(t, ComputeETag([]byte(`{"data":[]}`)), etag)

	data, got, ok := c.Get(ctx, "players:2024")
	require.True(t, ok)
	assert.Equal(t, etag, got)
	assert.JSONEq(t, `{"data":[]}`, string(data))

	now = now.Add(2 * time.Minute)
	_, _, ok = c.Get(ctx, "players:2024")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Stats(ctx)["expired_keys"])
	assert.Equal(t, 1, c.Evict(ctx))
	assert.Equal(t, 0, c.Stats(ctx)["total_keys"])
}

func TestMemoryClearAndDisabled(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(true)
	c.Set(ctx, "a", []byte("1"), time.Hour)
	require.NoError(t, c.Clear(ctx))
	_, _, ok := c.Get(ctx, "a")
	assert.False(t, ok)

	off := NewMemory(false)
	off.Set(ctx, "a", []byte("1"), time.Hour)
	_, _, ok = off.Get(ctx, "a")
	assert.False(t, ok)
}

func TestETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("x"))
	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"other"`, etag))
}

func TestTTLForSeason(t *testing.T) {
	assert.Equal(t, TTLHistorical, TTLForSeason(2020, 2024))
	assert.Equal(t, TTLCurrentSeason, TTLForSeason(2024, 2024))
	assert.Equal(t, TTLCurrentSeason, TTLForSeason(0, 2024))
}

func TestRedisRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	r, err := NewRedis(ctx, url)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Clear(ctx))
	etag := r.Set(ctx, "k", []byte("v"), time.Minute)
	data, got, ok := r.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, etag, got)
	assert.Equal(t, "v", string(data))

	require.NoError(t, r.Clear(ctx))
	_, _, ok = r.Get(ctx, "k")
	assert.False(t, ok)
}
