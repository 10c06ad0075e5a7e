package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisCache(mr.Addr(), "", 0, time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	_, found, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "abc", `{"rating":7}`))
	val, found, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"rating":7}`, val)

	assert.True(t, mr.Exists("verdict:abc"))
	assert.Equal(t, time.Minute, mr.TTL("verdict:abc"))

	mr.FastForward(2 * time.Minute)
	_, found, err = c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCacheUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisCache(mr.Addr(), "", 0, time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	mr.Close()

	_, found, err := c.Get(context.Background(), "abc")
	assert.Error(t, err)
	assert.False(t, found)
}
