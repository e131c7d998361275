package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (*RedisLocalCache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisLocalCache(client), mr
}

func TestRedisLocalCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t)

	_, err := cache.Get(ctx, "user:u1:exercises")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "user:u1:exercises", `[{"id":"ex-1"}]`))

	value, err := cache.Get(ctx, "user:u1:exercises")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"ex-1"}]`, value)

	// keys are prefixed and never expire
	assert.True(t, mr.Exists("liftlog:user:u1:exercises"))
	assert.Zero(t, mr.TTL("liftlog:user:u1:exercises"))

	require.NoError(t, cache.Set(ctx, "user:u1:plans", `[]`))
	require.NoError(t, cache.Delete(ctx, "user:u1:exercises", "user:u1:plans"))

	_, err = cache.Get(ctx, "user:u1:exercises")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	_, err = cache.Get(ctx, "user:u1:plans")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisLocalCache_DeleteNoKeys(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	assert.NoError(t, cache.Delete(context.Background()))
}

func TestRedisLocalCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t)
	mr.Close()

	_, err := cache.Get(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)

	assert.Error(t, cache.Set(ctx, "k", "v"))
}
