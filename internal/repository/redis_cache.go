package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const cacheKeyPrefix = "liftlog:"

// RedisLocalCache implements domain.LocalCache using Redis. Entries have no
// TTL: the cache is expected to survive across sessions like device storage.
type RedisLocalCache struct {
	client *redis.Client
}

// NewRedisLocalCache creates a Redis backed local cache
func NewRedisLocalCache(client *redis.Client) *RedisLocalCache {
	return &RedisLocalCache{
		client: client,
	}
}

// Get retrieves a value from cache by key with OTel tracing
func (r *RedisLocalCache) Get(ctx context.Context, key string) (string, error) {
	tracer := otel.Tracer("redis")
	ctx, span := tracer.Start(ctx, "redis.Get",
		trace.WithAttributes(attribute.String("cache.key", key)),
	)
	defer span.End()

	value, err := r.client.Get(ctx, cacheKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			span.SetAttributes(attribute.String("cache.result", "miss"))
			return "", domain.ErrCacheMiss
		}
		span.RecordError(err)
		return "", fmt.Errorf("redis get error: %w", err)
	}

	span.SetAttributes(attribute.String("cache.result", "hit"))
	return value, nil
}

// Set stores a value in cache with OTel tracing
func (r *RedisLocalCache) Set(ctx context.Context, key string, value string) error {
	tracer := otel.Tracer("redis")
	ctx, span := tracer.Start(ctx, "redis.Set",
		trace.WithAttributes(
			attribute.String("cache.key", key),
			attribute.Int("cache.value_bytes", len(value)),
		),
	)
	defer span.End()

	if err := r.client.Set(ctx, cacheKeyPrefix+key, value, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("redis set error: %w", err)
	}

	return nil
}

// Delete removes keys from cache with OTel tracing
func (r *RedisLocalCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tracer := otel.Tracer("redis")
	ctx, span := tracer.Start(ctx, "redis.Delete",
		trace.WithAttributes(attribute.Int("cache.key_count", len(keys))),
	)
	defer span.End()

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = cacheKeyPrefix + key
	}
	if err := r.client.Del(ctx, prefixed...).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("redis delete error: %w", err)
	}

	return nil
}
