package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/telemetry"
	log "github.com/sirupsen/logrus"
)

// readCache returns the cached collection under key. found is false when the
// entry is absent, empty or corrupt; corrupt entries are purged.
func readCache[T any](ctx context.Context, s *Store, entity, key string) (items []T, found bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			log.WithField("key", key).Warnf("read local cache: %s", err)
		}
		return nil, false
	}

	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.WithField("key", key).Warnf("%s: %s", domain.ErrCacheCorrupt, err)
		s.metrics.CorruptPurge(ctx, entity)
		if err := s.cache.Delete(ctx, key); err != nil {
			log.WithField("key", key).Warnf("purge corrupt cache entry: %s", err)
		}
		return nil, false
	}
	return items, len(items) > 0
}

func writeCache[T any](ctx context.Context, cache domain.LocalCache, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return cache.Set(ctx, key, string(raw))
}

// load implements the read contract for one entity type
func load[T any](ctx context.Context, s *Store, entity string, seed []T, fetch func(ctx context.Context, userID string) ([]T, error)) []T {
	key := cacheKey(s.namespace(ctx), entity)

	userID, ok := s.users.CurrentUserID(ctx)
	if !ok {
		if cached, found := readCache[T](ctx, s, entity, key); found {
			return cached
		}
		return seed
	}

	items, err := fetch(ctx, userID)
	if err != nil {
		logger := log.WithFields(log.Fields{"entity": entity, "user_id": userID})
		if cached, found := readCache[T](ctx, s, entity, key); found {
			logger.Warnf("remote fetch failed, serving local cache: %s", err)
			s.metrics.Fallback(ctx, entity, telemetry.SourceCache)
			return cached
		}
		logger.Warnf("remote fetch failed, serving defaults: %s", err)
		s.metrics.Fallback(ctx, entity, telemetry.SourceSeed)
		return seed
	}

	if items == nil {
		items = []T{}
	}
	if err := writeCache(ctx, s.cache, key, items); err != nil {
		log.WithField("key", key).Warnf("cache remote result: %s", err)
	}
	return items
}

// commit implements the write contract: items becomes the cached collection and,
// when a user is signed in, mirror replays the single item change remotely.
func commit[T any](ctx context.Context, s *Store, entity, op string, items []T, mirror func(ctx context.Context, userID string) error) ([]T, error) {
	key := cacheKey(s.namespace(ctx), entity)
	if err := writeCache(ctx, s.cache, key, items); err != nil {
		log.WithField("key", key).Errorf("%s: %s", domain.ErrCacheWrite, err)
		return items, fmt.Errorf("%w: %s: %v", domain.ErrCacheWrite, key, err)
	}

	if userID, ok := s.users.CurrentUserID(ctx); ok && mirror != nil {
		s.mirror(ctx, entity, op, userID, func(ctx context.Context) error {
			return mirror(ctx, userID)
		})
	}
	return items, nil
}

// putByID replaces the item with the same id in place or appends it. The
// input is never modified.
func putByID[T any](items []T, item T, id func(T) string) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	for i := range out {
		if id(out[i]) == id(item) {
			out[i] = item
			return out
		}
	}
	return append(out, item)
}

// replaceByID replaces the item with the same id, leaving the collection as is
// when there is none
func replaceByID[T any](items []T, item T, id func(T) string) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		if id(out[i]) == id(item) {
			out[i] = item
		}
	}
	return out
}

func removeByID[T any](items []T, key string, id func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if id(item) != key {
			out = append(out, item)
		}
	}
	return out
}
