// Package store is the data access layer. It prefers the remote store, keeps a
// local cache warm per namespace, and falls back to the cache and then to a
// caller supplied seed when the remote cannot be reached.
//
// Reads never fail. Writes commit to the cache synchronously and mirror the
// single item mutation to the remote store in the background; mirror failures
// are logged and dropped.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/telemetry"
	log "github.com/sirupsen/logrus"
)

// DefaultCacheVersion is bumped whenever cached exercises or plans must not be
// trusted anymore
const DefaultCacheVersion = "3"

const (
	cacheVersionKey = "cache_version"

	exercisesEntity   = "exercises"
	plansEntity       = "workout_plans"
	workoutsEntity    = "completed_workouts"
	bodyWeightsEntity = "body_weights"
)

// versionedEntities are purged when the cache version changes. Workouts and
// body weights are left alone: without a user the cache is their only copy.
var versionedEntities = []string{exercisesEntity, plansEntity}

// Remotes groups the remote store of every entity type
type Remotes struct {
	Exercises   domain.ExerciseRemote
	Plans       domain.PlanRemote
	Workouts    domain.WorkoutRemote
	BodyWeights domain.BodyWeightRemote
}

type Options struct {
	// CacheVersion defaults to DefaultCacheVersion
	CacheVersion string
	// Metrics defaults to telemetry.DefaultStoreMetrics
	Metrics *telemetry.StoreMetrics
}

type Store struct {
	cache        domain.LocalCache
	users        domain.UserContext
	remotes      Remotes
	cacheVersion string
	metrics      *telemetry.StoreMetrics

	// versionMu serialises the version check so a purge never lands after a
	// concurrent read or write in the same namespace
	versionMu sync.Mutex
	mirrors   sync.WaitGroup
}

func New(cache domain.LocalCache, users domain.UserContext, remotes Remotes, opts Options) *Store {
	if opts.CacheVersion == "" {
		opts.CacheVersion = DefaultCacheVersion
	}
	if opts.Metrics == nil {
		opts.Metrics = telemetry.DefaultStoreMetrics()
	}
	return &Store{
		cache:        cache,
		users:        users,
		remotes:      remotes,
		cacheVersion: opts.CacheVersion,
		metrics:      opts.Metrics,
	}
}

// Wait blocks until every in-flight remote mirror has finished
func (s *Store) Wait() {
	s.mirrors.Wait()
}

func cacheKey(namespace, entity string) string {
	return namespace + ":" + entity
}

// namespace returns the cache namespace for ctx after making sure its cached
// collections were written by the current cache version. A different or missing
// marker purges the versioned collections and rewrites the marker.
func (s *Store) namespace(ctx context.Context) string {
	namespace := domain.CacheNamespace(ctx, s.users)
	versionKey := cacheKey(namespace, cacheVersionKey)

	s.versionMu.Lock()
	defer s.versionMu.Unlock()

	stored, err := s.cache.Get(ctx, versionKey)
	switch {
	case err == nil && stored == s.cacheVersion:
		return namespace
	case err != nil && !errors.Is(err, domain.ErrCacheMiss):
		log.WithField("key", versionKey).Warnf("read cache version: %s", err)
		return namespace
	}

	keys := make([]string, len(versionedEntities))
	for i, entity := range versionedEntities {
		keys[i] = cacheKey(namespace, entity)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.WithField("namespace", namespace).Warnf("purge cache for version %s: %s", s.cacheVersion, err)
		return namespace
	}
	if err := s.cache.Set(ctx, versionKey, s.cacheVersion); err != nil {
		log.WithField("namespace", namespace).Warnf("write cache version %s: %s", s.cacheVersion, err)
	}
	if stored != "" {
		log.WithField("namespace", namespace).Infof("cache migrated from version %s to %s", stored, s.cacheVersion)
	}
	return namespace
}

// mirror runs fn against the remote store in the background. The request
// context may be gone by the time it runs, so it is detached from cancellation.
func (s *Store) mirror(ctx context.Context, entity, op, userID string, fn func(ctx context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	s.mirrors.Add(1)
	go func() {
		defer s.mirrors.Done()
		if err := fn(ctx); err != nil {
			s.metrics.MirrorFailure(ctx, entity, op)
			log.WithFields(log.Fields{
				"entity":  entity,
				"op":      op,
				"user_id": userID,
			}).Warnf("remote mirror failed: %s", err)
		}
	}()
}
