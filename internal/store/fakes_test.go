package store

import (
	"context"
	"errors"
	"sync"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

var errRemoteDown = errors.New("connection refused")

type fakeCache struct {
	mu      sync.Mutex
	data    map[string]string
	failSet bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return value, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSet {
		return errors.New("quota exceeded")
	}
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.data, key)
	}
	return nil
}

func (c *fakeCache) raw(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.data[key]
	return value, ok
}

// fakeRemote is an in-memory remote store for one entity type
type fakeRemote[T any] struct {
	mu       sync.Mutex
	items    map[string][]T
	id       func(T) string
	listErr  error
	writeErr error
	lists    int
	upserts  []T
	deletes  []string
	cleared  []string
}

func newFakeRemote[T any](id func(T) string) *fakeRemote[T] {
	return &fakeRemote[T]{items: map[string][]T{}, id: id}
}

func (r *fakeRemote[T]) ListForUser(_ context.Context, userID string) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]T{}, r.items[userID]...), nil
}

func (r *fakeRemote[T]) upsert(item T, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	r.upserts = append(r.upserts, item)
	r.items[userID] = putByID(r.items[userID], item, r.id)
	return nil
}

func (r *fakeRemote[T]) Delete(_ context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	r.deletes = append(r.deletes, id)
	r.items[userID] = removeByID(r.items[userID], id, r.id)
	return nil
}

func (r *fakeRemote[T]) DeleteAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	r.cleared = append(r.cleared, userID)
	delete(r.items, userID)
	return nil
}

func (r *fakeRemote[T]) seed(userID string, items ...T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[userID] = items
}

type fakeExerciseRemote struct {
	*fakeRemote[domain.Exercise]
	defaults    []domain.Exercise
	populateErr error
	populated   int
}

func (r *fakeExerciseRemote) Upsert(_ context.Context, exercise domain.Exercise, userID string) error {
	return r.upsert(exercise, userID)
}

func (r *fakeExerciseRemote) PopulateDefaults(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.populated++
	if r.populateErr != nil {
		return r.populateErr
	}
	r.items[userID] = append([]domain.Exercise{}, r.defaults...)
	return nil
}

type fakePlanRemote struct{ *fakeRemote[domain.WorkoutPlan] }

func (r fakePlanRemote) Upsert(_ context.Context, plan domain.WorkoutPlan, userID string) error {
	return r.upsert(plan, userID)
}

type fakeWorkoutRemote struct{ *fakeRemote[domain.CompletedWorkout] }

func (r fakeWorkoutRemote) Upsert(_ context.Context, workout domain.CompletedWorkout, userID string) error {
	return r.upsert(workout, userID)
}

type fakeBodyWeightRemote struct{ *fakeRemote[domain.BodyWeightEntry] }

func (r fakeBodyWeightRemote) Upsert(_ context.Context, entry domain.BodyWeightEntry, userID string) error {
	return r.upsert(entry, userID)
}

type testEnv struct {
	store       *Store
	cache       *fakeCache
	exercises   *fakeExerciseRemote
	plans       fakePlanRemote
	workouts    fakeWorkoutRemote
	bodyWeights fakeBodyWeightRemote
}

func newTestEnv() *testEnv {
	return newTestEnvWith(Options{})
}

func newTestEnvWith(opts Options) *testEnv {
	env := &testEnv{
		cache:       newFakeCache(),
		exercises:   &fakeExerciseRemote{fakeRemote: newFakeRemote(exerciseID)},
		plans:       fakePlanRemote{newFakeRemote(planID)},
		workouts:    fakeWorkoutRemote{newFakeRemote(func(w domain.CompletedWorkout) string { return w.ID })},
		bodyWeights: fakeBodyWeightRemote{newFakeRemote(bodyWeightDate)},
	}
	env.store = New(env.cache, domain.ContextUser{}, Remotes{
		Exercises:   env.exercises,
		Plans:       env.plans,
		Workouts:    env.workouts,
		BodyWeights: env.bodyWeights,
	}, opts)
	return env
}

func userCtx(userID string) context.Context {
	return domain.WithUserID(context.Background(), userID)
}
