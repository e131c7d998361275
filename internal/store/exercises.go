package store

import (
	"context"

	"github.com/mansoorceksport/liftlog/internal/domain"
	log "github.com/sirupsen/logrus"
)

func exerciseID(e domain.Exercise) string { return e.ID }

// Exercises returns the user's exercise library. A signed in user without any
// exercises remotely gets the defaults populated once, then re-fetched.
func (s *Store) Exercises(ctx context.Context, seed []domain.Exercise) []domain.Exercise {
	return load(ctx, s, exercisesEntity, seed, s.fetchExercises)
}

func (s *Store) fetchExercises(ctx context.Context, userID string) ([]domain.Exercise, error) {
	remote := s.remotes.Exercises
	exercises, err := remote.ListForUser(ctx, userID)
	if err != nil || len(exercises) > 0 {
		return exercises, err
	}

	if err := remote.PopulateDefaults(ctx, userID); err != nil {
		s.metrics.Populate(ctx, false)
		log.WithField("user_id", userID).Warnf("populate default exercises: %s", err)
		return exercises, nil
	}
	s.metrics.Populate(ctx, true)
	log.WithField("user_id", userID).Info("populated default exercises")

	return remote.ListForUser(ctx, userID)
}

// SetExercises replaces the whole library, upserting every exercise remotely
func (s *Store) SetExercises(ctx context.Context, exercises []domain.Exercise) ([]domain.Exercise, error) {
	items := append([]domain.Exercise{}, exercises...)
	return commit(ctx, s, exercisesEntity, "set", items, func(ctx context.Context, userID string) error {
		for _, exercise := range items {
			if err := s.remotes.Exercises.Upsert(ctx, exercise, userID); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddExercise appends exercise, replacing an exercise with the same id
func (s *Store) AddExercise(ctx context.Context, current []domain.Exercise, exercise domain.Exercise) ([]domain.Exercise, error) {
	items := putByID(current, exercise, exerciseID)
	return commit(ctx, s, exercisesEntity, "add", items, func(ctx context.Context, userID string) error {
		return s.remotes.Exercises.Upsert(ctx, exercise, userID)
	})
}

func (s *Store) UpdateExercise(ctx context.Context, current []domain.Exercise, exercise domain.Exercise) ([]domain.Exercise, error) {
	items := replaceByID(current, exercise, exerciseID)
	return commit(ctx, s, exercisesEntity, "update", items, func(ctx context.Context, userID string) error {
		return s.remotes.Exercises.Upsert(ctx, exercise, userID)
	})
}

// RemoveExercise does not touch plans or workouts referencing id
func (s *Store) RemoveExercise(ctx context.Context, current []domain.Exercise, id string) ([]domain.Exercise, error) {
	items := removeByID(current, id, exerciseID)
	return commit(ctx, s, exercisesEntity, "remove", items, func(ctx context.Context, userID string) error {
		return s.remotes.Exercises.Delete(ctx, id, userID)
	})
}
