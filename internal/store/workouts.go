package store

import (
	"context"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

// CompletedWorkouts returns the workout log in no particular order
func (s *Store) CompletedWorkouts(ctx context.Context, seed []domain.CompletedWorkout) []domain.CompletedWorkout {
	return load(ctx, s, workoutsEntity, seed, func(ctx context.Context, userID string) ([]domain.CompletedWorkout, error) {
		return s.remotes.Workouts.ListForUser(ctx, userID)
	})
}

func (s *Store) AddCompletedWorkout(ctx context.Context, current []domain.CompletedWorkout, workout domain.CompletedWorkout) ([]domain.CompletedWorkout, error) {
	items := append(append(make([]domain.CompletedWorkout, 0, len(current)+1), current...), workout)
	return commit(ctx, s, workoutsEntity, "add", items, func(ctx context.Context, userID string) error {
		return s.remotes.Workouts.Upsert(ctx, workout, userID)
	})
}

// MergeCompletedWorkouts appends imported workouts and sorts the log ascending
// by date
func (s *Store) MergeCompletedWorkouts(ctx context.Context, current, imported []domain.CompletedWorkout) ([]domain.CompletedWorkout, error) {
	items := append(append(make([]domain.CompletedWorkout, 0, len(current)+len(imported)), current...), imported...)
	domain.SortWorkoutsByDate(items)

	incoming := append([]domain.CompletedWorkout{}, imported...)
	return commit(ctx, s, workoutsEntity, "merge", items, func(ctx context.Context, userID string) error {
		for _, workout := range incoming {
			if err := s.remotes.Workouts.Upsert(ctx, workout, userID); err != nil {
				return err
			}
		}
		return nil
	})
}

// ClearCompletedWorkouts empties the whole workout log
func (s *Store) ClearCompletedWorkouts(ctx context.Context) ([]domain.CompletedWorkout, error) {
	return commit(ctx, s, workoutsEntity, "clear", []domain.CompletedWorkout{}, func(ctx context.Context, userID string) error {
		return s.remotes.Workouts.DeleteAllForUser(ctx, userID)
	})
}
