package store

import (
	"context"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

func planID(p domain.WorkoutPlan) string { return p.ID }

func (s *Store) Plans(ctx context.Context, seed []domain.WorkoutPlan) []domain.WorkoutPlan {
	return load(ctx, s, plansEntity, seed, func(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
		return s.remotes.Plans.ListForUser(ctx, userID)
	})
}

// SetPlans replaces every plan, upserting each remotely
func (s *Store) SetPlans(ctx context.Context, plans []domain.WorkoutPlan) ([]domain.WorkoutPlan, error) {
	items := append([]domain.WorkoutPlan{}, plans...)
	return commit(ctx, s, plansEntity, "set", items, func(ctx context.Context, userID string) error {
		for _, plan := range items {
			if err := s.remotes.Plans.Upsert(ctx, plan, userID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) AddPlan(ctx context.Context, current []domain.WorkoutPlan, plan domain.WorkoutPlan) ([]domain.WorkoutPlan, error) {
	items := putByID(current, plan, planID)
	return commit(ctx, s, plansEntity, "add", items, func(ctx context.Context, userID string) error {
		return s.remotes.Plans.Upsert(ctx, plan, userID)
	})
}

// UpdatePlan replaces the whole plan with the same id
func (s *Store) UpdatePlan(ctx context.Context, current []domain.WorkoutPlan, plan domain.WorkoutPlan) ([]domain.WorkoutPlan, error) {
	items := replaceByID(current, plan, planID)
	return commit(ctx, s, plansEntity, "update", items, func(ctx context.Context, userID string) error {
		return s.remotes.Plans.Upsert(ctx, plan, userID)
	})
}

func (s *Store) RemovePlan(ctx context.Context, current []domain.WorkoutPlan, id string) ([]domain.WorkoutPlan, error) {
	items := removeByID(current, id, planID)
	return commit(ctx, s, plansEntity, "remove", items, func(ctx context.Context, userID string) error {
		return s.remotes.Plans.Delete(ctx, id, userID)
	})
}
