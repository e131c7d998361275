package store

import (
	"context"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

func bodyWeightDate(e domain.BodyWeightEntry) string { return e.Date }

func (s *Store) BodyWeights(ctx context.Context, seed []domain.BodyWeightEntry) []domain.BodyWeightEntry {
	return load(ctx, s, bodyWeightsEntity, seed, func(ctx context.Context, userID string) ([]domain.BodyWeightEntry, error) {
		return s.remotes.BodyWeights.ListForUser(ctx, userID)
	})
}

// AddBodyWeight upserts by date and keeps the log sorted ascending
func (s *Store) AddBodyWeight(ctx context.Context, current []domain.BodyWeightEntry, entry domain.BodyWeightEntry) ([]domain.BodyWeightEntry, error) {
	items := domain.UpsertBodyWeight(current, entry)
	return commit(ctx, s, bodyWeightsEntity, "add", items, func(ctx context.Context, userID string) error {
		return s.remotes.BodyWeights.Upsert(ctx, entry, userID)
	})
}

func (s *Store) RemoveBodyWeight(ctx context.Context, current []domain.BodyWeightEntry, date string) ([]domain.BodyWeightEntry, error) {
	items := removeByID(current, date, bodyWeightDate)
	return commit(ctx, s, bodyWeightsEntity, "remove", items, func(ctx context.Context, userID string) error {
		return s.remotes.BodyWeights.Delete(ctx, date, userID)
	})
}
