package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/seed"
	"github.com/mansoorceksport/liftlog/internal/stats"
	"github.com/mansoorceksport/liftlog/internal/store"
	"golang.org/x/sync/errgroup"
)

// DefaultSummaryWeeks is how many weeks of volume the summary charts
const DefaultSummaryWeeks = 8

// DashboardService aggregates the progress overview
type DashboardService struct {
	store *store.Store
	now   func() time.Time
}

func NewDashboardService(st *store.Store) *DashboardService {
	return &DashboardService{
		store: st,
		now:   time.Now,
	}
}

// Summary loads every collection concurrently and derives the progress figures
func (s *DashboardService) Summary(ctx context.Context, weeks int) (*domain.DashboardSummary, error) {
	if weeks <= 0 {
		weeks = DefaultSummaryWeeks
	}

	var (
		exercises   []domain.Exercise
		workouts    []domain.CompletedWorkout
		bodyWeights []domain.BodyWeightEntry
	)

	// Reads never fail, but a request abandoned mid-way must not be answered
	// with a summary built from partial fallbacks
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		exercises = s.store.Exercises(gCtx, seed.Exercises())
		return gCtx.Err()
	})
	g.Go(func() error {
		workouts = s.store.CompletedWorkouts(gCtx, nil)
		return gCtx.Err()
	})
	g.Go(func() error {
		bodyWeights = s.store.BodyWeights(gCtx, nil)
		return gCtx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}

	now := s.now()
	summary := &domain.DashboardSummary{
		TotalWorkouts:   len(workouts),
		TotalVolume:     stats.Volume(workouts),
		StreakWeeks:     stats.Streak(workouts, now),
		ThisWeek:        stats.ThisWeek(workouts, now),
		WeeklyVolume:    stats.WeeklyVolume(workouts, now, weeks),
		PersonalRecords: stats.PersonalRecords(workouts, exercises),
		BodyWeight:      stats.BodyWeightTrend(bodyWeights, now),
	}

	if len(workouts) > 0 {
		recent := append([]domain.CompletedWorkout{}, workouts...)
		domain.SortWorkoutsRecentFirst(recent)
		summary.LastWorkout = &recent[0]
	}
	return summary, nil
}
