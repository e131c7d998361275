package domain

import (
	"context"
	"sort"
)

const (
	DateLayout  = "2006-01-02" // ISO 8601 calendar date
	ClockLayout = "15:04"
)

// CompletedWorkout is an entry of the append-only workout log.
// PlanID and PlanName are denormalized so the record stays meaningful after the
// plan is deleted, and Exercises is a snapshot independent of the plan's current state.
type CompletedWorkout struct {
	ID        string            `json:"id" bson:"id"`
	PlanID    string            `json:"planId" bson:"plan_id"`
	PlanName  string            `json:"planName" bson:"plan_name"`
	Date      string            `json:"date" bson:"date"`
	StartTime string            `json:"startTime,omitempty" bson:"start_time,omitempty"`
	EndTime   string            `json:"endTime,omitempty" bson:"end_time,omitempty"`
	Duration  int               `json:"duration" bson:"duration"` // minutes, >= 1
	Exercises []WorkoutExercise `json:"exercises" bson:"exercises"`
	Notes     string            `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Volume sums weight * reps over every completed set of the workout
func (w CompletedWorkout) Volume() float64 {
	var total float64
	for _, we := range w.Exercises {
		for _, set := range we.Sets {
			total += set.Volume()
		}
	}
	return total
}

// SortWorkoutsByDate sorts ascending by date, then start time. The input order of
// a workout collection means nothing, so every read site sorts explicitly.
func SortWorkoutsByDate(workouts []CompletedWorkout) {
	sort.SliceStable(workouts, func(i, j int) bool {
		if workouts[i].Date != workouts[j].Date {
			return workouts[i].Date < workouts[j].Date
		}
		return workouts[i].StartTime < workouts[j].StartTime
	})
}

// SortWorkoutsRecentFirst is the display order
func SortWorkoutsRecentFirst(workouts []CompletedWorkout) {
	sort.SliceStable(workouts, func(i, j int) bool {
		if workouts[i].Date != workouts[j].Date {
			return workouts[i].Date > workouts[j].Date
		}
		return workouts[i].StartTime > workouts[j].StartTime
	})
}

// WorkoutRemote is the remote store for a user's completed workouts
type WorkoutRemote interface {
	ListForUser(ctx context.Context, userID string) ([]CompletedWorkout, error)
	Upsert(ctx context.Context, workout CompletedWorkout, userID string) error
	Delete(ctx context.Context, id string, userID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
