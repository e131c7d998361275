package domain

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFinished = errors.New("workout session end time is before its start time")
)

// WorkoutSession is an in-progress workout started from a plan. It becomes a
// CompletedWorkout when finished.
type WorkoutSession struct {
	PlanID    string            `json:"planId"`
	PlanName  string            `json:"planName"`
	StartedAt time.Time         `json:"startedAt"`
	Exercises []WorkoutExercise `json:"exercises"`
}

// DurationMinutes rounds the elapsed time up to whole minutes, never below 1
func DurationMinutes(start, end time.Time) int {
	elapsed := end.Sub(start)
	minutes := int(elapsed / time.Minute)
	if elapsed%time.Minute > 0 {
		minutes++
	}
	if minutes < 1 {
		return 1
	}
	return minutes
}
