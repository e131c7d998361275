package domain

import "context"

// WorkoutSet is a single set inside a WorkoutExercise
type WorkoutSet struct {
	ID        string  `json:"id" bson:"id"`
	Reps      int     `json:"reps" bson:"reps"`
	Weight    float64 `json:"weight" bson:"weight"` // kilograms
	Completed bool    `json:"completed" bson:"completed"`
}

// Volume is weight * reps, counted only for completed sets
func (s WorkoutSet) Volume() float64 {
	if !s.Completed {
		return 0
	}
	return s.Weight * float64(s.Reps)
}

// WorkoutExercise links an exercise into a plan or a completed workout.
// Exercise is a copy taken when the link was made, so it survives the exercise
// being edited or deleted from the library.
type WorkoutExercise struct {
	ID         string       `json:"id" bson:"id"`
	ExerciseID string       `json:"exerciseId" bson:"exercise_id"`
	Exercise   Exercise     `json:"exercise" bson:"exercise"`
	Sets       []WorkoutSet `json:"sets" bson:"sets"`
}

// Resolve returns the library entry for ExerciseID, falling back to the embedded
// copy and then to UnknownExercise for orphaned references.
func (we WorkoutExercise) Resolve(library []Exercise) Exercise {
	if ex, ok := FindExercise(library, we.ExerciseID); ok {
		return ex
	}
	if we.Exercise.Name != "" {
		return we.Exercise
	}
	return UnknownExercise(we.ExerciseID)
}

// WorkoutPlan is a named, ordered list of exercises
type WorkoutPlan struct {
	ID          string            `json:"id" bson:"id"`
	Name        string            `json:"name" bson:"name"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	Exercises   []WorkoutExercise `json:"exercises" bson:"exercises"`
}

// PlanRemote is the remote store for a user's workout plans
type PlanRemote interface {
	ListForUser(ctx context.Context, userID string) ([]WorkoutPlan, error)
	Upsert(ctx context.Context, plan WorkoutPlan, userID string) error
	Delete(ctx context.Context, id string, userID string) error
}
