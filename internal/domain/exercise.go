package domain

import (
	"context"
	"strings"
)

// Equipment is the small fixed vocabulary an exercise can be performed with.
// An empty value means the equipment is unknown.
type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbells  Equipment = "dumbbells"
	EquipmentCable      Equipment = "cable"
	EquipmentMachine    Equipment = "machine"
	EquipmentBodyweight Equipment = "bodyweight"
)

// Valid reports whether e is empty or one of the known equipment values
func (e Equipment) Valid() bool {
	switch e {
	case "", EquipmentBarbell, EquipmentDumbbells, EquipmentCable, EquipmentMachine, EquipmentBodyweight:
		return true
	}
	return false
}

// Muscle groups known to the default library. MuscleGroup is free text, these are
// only the categories it is matched against.
var MuscleGroups = []string{"Chest", "Back", "Legs", "Shoulders", "Biceps", "Triceps", "Core", "Other"}

// Exercise represents a move in a user's exercise library
type Exercise struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	MuscleGroup string    `json:"muscleGroup" bson:"muscle_group"` // e.g., "Legs", "Chest"
	Equipment   Equipment `json:"equipment,omitempty" bson:"equipment,omitempty"`
}

// UnknownExercise is what consumers show for a reference whose exercise was deleted
func UnknownExercise(id string) Exercise {
	return Exercise{ID: id, Name: "Unknown exercise", MuscleGroup: "Other"}
}

// FindExercise looks an exercise up by id
func FindExercise(exercises []Exercise, id string) (Exercise, bool) {
	for _, ex := range exercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return Exercise{}, false
}

// FindExerciseByName looks an exercise up by name, ignoring case and surrounding spaces
func FindExerciseByName(exercises []Exercise, name string) (Exercise, bool) {
	name = strings.TrimSpace(name)
	for _, ex := range exercises {
		if strings.EqualFold(strings.TrimSpace(ex.Name), name) {
			return ex, true
		}
	}
	return Exercise{}, false
}

// MatchMuscleGroup maps free text onto one of MuscleGroups, "Other" when nothing matches
func MatchMuscleGroup(text string) string {
	for _, group := range MuscleGroups {
		if strings.Contains(strings.ToLower(text), strings.ToLower(group)) {
			return group
		}
	}
	return "Other"
}

// ExerciseRemote is the remote store for a user's exercise library
type ExerciseRemote interface {
	ListForUser(ctx context.Context, userID string) ([]Exercise, error)
	Upsert(ctx context.Context, exercise Exercise, userID string) error
	Delete(ctx context.Context, id string, userID string) error
	// PopulateDefaults bulk-seeds the default library for a user with no exercises
	PopulateDefaults(ctx context.Context, userID string) error
}
