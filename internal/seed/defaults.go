// Package seed holds the default exercise library and starter plans. They are
// used when no real data is available from the remote store or the cache, and
// to populate a new user's library remotely.
package seed

import (
	"strconv"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

func ex(id, name, muscleGroup string, equipment domain.Equipment) domain.Exercise {
	return domain.Exercise{ID: id, Name: name, MuscleGroup: muscleGroup, Equipment: equipment}
}

var exercises = []domain.Exercise{
	// Legs
	ex("ex-barbell-squat", "Barbell Squat", "Legs", domain.EquipmentBarbell),
	ex("ex-leg-press", "Leg Press", "Legs", domain.EquipmentMachine),
	ex("ex-walking-lunge", "Walking Lunge", "Legs", domain.EquipmentDumbbells),
	ex("ex-leg-extension", "Leg Extension", "Legs", domain.EquipmentMachine),
	ex("ex-lying-leg-curl", "Lying Leg Curl", "Legs", domain.EquipmentMachine),
	ex("ex-romanian-deadlift", "Romanian Deadlift", "Legs", domain.EquipmentBarbell),
	ex("ex-calf-raise", "Calf Raise", "Legs", domain.EquipmentMachine),
	ex("ex-bulgarian-split-squat", "Bulgarian Split Squat", "Legs", domain.EquipmentDumbbells),

	// Chest
	ex("ex-bench-press", "Barbell Bench Press", "Chest", domain.EquipmentBarbell),
	ex("ex-incline-dumbbell-press", "Incline Dumbbell Press", "Chest", domain.EquipmentDumbbells),
	ex("ex-push-up", "Push Up", "Chest", domain.EquipmentBodyweight),
	ex("ex-cable-fly", "Cable Fly", "Chest", domain.EquipmentCable),
	ex("ex-dips", "Dips", "Chest", domain.EquipmentBodyweight),
	ex("ex-machine-chest-press", "Machine Chest Press", "Chest", domain.EquipmentMachine),

	// Back
	ex("ex-pull-up", "Pull Up", "Back", domain.EquipmentBodyweight),
	ex("ex-lat-pulldown", "Lat Pulldown", "Back", domain.EquipmentCable),
	ex("ex-barbell-row", "Barbell Row", "Back", domain.EquipmentBarbell),
	ex("ex-seated-cable-row", "Seated Cable Row", "Back", domain.EquipmentCable),
	ex("ex-dumbbell-row", "Single Arm Dumbbell Row", "Back", domain.EquipmentDumbbells),
	ex("ex-deadlift", "Deadlift", "Back", domain.EquipmentBarbell),
	ex("ex-face-pull", "Face Pull", "Back", domain.EquipmentCable),

	// Shoulders
	ex("ex-overhead-press", "Overhead Press", "Shoulders", domain.EquipmentBarbell),
	ex("ex-dumbbell-shoulder-press", "Dumbbell Shoulder Press", "Shoulders", domain.EquipmentDumbbells),
	ex("ex-lateral-raise", "Lateral Raise", "Shoulders", domain.EquipmentDumbbells),
	ex("ex-reverse-fly", "Reverse Fly", "Shoulders", domain.EquipmentMachine),

	// Arms
	ex("ex-barbell-curl", "Barbell Curl", "Biceps", domain.EquipmentBarbell),
	ex("ex-hammer-curl", "Hammer Curl", "Biceps", domain.EquipmentDumbbells),
	ex("ex-tricep-pushdown", "Tricep Pushdown", "Triceps", domain.EquipmentCable),
	ex("ex-overhead-tricep-extension", "Overhead Tricep Extension", "Triceps", domain.EquipmentDumbbells),

	// Core
	ex("ex-plank", "Plank", "Core", domain.EquipmentBodyweight),
	ex("ex-crunch", "Crunch", "Core", domain.EquipmentBodyweight),
	ex("ex-leg-raise", "Leg Raise", "Core", domain.EquipmentBodyweight),
}

// Exercises returns a fresh copy of the default exercise library
func Exercises() []domain.Exercise {
	out := make([]domain.Exercise, len(exercises))
	copy(out, exercises)
	return out
}

// planExercise builds a plan entry with n empty sets of reps at weight 0
func planExercise(exerciseID string, n, reps int) domain.WorkoutExercise {
	exercise, _ := domain.FindExercise(exercises, exerciseID)
	sets := make([]domain.WorkoutSet, n)
	for i := range sets {
		sets[i] = domain.WorkoutSet{ID: exerciseID + "-set-" + strconv.Itoa(i+1), Reps: reps}
	}
	return domain.WorkoutExercise{
		ID:         "we-" + exerciseID,
		ExerciseID: exerciseID,
		Exercise:   exercise,
		Sets:       sets,
	}
}

// Plans returns the starter workout plans
func Plans() []domain.WorkoutPlan {
	return []domain.WorkoutPlan{
		{
			ID:          "plan-push",
			Name:        "Push",
			Description: "Chest, shoulders and triceps",
			Exercises: []domain.WorkoutExercise{
				planExercise("ex-bench-press", 3, 8),
				planExercise("ex-overhead-press", 3, 8),
				planExercise("ex-incline-dumbbell-press", 3, 10),
				planExercise("ex-tricep-pushdown", 3, 12),
			},
		},
		{
			ID:          "plan-pull",
			Name:        "Pull",
			Description: "Back and biceps",
			Exercises: []domain.WorkoutExercise{
				planExercise("ex-deadlift", 3, 5),
				planExercise("ex-lat-pulldown", 3, 10),
				planExercise("ex-barbell-row", 3, 8),
				planExercise("ex-barbell-curl", 3, 12),
			},
		},
		{
			ID:          "plan-legs",
			Name:        "Legs",
			Description: "Quads, hamstrings and calves",
			Exercises: []domain.WorkoutExercise{
				planExercise("ex-barbell-squat", 3, 8),
				planExercise("ex-romanian-deadlift", 3, 10),
				planExercise("ex-leg-press", 3, 12),
				planExercise("ex-calf-raise", 3, 15),
			},
		},
	}
}
