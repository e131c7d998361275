package domain

// PersonalRecord is a user's heaviest completed set for an exercise
type PersonalRecord struct {
	ExerciseID     string  `json:"exerciseId"`
	ExerciseName   string  `json:"exerciseName"`
	MuscleGroup    string  `json:"muscleGroup"`
	Weight         float64 `json:"weight"`
	Reps           int     `json:"reps"`
	EstimatedOneRM float64 `json:"estimatedOneRM"` // Epley formula
	Date           string  `json:"date"`           // workout where the record was set
	WorkoutID      string  `json:"workoutId"`
}

// Beats reports whether r is a better record than other: heavier, or the same
// weight for more reps
func (r PersonalRecord) Beats(other PersonalRecord) bool {
	if r.Weight != other.Weight {
		return r.Weight > other.Weight
	}
	return r.Reps > other.Reps
}
