package domain

// WeeklyVolume aggregates completed workouts of one Monday-start week.
// Volume = sum(Weight * Reps) for all completed sets
type WeeklyVolume struct {
	WeekStart string  `json:"weekStart"` // Monday, YYYY-MM-DD
	Workouts  int     `json:"workouts"`
	Sets      int     `json:"sets"`
	Reps      int     `json:"reps"`
	Volume    float64 `json:"volume"`
}
