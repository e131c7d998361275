package domain

// WeekSummary is the "this week" card
type WeekSummary struct {
	WeekStart string  `json:"weekStart"`
	Workouts  int     `json:"workouts"`
	Minutes   int     `json:"minutes"`
	Volume    float64 `json:"volume"`
}

// BodyWeightTrend summarizes the body weight log
type BodyWeightTrend struct {
	Entries       int     `json:"entries"`
	Latest        float64 `json:"latest"`
	LatestDate    string  `json:"latestDate"`
	ChangeTotal   float64 `json:"changeTotal"`  // kg since the first entry (positive = gained)
	Change30Days  float64 `json:"change30Days"` // kg over the last 30 days
	LowestWeight  float64 `json:"lowestWeight"`
	HighestWeight float64 `json:"highestWeight"`
}

// PlatePair is a number of identical plates loaded on each side of the bar
type PlatePair struct {
	Weight  float64 `json:"weight"`
	PerSide int     `json:"perSide"`
}

// PlateBreakdown is how to load a barbell for a target weight
type PlateBreakdown struct {
	Target    float64     `json:"target"`
	Bar       float64     `json:"bar"`
	Plates    []PlatePair `json:"plates"`
	Loaded    float64     `json:"loaded"`    // bar + plates actually loaded
	Remainder float64     `json:"remainder"` // target - loaded, not loadable with the plates given
}

// DashboardSummary is the progress overview
type DashboardSummary struct {
	TotalWorkouts   int               `json:"totalWorkouts"`
	TotalVolume     float64           `json:"totalVolume"`
	StreakWeeks     int               `json:"streakWeeks"`
	ThisWeek        WeekSummary       `json:"thisWeek"`
	WeeklyVolume    []WeeklyVolume    `json:"weeklyVolume"`
	PersonalRecords []PersonalRecord  `json:"personalRecords"`
	BodyWeight      BodyWeightTrend   `json:"bodyWeight"`
	LastWorkout     *CompletedWorkout `json:"lastWorkout,omitempty"`
}
