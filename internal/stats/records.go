package stats

import (
	"math"
	"sort"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// EstimatedOneRM uses the Epley formula. A single rep is the lift itself.
func EstimatedOneRM(weight float64, reps int) float64 {
	switch {
	case reps <= 0:
		return 0
	case reps == 1:
		return weight
	}
	return round(weight*(1+float64(reps)/30), 1)
}

// PersonalRecords returns the best completed set of every exercise, sorted by
// exercise name. Exercises are named from library, falling back to the copy
// stored in the workout for ids that are no longer in the library.
func PersonalRecords(workouts []domain.CompletedWorkout, library []domain.Exercise) []domain.PersonalRecord {
	sorted := append([]domain.CompletedWorkout{}, workouts...)
	domain.SortWorkoutsByDate(sorted)

	best := make(map[string]domain.PersonalRecord)
	for _, w := range sorted {
		for _, we := range w.Exercises {
			exercise := we.Resolve(library)
			for _, set := range we.Sets {
				if !set.Completed || set.Reps <= 0 || set.Weight <= 0 {
					continue
				}
				record := domain.PersonalRecord{
					ExerciseID:     we.ExerciseID,
					ExerciseName:   exercise.Name,
					MuscleGroup:    exercise.MuscleGroup,
					Weight:         set.Weight,
					Reps:           set.Reps,
					EstimatedOneRM: EstimatedOneRM(set.Weight, set.Reps),
					Date:           w.Date,
					WorkoutID:      w.ID,
				}
				// earliest workout keeps the record on ties
				if current, ok := best[we.ExerciseID]; !ok || record.Beats(current) {
					best[we.ExerciseID] = record
				}
			}
		}
	}

	records := make([]domain.PersonalRecord, 0, len(best))
	for _, record := range best {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].ExerciseName != records[j].ExerciseName {
			return records[i].ExerciseName < records[j].ExerciseName
		}
		return records[i].ExerciseID < records[j].ExerciseID
	})
	return records
}
