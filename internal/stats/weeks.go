// Package stats derives progress figures from the workout and body weight logs.
// Every weekly figure uses calendar weeks starting on Monday.
package stats

import (
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

// WeekStart returns midnight of the Monday of t's week, in t's location
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	offset := (int(midnight.Weekday()) + 6) % 7 // days since Monday
	return midnight.AddDate(0, 0, -offset)
}

// workoutWeek is the Monday of the workout's week; ok is false for unparseable dates
func workoutWeek(w domain.CompletedWorkout, loc *time.Location) (time.Time, bool) {
	date, err := time.ParseInLocation(domain.DateLayout, w.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return WeekStart(date), true
}

// Volume sums weight * reps over the completed sets of every workout
func Volume(workouts []domain.CompletedWorkout) float64 {
	var total float64
	for _, w := range workouts {
		total += w.Volume()
	}
	return round(total, 1)
}

// ThisWeek summarizes the workouts of now's week
func ThisWeek(workouts []domain.CompletedWorkout, now time.Time) domain.WeekSummary {
	start := WeekStart(now)
	summary := domain.WeekSummary{WeekStart: start.Format(domain.DateLayout)}
	for _, w := range workouts {
		if week, ok := workoutWeek(w, now.Location()); ok && week.Equal(start) {
			summary.Workouts++
			summary.Minutes += w.Duration
			summary.Volume += w.Volume()
		}
	}
	summary.Volume = round(summary.Volume, 1)
	return summary
}

// WeeklyVolume returns one entry per week for the last weeks weeks including
// the current one, oldest first. Weeks without workouts are present with zeros.
func WeeklyVolume(workouts []domain.CompletedWorkout, now time.Time, weeks int) []domain.WeeklyVolume {
	if weeks <= 0 {
		return []domain.WeeklyVolume{}
	}

	current := WeekStart(now)
	first := current.AddDate(0, 0, -7*(weeks-1))
	out := make([]domain.WeeklyVolume, weeks)
	index := make(map[string]int, weeks)
	for i := range out {
		start := first.AddDate(0, 0, 7*i).Format(domain.DateLayout)
		out[i].WeekStart = start
		index[start] = i
	}

	for _, w := range workouts {
		week, ok := workoutWeek(w, now.Location())
		if !ok {
			continue
		}
		i, ok := index[week.Format(domain.DateLayout)]
		if !ok {
			continue
		}
		out[i].Workouts++
		for _, we := range w.Exercises {
			for _, set := range we.Sets {
				if !set.Completed {
					continue
				}
				out[i].Sets++
				out[i].Reps += set.Reps
				out[i].Volume += set.Volume()
			}
		}
	}

	for i := range out {
		out[i].Volume = round(out[i].Volume, 1)
	}
	return out
}

// Streak counts consecutive weeks with at least one workout. It ends at the
// current week, or at the previous one while the current week is still empty.
func Streak(workouts []domain.CompletedWorkout, now time.Time) int {
	active := make(map[string]bool)
	for _, w := range workouts {
		if week, ok := workoutWeek(w, now.Location()); ok {
			active[week.Format(domain.DateLayout)] = true
		}
	}

	week := WeekStart(now)
	if !active[week.Format(domain.DateLayout)] {
		week = week.AddDate(0, 0, -7)
	}

	streak := 0
	for active[week.Format(domain.DateLayout)] {
		streak++
		week = week.AddDate(0, 0, -7)
	}
	return streak
}
