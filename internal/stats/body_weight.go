package stats

import (
	"sort"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

const trendWindowDays = 30

// BodyWeightTrend summarizes the log. The 30 day change is measured from the
// last entry at least 30 days old, or from the first entry when the log is younger.
func BodyWeightTrend(entries []domain.BodyWeightEntry, now time.Time) domain.BodyWeightTrend {
	if len(entries) == 0 {
		return domain.BodyWeightTrend{}
	}

	sorted := append([]domain.BodyWeightEntry{}, entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	first, latest := sorted[0], sorted[len(sorted)-1]
	trend := domain.BodyWeightTrend{
		Entries:       len(sorted),
		Latest:        latest.Weight,
		LatestDate:    latest.Date,
		ChangeTotal:   round(latest.Weight-first.Weight, 1),
		LowestWeight:  first.Weight,
		HighestWeight: first.Weight,
	}

	cutoff := now.AddDate(0, 0, -trendWindowDays).Format(domain.DateLayout)
	baseline := first
	for _, entry := range sorted {
		if entry.Weight < trend.LowestWeight {
			trend.LowestWeight = entry.Weight
		}
		if entry.Weight > trend.HighestWeight {
			trend.HighestWeight = entry.Weight
		}
		if entry.Date <= cutoff {
			baseline = entry
		}
	}
	trend.Change30Days = round(latest.Weight-baseline.Weight, 1)

	return trend
}
