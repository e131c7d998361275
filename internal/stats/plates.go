package stats

import (
	"math"
	"sort"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

// DefaultBar is an Olympic barbell in kilograms
const DefaultBar = 20.0

// DefaultPlates are the plate sizes of a standard gym, in kilograms
var DefaultPlates = []float64{25, 20, 15, 10, 5, 2.5, 1.25}

const plateEpsilon = 1e-9

// Plates loads each side of the bar greedily with the heaviest plates first.
// Whatever cannot be loaded with the given plates is reported as Remainder.
func Plates(target, bar float64, available []float64) domain.PlateBreakdown {
	if bar <= 0 {
		bar = DefaultBar
	}
	if len(available) == 0 {
		available = DefaultPlates
	}
	plates := append([]float64{}, available...)
	sort.Sort(sort.Reverse(sort.Float64Slice(plates)))

	breakdown := domain.PlateBreakdown{
		Target: target,
		Bar:    bar,
		Plates: []domain.PlatePair{},
		Loaded: bar,
	}

	perSide := (target - bar) / 2
	for _, plate := range plates {
		if plate <= 0 || perSide < plate-plateEpsilon {
			continue
		}
		n := int(math.Floor(perSide/plate + plateEpsilon))
		breakdown.Plates = append(breakdown.Plates, domain.PlatePair{Weight: plate, PerSide: n})
		perSide -= float64(n) * plate
		breakdown.Loaded += 2 * float64(n) * plate
	}

	breakdown.Loaded = round(breakdown.Loaded, 2)
	breakdown.Remainder = round(target-breakdown.Loaded, 2)
	return breakdown
}
