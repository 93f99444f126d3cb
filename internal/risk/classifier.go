package risk

import (
	"errors"
	"sort"
	"strconv"
)

// ErrNoCityData signals that a city prediction set was empty. It marks a valid
// no-data state, not a failure.
var ErrNoCityData = errors.New("no city predictions available")

// Thresholds are the absolute tier boundaries for city classification.
// The defaults are tuned for the small-fraction probability scale
// (roughly 0.003-0.007) the per-country datasets use; datasets on a 0-1
// scale need their own thresholds.
type Thresholds struct {
	Moderate float64
	Higher   float64
}

// DefaultThresholds returns the boundaries used by the stock datasets.
func DefaultThresholds() Thresholds {
	return Thresholds{Moderate: 0.004, Higher: 0.006}
}

// Tier classifies a single probability. Boundaries are monotonic and the three
// tiers partition the domain without gaps or overlaps.
func (t Thresholds) Tier(p float64) Tier {
	switch {
	case p > t.Higher:
		return TierHigher
	case p > t.Moderate:
		return TierModerate
	default:
		return TierLower
	}
}

// ClassifyCities ranks a city probability set for display. Each city is
// classified independently against the absolute thresholds; only the bar
// length is scaled relative to the dataset maximum, so the highest-risk city
// always renders a full bar regardless of its tier. Rows are ordered by
// probability descending, ties by city name.
func ClassifyCities(preds CityProbabilities, th Thresholds) ([]CityRisk, error) {
	if len(preds) == 0 {
		return nil, ErrNoCityData
	}

	maxProb := 0.0
	for _, p := range preds {
		if p > maxProb {
			maxProb = p
		}
	}

	rows := make([]CityRisk, 0, len(preds))
	for city, p := range preds {
		bar := 0.0
		if maxProb > 0 {
			bar = p / maxProb
		}
		rows = append(rows, CityRisk{
			City:           city,
			Probability:    p,
			PercentageText: strconv.FormatFloat(p*100, 'f', 4, 64),
			Tier:           th.Tier(p),
			BarFraction:    bar,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Probability != rows[j].Probability {
			return rows[i].Probability > rows[j].Probability
		}
		return rows[i].City < rows[j].City
	})

	return rows, nil
}
