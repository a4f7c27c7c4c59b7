package services

import (
	"slices"

	"github.com/jamesvickers19/loco/internal/domain"
)

// Rank orders places to stay by the derived distance the display mode
// selects: average distance for ModeAverage, cumulative otherwise.
//
// The sort is stable, so places with equal keys keep their input order, and
// a place never yet aggregated sorts with distance zero. The input slice is
// left untouched.
func Rank(places []domain.PlaceToStay, mode domain.DistanceMode) []domain.PlaceToStay {
	out := make([]domain.PlaceToStay, len(places))
	copy(out, places)

	key := func(p domain.PlaceToStay) float64 {
		if mode == domain.ModeAverage {
			return p.AverageDistance
		}
		return p.CumulativeDistance
	}

	slices.SortStableFunc(out, func(a, b domain.PlaceToStay) int {
		ka, kb := key(a), key(b)
		if ka < kb {
			return -1
		}
		if ka > kb {
			return 1
		}
		return 0
	})

	return out
}
