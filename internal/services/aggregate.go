package services

import (
	"context"
	"fmt"

	"github.com/jamesvickers19/loco/internal/domain"
	"github.com/jamesvickers19/loco/internal/platform/obs"
	"github.com/jamesvickers19/loco/internal/ports"
)

// Fixed unit conversions. The mile factor is part of the aggregation
// contract and must not be swapped for a different approximation.
const milesPerKilometer = 0.621371

func metersToMiles(meters float64) float64 { return meters / 1000 * milesPerKilometer }

func secondsToMinutes(seconds float64) float64 { return seconds / 60 }

// Aggregate computes per-place travel metrics against every point of
// interest using a single routing matrix call.
//
// The combined coordinate list is places followed by points of interest, and
// the matrix response is read positionally against that order: row i is
// place i, column len(places)+j is point of interest j. For each place it
// fully replaces the four derived scalars and the per-POI leg map; inputs
// are never mutated.
//
// With no places or no points of interest there is nothing to compute (and
// no defined average), so the input slice is returned unchanged with no
// provider call. On any provider or matrix error the returned slice is nil
// and callers keep whatever aggregates they already had.
func Aggregate(
	ctx context.Context,
	places []domain.PlaceToStay,
	pois []domain.PointOfInterest,
	profile domain.TransportProfile,
	provider ports.RoutingMatrixProvider,
) (_ []domain.PlaceToStay, err error) {
	defer obs.Time(ctx, "services.Aggregate")(&err)

	if len(places) == 0 || len(pois) == 0 {
		return places, nil
	}

	if !profile.Valid() {
		return nil, fmt.Errorf("aggregate: unknown transport profile %q", profile)
	}

	points := make([]domain.GeoPoint, 0, len(places)+len(pois))
	for _, p := range places {
		points = append(points, p.Location.Coordinates)
	}
	for _, poi := range pois {
		points = append(points, poi.Location.Coordinates)
	}

	matrix, err := provider.GetMatrix(ctx, points, profile)
	if err != nil {
		return nil, fmt.Errorf("aggregate: get matrix: %w", err)
	}

	if err := checkMatrixShape(matrix, len(places), len(points)); err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	out := make([]domain.PlaceToStay, len(places))
	n := float64(len(pois))

	for i, place := range places {
		legs := make(map[string]domain.Leg, len(pois))
		var cumMiles, cumMinutes float64

		for j, poi := range pois {
			col := len(places) + j
			meters := matrix.Distances[i][col]
			seconds := matrix.Durations[i][col]
			if meters == nil || seconds == nil {
				return nil, &domain.UnreachablePairError{PlaceID: place.ID, POIID: poi.ID}
			}

			leg := domain.Leg{
				DistanceMiles:   metersToMiles(*meters),
				DurationMinutes: secondsToMinutes(*seconds),
			}
			legs[poi.ID] = leg
			cumMiles += leg.DistanceMiles
			cumMinutes += leg.DurationMinutes
		}

		place.DistancesToPOIs = legs
		place.CumulativeDistance = cumMiles
		place.AverageDistance = cumMiles / n
		place.CumulativeTime = cumMinutes
		place.AverageTime = cumMinutes / n
		out[i] = place
	}

	return out, nil
}

// checkMatrixShape validates the provider response covers every place row
// and every combined column before any cell is read.
func checkMatrixShape(m ports.Matrix, rows, cols int) error {
	if len(m.Distances) < rows || len(m.Durations) < rows {
		return fmt.Errorf(
			"matrix rows do not cover all places: distances=%d durations=%d places=%d",
			len(m.Distances), len(m.Durations), rows,
		)
	}
	for i := 0; i < rows; i++ {
		if len(m.Distances[i]) < cols || len(m.Durations[i]) < cols {
			return fmt.Errorf(
				"matrix row %d too short: distances=%d durations=%d points=%d",
				i, len(m.Distances[i]), len(m.Durations[i]), cols,
			)
		}
	}
	return nil
}
