package services

import (
	"context"
	"fmt"

	"github.com/jamesvickers19/loco/internal/domain"
	"github.com/jamesvickers19/loco/internal/ports"
)

// RecomputeTrip refreshes the distance aggregates of a stored trip with its
// current transport profile and persists the result.
//
// Recomputes for the same trip are not coordinated: an in-flight matrix call
// is never cancelled by a newer edit, so the last recompute to complete is
// the one later readers see, even if it was started earlier. On aggregation
// failure nothing is written and the stored trip keeps its previous
// aggregates.
func RecomputeTrip(
	ctx context.Context,
	tripID string,
	repo ports.TripRepository,
	provider ports.RoutingMatrixProvider,
) (*domain.Trip, error) {
	trip, err := repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("recompute trip: %w", err)
	}

	// Nothing to aggregate; leave the snapshot as stored.
	if len(trip.PlacesToStay) == 0 || len(trip.PointsOfInterest) == 0 {
		return trip, nil
	}

	places, err := Aggregate(ctx, trip.PlacesToStay, trip.PointsOfInterest, trip.TransportProfile, provider)
	if err != nil {
		return nil, fmt.Errorf("recompute trip %q: %w", tripID, err)
	}

	trip.PlacesToStay = places
	if err := repo.PutTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("recompute trip %q: store: %w", tripID, err)
	}

	return trip, nil
}
