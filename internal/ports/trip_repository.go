package ports

import (
	"context"
	"errors"

	"github.com/jamesvickers19/loco/internal/domain"
)

// Returned by TripRepository lookups for unknown trip ids.
var ErrTripNotFound = errors.New("trip not found")

// Port: a boundary for loading and storing Trip snapshots.
type TripRepository interface {
	// Retrieve one trip by id, or ErrTripNotFound.
	GetTrip(ctx context.Context, tripID string) (*domain.Trip, error)
	// Store a trip snapshot, replacing any existing one with the same id.
	PutTrip(ctx context.Context, trip *domain.Trip) error
	// Retrieve all stored trips ordered by id.
	ListTrips(ctx context.Context) ([]*domain.Trip, error)
}
