package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jamesvickers19/loco/internal/domain"
	"github.com/jamesvickers19/loco/internal/ports"
)

// Postgres-backed implementation of the TripRepository port. Trips are
// stored as whole JSONB documents so every field round-trips exactly as
// written, including stale distance aggregates.
type PostgresTripRepository struct{ DB *sql.DB }

func NewPostgresTripRepository(db *sql.DB) *PostgresTripRepository {
	return &PostgresTripRepository{DB: db}
}

// Retrieve one trip by id.
func (r *PostgresTripRepository) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if r.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}

	if tripID == "" {
		return nil, errors.New("get trip: trip id must be non-empty")
	}

	query := `
	SELECT document
	FROM trips
	WHERE trip_id = $1;
	`

	var doc []byte
	err := r.DB.QueryRowContext(ctx, query, tripID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip %q: %w", tripID, ports.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %q: query trips table: %w", tripID, err)
	}

	var trip domain.Trip
	if err := json.Unmarshal(doc, &trip); err != nil {
		return nil, fmt.Errorf("get trip %q: decode document: %w", tripID, err)
	}
	trip.TripID = tripID

	return &trip, nil
}

// Store a trip snapshot, replacing any existing document with the same id.
func (r *PostgresTripRepository) PutTrip(ctx context.Context, trip *domain.Trip) error {
	if r.DB == nil {
		return errors.New("trip repository: DB is nil")
	}

	if trip == nil || trip.TripID == "" {
		return errors.New("put trip: trip id must be non-empty")
	}

	doc, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("put trip %q: encode document: %w", trip.TripID, err)
	}

	query := `
	INSERT INTO trips (trip_id, document, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (trip_id) DO UPDATE
	SET document = EXCLUDED.document,
		updated_at = EXCLUDED.updated_at;
	`

	if _, err := r.DB.ExecContext(ctx, query, trip.TripID, doc); err != nil {
		return fmt.Errorf("put trip %q: upsert trips table: %w", trip.TripID, err)
	}

	return nil
}

// Return all stored trips ordered by id.
func (r *PostgresTripRepository) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	if r.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}

	query := `
	SELECT trip_id, document
	FROM trips
	ORDER BY trip_id;
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, 16)
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}

		var trip domain.Trip
		if err := json.Unmarshal(doc, &trip); err != nil {
			return nil, fmt.Errorf("list trips: decode trip %q: %w", id, err)
		}
		trip.TripID = id
		trips = append(trips, &trip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}
