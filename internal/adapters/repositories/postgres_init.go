package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jamesvickers19/loco/internal/domain"
)

// Initialize the database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id TEXT PRIMARY KEY,
		document JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_updated_at
	ON trips(updated_at);
	`

	statements := []string{
		createTripsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with trip snapshots from a JSON file. Used for
// local demo runs; existing trips with the same id are replaced.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed trips: read %q: %w", jsonPath, err)
	}

	var trips []domain.Trip
	if err := json.Unmarshal(raw, &trips); err != nil {
		return fmt.Errorf("seed trips: parse json: %w", err)
	}

	for i, trip := range trips {
		if strings.TrimSpace(trip.TripID) == "" {
			return fmt.Errorf("seed trips: item at index %d: trip_id cannot be empty", i+1)
		}
		if trip.TransportProfile != "" && !trip.TransportProfile.Valid() {
			return fmt.Errorf("seed trips: trip %q: unknown transport profile %q", trip.TripID, trip.TransportProfile)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed trips: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO trips (trip_id, document, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (trip_id) DO UPDATE
	SET document = EXCLUDED.document,
		updated_at = EXCLUDED.updated_at;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed trips: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, trip := range trips {
		doc, err := json.Marshal(trip)
		if err != nil {
			return fmt.Errorf("seed trips: encode trip %q: %w", trip.TripID, err)
		}
		if _, err := stmt.Exec(trip.TripID, doc); err != nil {
			return fmt.Errorf("seed trips: insert trip_id=%q: %w", trip.TripID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed trips: commit tx: %w", err)
	}

	return nil
}
