package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/jamesvickers19/loco/internal/adapters/routing"
	"github.com/jamesvickers19/loco/internal/domain"
	"github.com/jamesvickers19/loco/internal/ports"
)

type memTripRepo struct {
	mu    sync.Mutex
	trips map[string]domain.Trip
	puts  int
}

func newMemTripRepo(trips ...domain.Trip) *memTripRepo {
	m := make(map[string]domain.Trip, len(trips))
	for _, t := range trips {
		m[t.TripID] = t
	}
	return &memTripRepo{trips: m}
}

func (r *memTripRepo) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[tripID]
	if !ok {
		return nil, fmt.Errorf("get trip %q: %w", tripID, ports.ErrTripNotFound)
	}
	cp := t
	cp.PlacesToStay = append([]domain.PlaceToStay(nil), t.PlacesToStay...)
	cp.PointsOfInterest = append([]domain.PointOfInterest(nil), t.PointsOfInterest...)
	return &cp, nil
}

func (r *memTripRepo) PutTrip(ctx context.Context, trip *domain.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[trip.TripID] = *trip
	r.puts++
	return nil
}

func (r *memTripRepo) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	return nil, errors.New("not implemented")
}

func (r *memTripRepo) stored(t *testing.T, tripID string) domain.Trip {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	trip, ok := r.trips[tripID]
	if !ok {
		t.Fatalf("trip %q not stored", tripID)
	}
	return trip
}

// gatedMatrixProvider blocks each GetMatrix call until its gate receives a
// matrix, so tests control completion order independently of start order.
type gatedMatrixProvider struct {
	mu      sync.Mutex
	gates   []chan ports.Matrix
	started chan struct{}
	calls   int
}

func (p *gatedMatrixProvider) GetMatrix(
	ctx context.Context,
	points []domain.GeoPoint,
	profile domain.TransportProfile,
) (ports.Matrix, error) {
	p.mu.Lock()
	gate := p.gates[p.calls]
	p.calls++
	p.mu.Unlock()

	p.started <- struct{}{}
	return <-gate, nil
}

func pairMatrix(meters, seconds float64) ports.Matrix {
	return ports.Matrix{
		Distances: routing.Rows([][]float64{{0, meters}, {meters, 0}}),
		Durations: routing.Rows([][]float64{{0, seconds}, {seconds, 0}}),
	}
}

func testTrip(id string) domain.Trip {
	return domain.Trip{
		TripID:           id,
		PointsOfInterest: []domain.PointOfInterest{poi("T1", 0, 1)},
		PlacesToStay:     []domain.PlaceToStay{place("A", 0, 0)},
		DistanceMode:     domain.ModeAverage,
		TransportProfile: domain.ProfileWalking,
	}
}

func TestRecomputeTripPersistsAggregates(t *testing.T) {
	repo := newMemTripRepo(testTrip("t1"))
	provider := routing.NewMockMatrixProvider(pairMatrix(1000, 120))

	trip, err := RecomputeTrip(context.Background(), "t1", repo, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !within(trip.PlacesToStay[0].CumulativeDistance, 0.621371) {
		t.Errorf("cumulative = %v, want 0.621371", trip.PlacesToStay[0].CumulativeDistance)
	}
	if !within(trip.PlacesToStay[0].CumulativeTime, 2) {
		t.Errorf("cumulative time = %v, want 2", trip.PlacesToStay[0].CumulativeTime)
	}

	stored := repo.stored(t, "t1")
	if !within(stored.PlacesToStay[0].CumulativeDistance, 0.621371) {
		t.Errorf("stored cumulative = %v, want 0.621371", stored.PlacesToStay[0].CumulativeDistance)
	}
}

func TestRecomputeTripNotFound(t *testing.T) {
	repo := newMemTripRepo()
	provider := routing.NewMockMatrixProvider(ports.Matrix{})

	if _, err := RecomputeTrip(context.Background(), "missing", repo, provider); !errors.Is(err, ports.ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}

func TestRecomputeEmptyTripSkipsProvider(t *testing.T) {
	trip := testTrip("t1")
	trip.PointsOfInterest = nil
	repo := newMemTripRepo(trip)
	provider := routing.NewMockMatrixProvider(ports.Matrix{})

	out, err := RecomputeTrip(context.Background(), "t1", repo, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Calls != 0 {
		t.Fatalf("provider called %d times for empty trip", provider.Calls)
	}
	if repo.puts != 0 {
		t.Fatalf("snapshot rewritten %d times for empty trip", repo.puts)
	}
	if len(out.PlacesToStay) != 1 {
		t.Fatalf("places = %d, want 1", len(out.PlacesToStay))
	}
}

func TestRecomputeFailureLeavesStoredTrip(t *testing.T) {
	trip := testTrip("t1")
	trip.PlacesToStay[0].CumulativeDistance = 7
	repo := newMemTripRepo(trip)
	provider := &routing.MockMatrixProvider{Err: errors.New("HTTP 500")}

	if _, err := RecomputeTrip(context.Background(), "t1", repo, provider); err == nil {
		t.Fatal("expected error, got nil")
	}

	if repo.puts != 0 {
		t.Fatalf("snapshot rewritten %d times on failure", repo.puts)
	}
	stored := repo.stored(t, "t1")
	if stored.PlacesToStay[0].CumulativeDistance != 7 {
		t.Errorf("stored aggregates modified on failure: %+v", stored.PlacesToStay[0])
	}
}

// A recompute started earlier but finishing later overwrites the result of
// a newer one. In-flight matrix calls are never cancelled; the last
// completion wins even when it carries older input state.
func TestRecomputeLastCompletionWins(t *testing.T) {
	repo := newMemTripRepo(testTrip("t1"))
	provider := &gatedMatrixProvider{
		gates:   []chan ports.Matrix{make(chan ports.Matrix), make(chan ports.Matrix)},
		started: make(chan struct{}, 2),
	}

	done := make(chan error, 2)
	recompute := func() {
		_, err := RecomputeTrip(context.Background(), "t1", repo, provider)
		done <- err
	}

	go recompute()
	<-provider.started
	go recompute()
	<-provider.started

	// The second request completes first with a 2 km matrix.
	provider.gates[1] <- pairMatrix(2000, 240)
	if err := <-done; err != nil {
		t.Fatalf("second recompute failed: %v", err)
	}
	stored := repo.stored(t, "t1")
	if !within(stored.PlacesToStay[0].CumulativeDistance, 2*0.621371) {
		t.Fatalf("stored cumulative = %v, want %v", stored.PlacesToStay[0].CumulativeDistance, 2*0.621371)
	}

	// The first request completes afterwards with a 1 km matrix and wins.
	provider.gates[0] <- pairMatrix(1000, 120)
	if err := <-done; err != nil {
		t.Fatalf("first recompute failed: %v", err)
	}
	stored = repo.stored(t, "t1")
	if !within(stored.PlacesToStay[0].CumulativeDistance, 0.621371) {
		t.Fatalf("stored cumulative = %v, want 0.621371 (stale result should win)", stored.PlacesToStay[0].CumulativeDistance)
	}
}
