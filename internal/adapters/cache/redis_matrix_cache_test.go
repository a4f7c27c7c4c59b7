package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jamesvickers19/loco/internal/domain"
	"github.com/jamesvickers19/loco/internal/ports"
)

func newTestCache(t *testing.T) (*RedisMatrixCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisMatrixCache(rdb, time.Minute), mr
}

func f(v float64) *float64 { return &v }

func TestMatrixCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	points := []domain.GeoPoint{{Lat: 47.6, Lon: -122.33}, {Lat: 47.61, Lon: -122.34}}
	matrix := ports.Matrix{
		// One nil cell: unreachable pairs must survive the cache as nil.
		Distances: [][]*float64{{f(0), f(1000)}, {nil, f(0)}},
		Durations: [][]*float64{{f(0), f(60)}, {nil, f(0)}},
	}

	if err := c.Put(ctx, domain.ProfileWalking, points, matrix); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, domain.ProfileWalking, points)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}

	if got.Distances[0][1] == nil || *got.Distances[0][1] != 1000 {
		t.Errorf("distance[0][1] = %v, want 1000", got.Distances[0][1])
	}
	if got.Distances[1][0] != nil {
		t.Errorf("distance[1][0] = %v, want nil", *got.Distances[1][0])
	}
	if got.Durations[0][1] == nil || *got.Durations[0][1] != 60 {
		t.Errorf("duration[0][1] = %v, want 60", got.Durations[0][1])
	}
}

func TestMatrixCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	points := []domain.GeoPoint{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}

	_, ok, err := c.Get(ctx, domain.ProfileWalking, points)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestMatrixCacheKeyedByProfile(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	points := []domain.GeoPoint{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}
	matrix := ports.Matrix{
		Distances: [][]*float64{{f(0), f(500)}, {f(500), f(0)}},
		Durations: [][]*float64{{f(0), f(30)}, {f(30), f(0)}},
	}

	if err := c.Put(ctx, domain.ProfileWalking, points, matrix); err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, ok, _ := c.Get(ctx, domain.ProfileCycling, points); ok {
		t.Fatal("cycling lookup hit a walking entry")
	}
	if _, ok, _ := c.Get(ctx, domain.ProfileWalking, points[:1]); ok {
		t.Fatal("lookup with different points hit")
	}
}

func TestMatrixCacheEntryExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	points := []domain.GeoPoint{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}
	matrix := ports.Matrix{
		Distances: [][]*float64{{f(0), f(500)}, {f(500), f(0)}},
		Durations: [][]*float64{{f(0), f(30)}, {f(30), f(0)}},
	}

	if err := c.Put(ctx, domain.ProfileWalking, points, matrix); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, ok, _ := c.Get(ctx, domain.ProfileWalking, points); ok {
		t.Fatal("expected expired entry to miss")
	}
}
