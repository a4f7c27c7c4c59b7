package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jamesvickers19/loco/internal/domain"
	"github.com/jamesvickers19/loco/internal/platform/obs"
	"github.com/jamesvickers19/loco/internal/ports"
)

// RedisMatrixCache is a redis-backed cache for whole routing matrix
// responses, keyed by transport profile and coordinate list. Entries expire
// after the configured TTL; traffic-dependent durations go stale quickly.
type RedisMatrixCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisMatrixCache(rdb *redis.Client, ttl time.Duration) *RedisMatrixCache {
	return &RedisMatrixCache{rdb: rdb, ttl: ttl}
}

type cachedMatrix struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// matrixKey renders a deterministic cache key. Coordinates are rounded to
// six decimals so equal inputs hash equal regardless of float formatting.
func matrixKey(profile domain.TransportProfile, points []domain.GeoPoint) string {
	var b strings.Builder
	b.WriteString("matrix:")
	b.WriteString(string(profile))
	b.WriteByte(':')
	for i, p := range points {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.FormatFloat(p.Lon, 'f', 6, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(p.Lat, 'f', 6, 64))
	}
	return b.String()
}

// Fetch a cached matrix. The second return value reports a hit.
func (c *RedisMatrixCache) Get(
	ctx context.Context,
	profile domain.TransportProfile,
	points []domain.GeoPoint,
) (_ ports.Matrix, _ bool, err error) {
	defer obs.Time(ctx, "matrix.cache.Get")(&err)

	if c.rdb == nil {
		return ports.Matrix{}, false, errors.New("matrix cache: redis client is nil")
	}

	if len(points) == 0 {
		return ports.Matrix{}, false, nil
	}

	raw, err := c.rdb.Get(ctx, matrixKey(profile, points)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.Matrix{}, false, nil
	}
	if err != nil {
		return ports.Matrix{}, false, fmt.Errorf("get matrix cache: %w", err)
	}

	var cached cachedMatrix
	if err := json.Unmarshal(raw, &cached); err != nil {
		return ports.Matrix{}, false, fmt.Errorf("get matrix cache: decode entry: %w", err)
	}

	return ports.Matrix{Distances: cached.Distances, Durations: cached.Durations}, true, nil
}

// Store a matrix under its profile and coordinate key.
func (c *RedisMatrixCache) Put(
	ctx context.Context,
	profile domain.TransportProfile,
	points []domain.GeoPoint,
	matrix ports.Matrix,
) error {
	if c.rdb == nil {
		return errors.New("matrix cache: redis client is nil")
	}

	if len(points) == 0 {
		return errors.New("insert matrix cache: points must not be empty")
	}

	raw, err := json.Marshal(cachedMatrix{Distances: matrix.Distances, Durations: matrix.Durations})
	if err != nil {
		return fmt.Errorf("insert matrix cache: encode entry: %w", err)
	}

	if err := c.rdb.Set(ctx, matrixKey(profile, points), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert matrix cache: %w", err)
	}

	return nil
}
