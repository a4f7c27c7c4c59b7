package routing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jamesvickers19/loco/internal/adapters/cache"
	"github.com/jamesvickers19/loco/internal/domain"
	"github.com/jamesvickers19/loco/internal/platform/obs"
	"github.com/jamesvickers19/loco/internal/ports"
)

// The Matrix API accepts at most 25 coordinates per request (10 for the
// traffic profile).
const (
	maxMatrixPoints        = 25
	maxTrafficMatrixPoints = 10
)

// MapboxMatrixProvider implements RoutingMatrixProvider using the Mapbox
// Directions Matrix API.
//
// It coordinates:
//   - Travel profile translation
//   - Optional persistent matrix caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type MapboxMatrixProvider struct {
	session     *http.Client
	accessToken string
	baseURL     string
	matrixCache *cache.RedisMatrixCache
}

func NewMapboxMatrixProvider(accessToken string, matrixCache *cache.RedisMatrixCache) (*MapboxMatrixProvider, error) {
	if accessToken == "" {
		return nil, errors.New("mapbox access token is empty")
	}

	provider := &MapboxMatrixProvider{
		session:     &http.Client{Timeout: 10 * time.Second},
		accessToken: accessToken,
		baseURL:     "https://api.mapbox.com",
		matrixCache: matrixCache,
	}

	return provider, nil
}

// profilePath maps a travel profile onto the Mapbox routing profile segment.
func profilePath(p domain.TransportProfile) (string, error) {
	switch p {
	case domain.ProfileWalking:
		return "mapbox/walking", nil
	case domain.ProfileDriving:
		return "mapbox/driving-traffic", nil
	case domain.ProfileCycling:
		return "mapbox/cycling", nil
	}
	return "", fmt.Errorf("unknown transport profile %q", p)
}

// Fetch the full distance/duration matrix for the given points.
func (m *MapboxMatrixProvider) GetMatrix(
	ctx context.Context,
	points []domain.GeoPoint,
	profile domain.TransportProfile,
) (_ ports.Matrix, err error) {
	defer obs.Time(ctx, "mapbox.GetMatrix")(&err)

	if len(points) < 2 {
		return ports.Matrix{}, fmt.Errorf("get matrix: need at least 2 points, got %d", len(points))
	}

	limit := maxMatrixPoints
	if profile == domain.ProfileDriving {
		limit = maxTrafficMatrixPoints
	}
	if len(points) > limit {
		return ports.Matrix{}, fmt.Errorf(
			"get matrix: %d points exceeds the %d point limit for profile %q",
			len(points), limit, profile,
		)
	}

	for i, p := range points {
		if err := p.Validate(); err != nil {
			return ports.Matrix{}, fmt.Errorf("get matrix: point %d: %w", i, err)
		}
	}

	if m.matrixCache != nil {
		cached, ok, err := m.matrixCache.Get(ctx, profile, points)
		if err != nil {
			log.Printf("matrix cache read failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	matrix, err := m.fetchMatrix(ctx, points, profile)
	if err != nil {
		return ports.Matrix{}, fmt.Errorf("get matrix: %w", err)
	}

	if m.matrixCache != nil {
		if err := m.matrixCache.Put(ctx, profile, points, matrix); err != nil {
			log.Printf("matrix cache write failed: %v", err)
		}
	}

	return matrix, nil
}
