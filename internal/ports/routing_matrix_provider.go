package ports

import (
	"context"

	"github.com/jamesvickers19/loco/internal/domain"
)

// Travel matrix between a set of points. Cell [i][j] holds the metric from
// point i to point j: distances in meters, durations in seconds. A nil cell
// means the provider found no route between the pair.
type Matrix struct {
	Distances [][]*float64
	Durations [][]*float64
}

// Contract for retrieving a travel distance/duration matrix from a routing
// service. The matrix is interpreted positionally: row and column i
// correspond to points[i]. Implementations must request both distance and
// duration annotations.
type RoutingMatrixProvider interface {
	GetMatrix(ctx context.Context, points []domain.GeoPoint, profile domain.TransportProfile) (Matrix, error)
}
