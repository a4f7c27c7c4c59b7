package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jamesvickers19/loco/internal/domain"
	"github.com/jamesvickers19/loco/internal/ports"
)

type matrixResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// coordinatePath renders points as the semicolon-separated lon,lat list the
// Matrix API expects. Six decimals keeps the path stable for identical
// inputs without losing routable precision.
func coordinatePath(points []domain.GeoPoint) string {
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts,
			strconv.FormatFloat(p.Lon, 'f', 6, 64)+","+strconv.FormatFloat(p.Lat, 'f', 6, 64))
	}
	return strings.Join(parts, ";")
}

// fetchMatrix retrieves the full all-to-all distance and duration matrix
// from the Mapbox Matrix endpoint. Cells are nullable; an unroutable pair
// comes back nil and is left for the caller to interpret.
func (m *MapboxMatrixProvider) fetchMatrix(
	ctx context.Context,
	points []domain.GeoPoint,
	profile domain.TransportProfile,
) (ports.Matrix, error) {
	segment, err := profilePath(profile)
	if err != nil {
		return ports.Matrix{}, fmt.Errorf("fetch matrix: %w", err)
	}

	endpoint := fmt.Sprintf(
		"%s/directions-matrix/v1/%s/%s",
		m.baseURL, segment, coordinatePath(points),
	)

	resp, err := m.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := m.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("annotations", "distance,duration")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return ports.Matrix{}, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return ports.Matrix{}, fmt.Errorf("decode matrix response: %w", err)
	}

	if mr.Code != "Ok" {
		return ports.Matrix{}, fmt.Errorf("matrix service returned code %q: %s", mr.Code, mr.Message)
	}

	if len(mr.Distances) != len(points) || len(mr.Durations) != len(points) {
		return ports.Matrix{}, fmt.Errorf(
			"matrix rows do not match points: distances=%d durations=%d points=%d",
			len(mr.Distances), len(mr.Durations), len(points),
		)
	}

	for i := range mr.Distances {
		if len(mr.Distances[i]) != len(points) || len(mr.Durations[i]) != len(points) {
			return ports.Matrix{}, fmt.Errorf(
				"matrix row %d does not match points: distances=%d durations=%d points=%d",
				i, len(mr.Distances[i]), len(mr.Durations[i]), len(points),
			)
		}
	}

	return ports.Matrix{Distances: mr.Distances, Durations: mr.Durations}, nil
}
