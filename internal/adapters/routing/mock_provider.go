package routing

import (
	"context"

	"github.com/jamesvickers19/loco/internal/domain"
	"github.com/jamesvickers19/loco/internal/ports"
)

// MockMatrixProvider returns a fixed matrix (or error) and counts calls.
type MockMatrixProvider struct {
	Matrix ports.Matrix
	Err    error
	Calls  int
}

func NewMockMatrixProvider(matrix ports.Matrix) *MockMatrixProvider {
	return &MockMatrixProvider{Matrix: matrix}
}

func (p *MockMatrixProvider) GetMatrix(
	ctx context.Context,
	points []domain.GeoPoint,
	profile domain.TransportProfile,
) (ports.Matrix, error) {
	p.Calls++
	if p.Err != nil {
		return ports.Matrix{}, p.Err
	}
	return p.Matrix, nil
}

// Rows builds nullable matrix rows from plain values; negative entries
// become nil cells.
func Rows(values [][]float64) [][]*float64 {
	rows := make([][]*float64, len(values))
	for i, row := range values {
		cells := make([]*float64, len(row))
		for j, v := range row {
			if v >= 0 {
				v := v
				cells[j] = &v
			}
		}
		rows[i] = cells
	}
	return rows
}
