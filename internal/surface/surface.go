// Package surface estimates smoothed expected-goal density surfaces from
// scattered shot samples and compares surfaces built on a shared grid.
package surface

import (
	"gonum.org/v1/gonum/mat"

	"github.com/slapshot-data/xgoal.report/internal/rink"
)

// Surface is a smoothed, grid-aligned density estimate. It is immutable after
// the estimator or comparator returns it. Values are stored row-major with
// rows indexed by the grid's y axis and columns by its x axis.
type Surface struct {
	grid         *rink.Grid
	data         *mat.Dense
	insufficient bool
}

func newSurface(grid *rink.Grid, data *mat.Dense) *Surface {
	return &Surface{grid: grid, data: data}
}

// newFilled returns a surface with every cell set to fill. Used as the
// fallback when there are too few samples to interpolate.
func newFilled(grid *rink.Grid, fill float64) *Surface {
	data := mat.NewDense(grid.Height(), grid.Width(), nil)
	if fill != 0 {
		for i := 0; i < grid.Height(); i++ {
			for j := 0; j < grid.Width(); j++ {
				data.Set(i, j, fill)
			}
		}
	}
	return &Surface{grid: grid, data: data, insufficient: true}
}

// Grid returns the grid this surface was built on.
func (s *Surface) Grid() *rink.Grid { return s.grid }

// Dims returns the surface shape as (rows, cols) = (height, width).
func (s *Surface) Dims() (rows, cols int) { return s.data.Dims() }

// At returns the value at row i (y axis) and column j (x axis).
func (s *Surface) At(i, j int) float64 { return s.data.At(i, j) }

// InsufficientData reports whether the surface is a fill-value fallback
// produced from fewer samples than interpolation requires.
func (s *Surface) InsufficientData() bool { return s.insufficient }

// Values returns a row-major copy of the surface suitable for JSON encoding.
func (s *Surface) Values() [][]float64 {
	rows, cols := s.data.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := range out[i] {
			out[i][j] = s.data.At(i, j)
		}
	}
	return out
}

// Max returns the location and value of the largest cell. Ties resolve to the
// first cell in row-major order.
func (s *Surface) Max() (row, col int, value float64) {
	rows, cols := s.data.Dims()
	value = s.data.At(0, 0)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := s.data.At(i, j); v > value {
				row, col, value = i, j, v
			}
		}
	}
	return row, col, value
}
