package surface

import (
	"math"
	"sort"

	"github.com/fogleman/delaunay"

	"github.com/slapshot-data/xgoal.report/internal/rink"
)

// Sample is one scattered observation: a rink coordinate and the value being
// estimated there, typically a shot's expected-goal probability.
type Sample struct {
	X     float64
	Y     float64
	Value float64
}

// minSamples is the interpolation floor. Fewer than four distinct points
// cannot support a cubic fit, so estimation falls back to the fill surface.
const minSamples = 4

// Estimator turns scattered samples into a smoothed density surface:
// piecewise-cubic interpolation onto the grid, fill outside the sample hull,
// clamp negatives from cubic overshoot, then a Gaussian blur. The blur runs
// after the clamp and may reintroduce small negative values next to zero
// regions; that is accepted behaviour and deliberately not re-clamped, since
// a second clamp would shift the value distribution comparisons rely on.
type Estimator struct {
	// FillValue is written to every node outside the convex hull of the
	// samples, and to the whole surface when samples are insufficient.
	FillValue float64

	// Sigma is the Gaussian blur standard deviation in grid cells. A value
	// <= 0 disables smoothing.
	Sigma float64

	// Truncate bounds the blur kernel at this many sigmas from centre.
	Truncate float64
}

// NewEstimator returns an estimator with the standard pipeline settings:
// zero fill and a 3-cell smoothing sigma truncated at 4 sigmas.
func NewEstimator() *Estimator {
	return &Estimator{FillValue: 0, Sigma: 3, Truncate: 4}
}

// Estimate builds a surface on grid from the given samples. It is pure and
// deterministic: identical sample multisets produce bit-identical surfaces
// regardless of input order. A nil error with Surface.InsufficientData set
// means the fill fallback was used; ErrNumericAnomaly is returned if the
// interpolant produces NaN or Inf anywhere.
func (e *Estimator) Estimate(samples []Sample, grid *rink.Grid) (*Surface, error) {
	points, values := collapseDuplicates(samples)
	if len(points) < minSamples {
		return newFilled(grid, e.FillValue), nil
	}

	interp, err := newCubicInterpolator(points, values)
	if err == errDegenerate {
		return newFilled(grid, e.FillValue), nil
	}
	if err != nil {
		return nil, err
	}

	data := interp.evaluateGrid(grid, e.FillValue)

	rows, cols := data.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := data.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, ErrNumericAnomaly
			}
			if v < 0 {
				data.Set(i, j, 0)
			}
		}
	}

	if e.Sigma > 0 {
		data = gaussianSmooth(data, e.Sigma, e.Truncate)
	}
	return newSurface(grid, data), nil
}

// collapseDuplicates averages samples that share a coordinate and returns the
// unique points sorted by position. Triangulation input therefore never
// depends on the order records arrived in, and repeated shots from the same
// spot contribute their mean probability.
func collapseDuplicates(samples []Sample) ([]delaunay.Point, []float64) {
	type acc struct {
		sum float64
		n   int
	}
	byCoord := make(map[delaunay.Point]*acc, len(samples))
	for _, s := range samples {
		p := delaunay.Point{X: s.X, Y: s.Y}
		a := byCoord[p]
		if a == nil {
			a = &acc{}
			byCoord[p] = a
		}
		a.sum += s.Value
		a.n++
	}

	points := make([]delaunay.Point, 0, len(byCoord))
	for p := range byCoord {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].X != points[j].X {
			return points[i].X < points[j].X
		}
		return points[i].Y < points[j].Y
	})

	values := make([]float64, len(points))
	for i, p := range points {
		a := byCoord[p]
		values[i] = a.sum / float64(a.n)
	}
	return points, values
}
