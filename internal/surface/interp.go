package surface

import (
	"errors"
	"math"
	"sort"

	"github.com/fogleman/delaunay"
	"gonum.org/v1/gonum/mat"

	"github.com/slapshot-data/xgoal.report/internal/rink"
)

// errDegenerate reports that the sample set has no valid triangulation
// (collinear or otherwise degenerate). The estimator treats it the same as
// having too few samples and falls back to the fill surface.
var errDegenerate = errors.New("sample set has no triangulation")

// insideEps tolerates floating-point jitter when testing whether a grid node
// sits inside a triangle, so nodes on shared edges are not dropped.
const insideEps = 1e-9

// cubicInterpolator evaluates a piecewise-cubic interpolant over the Delaunay
// triangulation of the samples. Each triangle carries a cubic Bezier patch
// whose edge control points come from least-squares vertex gradients, so the
// interpolant passes through every sample and bends smoothly between them.
type cubicInterpolator struct {
	points []delaunay.Point
	values []float64
	grads  [][2]float64
	tri    *delaunay.Triangulation
}

func newCubicInterpolator(points []delaunay.Point, values []float64) (*cubicInterpolator, error) {
	tri, err := delaunay.Triangulate(points)
	if err != nil {
		return nil, errDegenerate
	}
	if len(tri.Triangles) == 0 {
		return nil, errDegenerate
	}
	ci := &cubicInterpolator{points: points, values: values, tri: tri}
	ci.grads = ci.estimateGradients()
	return ci, nil
}

// estimateGradients fits a weighted least-squares plane through each vertex's
// triangulation neighbours. Neighbour lists are index-sorted so the summation
// order, and therefore the output, never depends on triangulation internals.
func (ci *cubicInterpolator) estimateGradients() [][2]float64 {
	neighbours := make([]map[int]struct{}, len(ci.points))
	for i := range neighbours {
		neighbours[i] = make(map[int]struct{})
	}
	tr := ci.tri.Triangles
	for t := 0; t < len(tr); t += 3 {
		a, b, c := tr[t], tr[t+1], tr[t+2]
		neighbours[a][b] = struct{}{}
		neighbours[a][c] = struct{}{}
		neighbours[b][a] = struct{}{}
		neighbours[b][c] = struct{}{}
		neighbours[c][a] = struct{}{}
		neighbours[c][b] = struct{}{}
	}

	grads := make([][2]float64, len(ci.points))
	for i, set := range neighbours {
		if len(set) == 0 {
			continue
		}
		idx := make([]int, 0, len(set))
		for j := range set {
			idx = append(idx, j)
		}
		sort.Ints(idx)

		var a11, a12, a22, b1, b2 float64
		for _, j := range idx {
			dx := ci.points[j].X - ci.points[i].X
			dy := ci.points[j].Y - ci.points[i].Y
			dz := ci.values[j] - ci.values[i]
			d2 := dx*dx + dy*dy
			if d2 == 0 {
				continue
			}
			w := 1 / d2
			a11 += w * dx * dx
			a12 += w * dx * dy
			a22 += w * dy * dy
			b1 += w * dx * dz
			b2 += w * dy * dz
		}
		det := a11*a22 - a12*a12
		if math.Abs(det) < 1e-12 {
			continue
		}
		grads[i] = [2]float64{(b1*a22 - b2*a12) / det, (b2*a11 - b1*a12) / det}
	}
	return grads
}

// evaluateGrid fills a matrix shaped like grid with the interpolant, leaving
// every node outside the convex hull at fill. Triangles partition the hull,
// so each interior node is written exactly once; nodes on shared edges are
// claimed by the first triangle that covers them, in fixed triangle order.
func (ci *cubicInterpolator) evaluateGrid(grid *rink.Grid, fill float64) *mat.Dense {
	rows, cols := grid.Height(), grid.Width()
	out := mat.NewDense(rows, cols, nil)
	if fill != 0 {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				out.Set(i, j, fill)
			}
		}
	}

	assigned := make([]bool, rows*cols)
	tr := ci.tri.Triangles
	for t := 0; t < len(tr); t += 3 {
		i0, i1, i2 := tr[t], tr[t+1], tr[t+2]
		p0, p1, p2 := ci.points[i0], ci.points[i1], ci.points[i2]

		det := (p1.Y-p2.Y)*(p0.X-p2.X) + (p2.X-p1.X)*(p0.Y-p2.Y)
		if math.Abs(det) < 1e-12 {
			continue
		}

		xlo := math.Min(p0.X, math.Min(p1.X, p2.X))
		xhi := math.Max(p0.X, math.Max(p1.X, p2.X))
		ylo := math.Min(p0.Y, math.Min(p1.Y, p2.Y))
		yhi := math.Max(p0.Y, math.Max(p1.Y, p2.Y))

		for i := axisLower(grid.YAxis, ylo); i < rows && grid.YAxis[i] <= yhi; i++ {
			y := grid.YAxis[i]
			for j := axisLower(grid.XAxis, xlo); j < cols && grid.XAxis[j] <= xhi; j++ {
				if assigned[i*cols+j] {
					continue
				}
				x := grid.XAxis[j]
				u := ((p1.Y-p2.Y)*(x-p2.X) + (p2.X-p1.X)*(y-p2.Y)) / det
				v := ((p2.Y-p0.Y)*(x-p2.X) + (p0.X-p2.X)*(y-p2.Y)) / det
				w := 1 - u - v
				if u < -insideEps || v < -insideEps || w < -insideEps {
					continue
				}
				out.Set(i, j, ci.evalTriangle(i0, i1, i2, u, v, w))
				assigned[i*cols+j] = true
			}
		}
	}
	return out
}

// evalTriangle evaluates the cubic Bezier patch for one triangle at the
// barycentric coordinate (u, v, w) with u attached to vertex i0.
func (ci *cubicInterpolator) evalTriangle(i0, i1, i2 int, u, v, w float64) float64 {
	p0, p1, p2 := ci.points[i0], ci.points[i1], ci.points[i2]
	z0, z1, z2 := ci.values[i0], ci.values[i1], ci.values[i2]
	g0, g1, g2 := ci.grads[i0], ci.grads[i1], ci.grads[i2]

	b210 := z0 + ((p1.X-p0.X)*g0[0]+(p1.Y-p0.Y)*g0[1])/3
	b201 := z0 + ((p2.X-p0.X)*g0[0]+(p2.Y-p0.Y)*g0[1])/3
	b120 := z1 + ((p0.X-p1.X)*g1[0]+(p0.Y-p1.Y)*g1[1])/3
	b021 := z1 + ((p2.X-p1.X)*g1[0]+(p2.Y-p1.Y)*g1[1])/3
	b102 := z2 + ((p0.X-p2.X)*g2[0]+(p0.Y-p2.Y)*g2[1])/3
	b012 := z2 + ((p1.X-p2.X)*g2[0]+(p1.Y-p2.Y)*g2[1])/3

	// Centre control point chosen for quadratic precision: nudge the mean of
	// the edge control points away from the flat corner average.
	e := (b210 + b201 + b120 + b021 + b102 + b012) / 6
	vtx := (z0 + z1 + z2) / 3
	b111 := e + (e-vtx)/2

	return u*u*u*z0 + v*v*v*z1 + w*w*w*z2 +
		3*(u*u*v*b210+u*u*w*b201+v*v*u*b120+v*v*w*b021+w*w*v*b012+w*w*u*b102) +
		6*u*v*w*b111
}

// axisLower returns the first axis index with value >= lo.
func axisLower(axis []float64, lo float64) int {
	return sort.SearchFloat64s(axis, lo)
}
