// Package rink defines the sampling grid shared by every estimated surface.
package rink

import "math"

// Offensive-half coordinate bounds, in feet. Shot data is adjusted upstream so
// every shot appears in one half: x runs from centre ice toward the end boards,
// y is signed distance from the rink's long axis. The goal line sits at x=89.
const (
	GoalLineX      = 89.0
	BoardsX        = 100.0
	HalfRinkHeight = 42.5
)

// DefaultWidthSamples and DefaultHeightSamples give roughly one grid cell per
// foot of ice at the default bounds.
const (
	DefaultWidthSamples  = 100
	DefaultHeightSamples = 85
)

// Grid is an axis-aligned regular lattice over the offensive half. Both axes
// are linearly spaced and then rounded to the nearest integer coordinate so
// the sampling nodes land on the same integer lattice the source shot
// coordinates live on. A Grid is immutable once constructed; two surfaces may
// only be differenced when built on grids of the same shape.
type Grid struct {
	XAxis []float64
	YAxis []float64
}

// NewGrid builds a grid with widthSamples nodes spaced over [xmin, xmax] and
// heightSamples nodes spaced over [-ymaxAbs, ymaxAbs], endpoints inclusive.
// Axis values are rounded to integers after spacing.
func NewGrid(xmin, xmax, ymaxAbs float64, widthSamples, heightSamples int) *Grid {
	return &Grid{
		XAxis: roundedLinspace(xmin, xmax, widthSamples),
		YAxis: roundedLinspace(-ymaxAbs, ymaxAbs, heightSamples),
	}
}

// NewDefaultGrid builds the standard 100x85 offensive-half grid.
func NewDefaultGrid() *Grid {
	return NewGrid(0, BoardsX, HalfRinkHeight, DefaultWidthSamples, DefaultHeightSamples)
}

// Width returns the number of samples along the x axis.
func (g *Grid) Width() int { return len(g.XAxis) }

// Height returns the number of samples along the y axis.
func (g *Grid) Height() int { return len(g.YAxis) }

// SameShape reports whether two grids have identical axes. Surfaces built on
// grids that disagree here must never be differenced.
func (g *Grid) SameShape(o *Grid) bool {
	if o == nil || len(g.XAxis) != len(o.XAxis) || len(g.YAxis) != len(o.YAxis) {
		return false
	}
	for i, v := range g.XAxis {
		if o.XAxis[i] != v {
			return false
		}
	}
	for i, v := range g.YAxis {
		if o.YAxis[i] != v {
			return false
		}
	}
	return true
}

// roundedLinspace returns n values linearly spaced over [lo, hi] inclusive,
// each rounded to the nearest integer (halves away from zero).
func roundedLinspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = math.Round(lo)
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = math.Round(lo + float64(i)*step)
	}
	return out
}
