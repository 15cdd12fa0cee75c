// Package render turns finished surfaces into pictures. It is a consumer of
// the estimation core: it never recomputes values, only maps them to colour.
package render

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/slapshot-data/xgoal.report/internal/surface"
)

// surfaceGrid adapts a Surface to plotter.GridXYZ. Columns follow the grid's
// x axis and rows its y axis, so the rendered image keeps rink orientation.
type surfaceGrid struct {
	s *surface.Surface
}

func (g surfaceGrid) Dims() (c, r int) {
	rows, cols := g.s.Dims()
	return cols, rows
}

func (g surfaceGrid) Z(c, r int) float64 { return g.s.At(r, c) }
func (g surfaceGrid) X(c int) float64    { return g.s.Grid().XAxis[c] }
func (g surfaceGrid) Y(r int) float64    { return g.s.Grid().YAxis[r] }

// WriteDensityPNG renders a density surface as a heatmap PNG. Density
// surfaces are non-negative, so a sequential heat palette anchored at zero is
// used.
func WriteDensityPNG(w io.Writer, s *surface.Surface, title string) error {
	h := plotter.NewHeatMap(surfaceGrid{s}, palette.Heat(255, 255))
	h.Min = 0
	return writeHeatmap(w, h, title)
}

// WriteDifferencePNG renders a difference surface with a diverging
// blue-white-red palette. The colour range is symmetric about zero so the
// neutral midpoint always reads as white; the difference itself is never
// shifted or renormalised.
func WriteDifferencePNG(w io.Writer, s *surface.Surface, title string) error {
	limit := maxAbs(s)
	if limit == 0 {
		limit = 1
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-limit)
	cm.SetMax(limit)

	h := plotter.NewHeatMap(surfaceGrid{s}, cm.Palette(255))
	h.Min = -limit
	h.Max = limit
	return writeHeatmap(w, h, title)
}

func writeHeatmap(w io.Writer, h *plotter.HeatMap, title string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (ft)"
	p.Y.Label.Text = "y (ft)"
	p.Add(h)

	wt, err := p.WriterTo(8*vg.Inch, 7*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write heatmap png: %w", err)
	}
	return nil
}

func maxAbs(s *surface.Surface) float64 {
	rows, cols := s.Dims()
	limit := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := math.Abs(s.At(i, j)); v > limit {
				limit = v
			}
		}
	}
	return limit
}
