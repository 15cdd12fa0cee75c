package surface

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/slapshot-data/xgoal.report/internal/rink"
)

func TestEstimateEmptyYieldsFillSurface(t *testing.T) {
	grid := rink.NewDefaultGrid()
	s, err := NewEstimator().Estimate(nil, grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.InsufficientData() {
		t.Error("empty input should mark the surface as insufficient data")
	}
	rows, cols := s.Dims()
	if rows != grid.Height() || cols != grid.Width() {
		t.Fatalf("expected %dx%d surface, got %dx%d", grid.Height(), grid.Width(), rows, cols)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if s.At(i, j) != 0 {
				t.Fatalf("cell (%d,%d) = %v, expected fill value 0", i, j, s.At(i, j))
			}
		}
	}
}

func TestEstimateTooFewPointsFallsBack(t *testing.T) {
	grid := rink.NewDefaultGrid()
	samples := []Sample{
		{X: 10, Y: 0, Value: 0.1},
		{X: 20, Y: 5, Value: 0.2},
		{X: 30, Y: -5, Value: 0.3},
	}
	s, err := NewEstimator().Estimate(samples, grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.InsufficientData() {
		t.Error("three points cannot support cubic interpolation")
	}
}

func TestEstimateDuplicateCoordinatesCollapse(t *testing.T) {
	grid := rink.NewDefaultGrid()
	// Five records at one spot collapse to a single sample, which is below
	// the interpolation floor.
	samples := []Sample{
		{X: 89, Y: 0, Value: 0.1},
		{X: 89, Y: 0, Value: 0.2},
		{X: 89, Y: 0, Value: 0.15},
		{X: 89, Y: 0, Value: 0.3},
		{X: 89, Y: 0, Value: 0.05},
	}
	s, err := NewEstimator().Estimate(samples, grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.InsufficientData() {
		t.Error("co-located records should collapse to one point and fall back")
	}
}

func TestEstimateCollinearPointsFallBack(t *testing.T) {
	grid := rink.NewDefaultGrid()
	samples := []Sample{
		{X: 10, Y: 0, Value: 0.1},
		{X: 20, Y: 0, Value: 0.2},
		{X: 30, Y: 0, Value: 0.3},
		{X: 40, Y: 0, Value: 0.4},
		{X: 50, Y: 0, Value: 0.5},
	}
	s, err := NewEstimator().Estimate(samples, grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.InsufficientData() {
		t.Error("collinear points have no triangulation and should fall back")
	}
}

// planeValue is positive over the whole default grid so clamping never fires.
func planeValue(x, y float64) float64 { return 0.1 + 0.002*x + 0.001*y }

func TestEstimateReproducesPlaneUnsmoothed(t *testing.T) {
	grid := rink.NewDefaultGrid()
	est := NewEstimator()
	est.Sigma = 0 // isolate the interpolation step

	var samples []Sample
	for _, p := range [][2]float64{
		{0, -43}, {0, 43}, {100, -43}, {100, 43},
		{50, 0}, {25, 10}, {75, -12}, {10, -30}, {90, 25},
	} {
		samples = append(samples, Sample{X: p[0], Y: p[1], Value: planeValue(p[0], p[1])})
	}

	s, err := est.Estimate(samples, grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.InsufficientData() {
		t.Fatal("plane samples should interpolate")
	}

	// The sample hull covers the entire grid, so every node carries the
	// interpolant. A piecewise-cubic fit with least-squares gradients is
	// exact on affine data.
	rows, cols := s.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			want := planeValue(grid.XAxis[j], grid.YAxis[i])
			if diff := math.Abs(s.At(i, j) - want); diff > 1e-9 {
				t.Fatalf("cell (%d,%d): got %v want %v (diff %v)", i, j, s.At(i, j), want, diff)
			}
		}
	}
}

func TestEstimateNonNegativeBeforeSmoothing(t *testing.T) {
	grid := rink.NewDefaultGrid()
	est := NewEstimator()
	est.Sigma = 0

	// Steep gradients invite cubic overshoot below zero; the clamp must
	// remove all of it.
	samples := []Sample{
		{X: 40, Y: 0, Value: 0.9},
		{X: 41, Y: 1, Value: 0.0},
		{X: 41, Y: -1, Value: 0.0},
		{X: 39, Y: 1, Value: 0.0},
		{X: 39, Y: -1, Value: 0.0},
		{X: 60, Y: 10, Value: 0.8},
		{X: 61, Y: 11, Value: 0.0},
		{X: 20, Y: -20, Value: 0.01},
		{X: 80, Y: 20, Value: 0.02},
	}
	s, err := est.Estimate(samples, grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, cols := s.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := s.At(i, j); v < 0 {
				t.Fatalf("cell (%d,%d) = %v, expected clamp to zero", i, j, v)
			}
		}
	}
}

func TestEstimateNaNSampleIsNumericAnomaly(t *testing.T) {
	grid := rink.NewDefaultGrid()
	// A NaN probability poisons the interpolant around its vertex; that must
	// surface as a reported anomaly, never as a NaN-bearing surface.
	samples := append(clusteredPlayerSamples(), Sample{X: 70, Y: 0, Value: math.NaN()})

	_, err := NewEstimator().Estimate(samples, grid)
	if !errors.Is(err, ErrNumericAnomaly) {
		t.Fatalf("expected ErrNumericAnomaly, got %v", err)
	}
}

func TestEstimateAllValuesFinite(t *testing.T) {
	grid := rink.NewDefaultGrid()
	samples := clusteredPlayerSamples()
	s, err := NewEstimator().Estimate(samples, grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, cols := s.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := s.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("cell (%d,%d) is not finite: %v", i, j, v)
			}
		}
	}
}

func TestEstimateDeterministicAcrossInputOrder(t *testing.T) {
	grid := rink.NewDefaultGrid()
	est := NewEstimator()

	samples := leagueSamples(200)
	a, err := est.Estimate(samples, grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reversed := make([]Sample, len(samples))
	for i, s := range samples {
		reversed[len(samples)-1-i] = s
	}
	b, err := est.Estimate(reversed, grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(a.Values(), b.Values()) {
		t.Error("surfaces from reordered identical samples must be bit-identical")
	}
}

// clusteredPlayerSamples models a shooter whose chances all come from the
// slot in front of the net.
func clusteredPlayerSamples() []Sample {
	return []Sample{
		{X: 89, Y: 0, Value: 0.1},
		{X: 80, Y: 6, Value: 0.2},
		{X: 80, Y: -6, Value: 0.15},
		{X: 85, Y: 0, Value: 0.3},
		{X: 89, Y: 6, Value: 0.05},
	}
}

// leagueSamples scatters n shots uniformly over the offensive half, each with
// the league-average probability. The generator is seeded, so the output is
// identical on every call.
func leagueSamples(n int) []Sample {
	rng := rand.New(rand.NewSource(42))
	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{
			X:     rng.Float64() * rink.GoalLineX,
			Y:     rng.Float64()*85 - 42.5,
			Value: 0.05,
		}
	}
	return samples
}

func TestPlayerPeakExceedsLeagueBaseline(t *testing.T) {
	grid := rink.NewDefaultGrid()
	est := NewEstimator()

	player, err := est.Estimate(clusteredPlayerSamples(), grid)
	if err != nil {
		t.Fatalf("player estimate: %v", err)
	}
	league, err := est.Estimate(leagueSamples(1000), grid)
	if err != nil {
		t.Fatalf("league estimate: %v", err)
	}

	row, col, peak := player.Max()
	if peak <= 0 {
		t.Fatal("player surface has no positive peak")
	}
	x, y := grid.XAxis[col], grid.YAxis[row]
	if x < 78 || x > 95 || y < -12 || y > 12 {
		t.Errorf("player peak at (%v,%v), expected near the net at (89,0)", x, y)
	}

	if player.At(row, col) <= league.At(row, col) {
		t.Errorf("player peak %v should exceed league %v at the same cell",
			player.At(row, col), league.At(row, col))
	}

	diff, err := Difference(player, league)
	if err != nil {
		t.Fatalf("difference: %v", err)
	}
	if diff.At(row, col) <= 0 {
		t.Errorf("difference at player peak = %v, expected positive", diff.At(row, col))
	}
}
