// Package analysis wires shot aggregation, surface estimation and league
// comparison into one parameterized pipeline. Player, team and league
// estimates all run through the same path, differing only in which records
// the scope gathers.
package analysis

import (
	"context"
	"fmt"
	"sync"

	"github.com/slapshot-data/xgoal.report/internal/rink"
	"github.com/slapshot-data/xgoal.report/internal/shots"
	"github.com/slapshot-data/xgoal.report/internal/surface"
)

// Analyzer builds expected-goal surfaces for aggregation scopes against a
// single shared grid. The league baseline is computed once and reused for
// every comparison in the session; everything else is recomputed per call.
type Analyzer struct {
	src     shots.Source
	rosters shots.RosterResolver
	grid    *rink.Grid
	est     *surface.Estimator
	season  int

	mu       sync.Mutex
	baseline *surface.Surface
}

// NewAnalyzer builds an analyzer over src and rosters for one season. All
// surfaces it produces share grid, so any two of them may be differenced.
func NewAnalyzer(src shots.Source, rosters shots.RosterResolver, grid *rink.Grid, est *surface.Estimator, season int) *Analyzer {
	return &Analyzer{src: src, rosters: rosters, grid: grid, est: est, season: season}
}

// Grid returns the shared sampling grid.
func (a *Analyzer) Grid() *rink.Grid { return a.grid }

// Season returns the season the analyzer queries.
func (a *Analyzer) Season() int { return a.season }

// SurfaceFor gathers the scope's records and estimates its surface. An
// unknown identity surfaces the scope resolution error (EmptyScope);
// a known identity with no shots produces the fill-value fallback surface.
func (a *Analyzer) SurfaceFor(ctx context.Context, scope shots.Scope) (*surface.Surface, error) {
	records, err := scope.Gather(ctx, a.src, a.rosters, a.season)
	if err != nil {
		return nil, err
	}
	s, err := a.est.Estimate(Samples(records), a.grid)
	if err != nil {
		return nil, fmt.Errorf("estimate %s: %w", scope, err)
	}
	return s, nil
}

// LeagueBaseline returns the league-wide surface, computing it on first use.
func (a *Analyzer) LeagueBaseline(ctx context.Context) (*surface.Surface, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.baseline != nil {
		return a.baseline, nil
	}
	s, err := a.SurfaceFor(ctx, shots.LeagueScope())
	if err != nil {
		return nil, err
	}
	a.baseline = s
	return s, nil
}

// CompareToLeague estimates the scope's surface and subtracts the league
// baseline from it. Positive cells mean the scope outperforms the league.
func (a *Analyzer) CompareToLeague(ctx context.Context, scope shots.Scope) (*surface.Surface, error) {
	subject, err := a.SurfaceFor(ctx, scope)
	if err != nil {
		return nil, err
	}
	baseline, err := a.LeagueBaseline(ctx)
	if err != nil {
		return nil, err
	}
	diff, err := surface.Difference(subject, baseline)
	if err != nil {
		return nil, fmt.Errorf("compare %s to league: %w", scope, err)
	}
	return diff, nil
}

// StatsFor computes aggregate shooting statistics for a scope.
func (a *Analyzer) StatsFor(ctx context.Context, scope shots.Scope) (Stats, error) {
	records, err := scope.Gather(ctx, a.src, a.rosters, a.season)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(scope, records, DefaultHighDangerDistance), nil
}

// Samples converts shot records to estimator samples.
func Samples(records []shots.Record) []surface.Sample {
	samples := make([]surface.Sample, len(records))
	for i, r := range records {
		samples[i] = surface.Sample{X: r.X, Y: r.Y, Value: r.XGoal}
	}
	return samples
}
