package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/slapshot-data/xgoal.report/internal/shots"
)

// DefaultHighDangerDistance is the shot-distance threshold, in feet, below
// which a shot counts as high danger.
const DefaultHighDangerDistance = 20.0

// Stats summarises a scope's shooting without any spatial estimation.
type Stats struct {
	Scope              string  `json:"scope"`
	TotalShots         int     `json:"total_shots"`
	Goals              int     `json:"goals"`
	ShootingPct        float64 `json:"shooting_pct"`
	ExpectedGoals      float64 `json:"expected_goals"`
	MeanXGoal          float64 `json:"mean_x_goal"`
	HighDangerShots    int     `json:"high_danger_shots"`
	HighDangerShotsPct float64 `json:"high_danger_shots_pct"`
}

// ComputeStats derives aggregate statistics from a scope's records. An empty
// record set yields zeroed stats rather than NaNs from the percentage
// divisions.
func ComputeStats(scope shots.Scope, records []shots.Record, highDangerDistance float64) Stats {
	s := Stats{Scope: scope.String(), TotalShots: len(records)}
	if len(records) == 0 {
		return s
	}

	xgoals := make([]float64, len(records))
	for i, r := range records {
		xgoals[i] = r.XGoal
		if r.Goal {
			s.Goals++
		}
		if r.Distance <= highDangerDistance {
			s.HighDangerShots++
		}
	}

	s.ExpectedGoals = floats.Sum(xgoals)
	s.MeanXGoal = stat.Mean(xgoals, nil)
	s.ShootingPct = float64(s.Goals) / float64(s.TotalShots) * 100
	s.HighDangerShotsPct = float64(s.HighDangerShots) / float64(s.TotalShots) * 100
	return s
}
