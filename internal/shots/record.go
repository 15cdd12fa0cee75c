// Package shots holds cleaned shot records, the aggregation scopes that pool
// them for estimation, and the sqlite store backing both.
package shots

// Record is one observed shot after upstream cleaning. Coordinates are
// offensive-half adjusted (0 <= x <= 89, -42.5 <= y <= 42.5) and XGoal is the
// model-estimated goal probability in [0, 1]. Records are immutable once
// loaded; the estimation core never retains them between calls.
type Record struct {
	Shooter  string  `json:"shooter"`
	Team     string  `json:"team"`
	Season   int     `json:"season"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	XGoal    float64 `json:"x_goal"`
	Goal     bool    `json:"goal"`
	Distance float64 `json:"distance"`
}
