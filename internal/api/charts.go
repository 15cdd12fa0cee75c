package api

import (
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/slapshot-data/xgoal.report/internal/shots"
)

// compareChart renders an interactive HTML heatmap of a player's difference
// against the league baseline. This is a quick visual check without any
// report tooling; the PNG endpoints serve the embeddable artefacts.
// Query params:
//   - player (required)
func (s *Server) compareChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	player, ok := s.requireParam(w, r, "player")
	if !ok {
		return
	}

	diff, err := s.analyzer.CompareToLeague(r.Context(), shots.PlayerScope(player))
	if err != nil {
		s.writeScopeError(w, err)
		return
	}

	grid := diff.Grid()
	rows, cols := diff.Dims()

	xLabels := make([]string, cols)
	for j, v := range grid.XAxis {
		xLabels[j] = fmt.Sprintf("%.0f", v)
	}
	yLabels := make([]string, rows)
	for i, v := range grid.YAxis {
		yLabels[i] = fmt.Sprintf("%.0f", v)
	}

	data := make([]opts.HeatMapData, 0, rows*cols)
	limit := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := diff.At(i, j)
			if math.Abs(v) > limit {
				limit = math.Abs(v)
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, v}})
		}
	}
	if limit == 0 {
		limit = 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "xGoal Comparison",
			Width:     "1000px",
			Height:    "850px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    player + " vs league xGoal",
			Subtitle: fmt.Sprintf("season=%d grid=%dx%d", s.analyzer.Season(), cols, rows),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "x (ft)"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "y (ft)", Data: yLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(-limit),
			Max:        float32(limit),
			InRange: &opts.VisualMapInRange{
				// Diverging blue-white-red with zero at the white midpoint.
				Color: []string{"#313695", "#ffffff", "#a50026"},
			},
		}),
	)
	hm.SetXAxis(xLabels).AddSeries("xgoal-diff", data)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := hm.Render(w); err != nil {
		log.Printf("render compare chart: %v", err)
	}
}
