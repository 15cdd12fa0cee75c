// Package api exposes estimated surfaces, comparisons and shot statistics
// over HTTP.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/slapshot-data/xgoal.report/internal/analysis"
	"github.com/slapshot-data/xgoal.report/internal/shots"
	"github.com/slapshot-data/xgoal.report/internal/surface"
)

// ANSI escape codes for request log colouring
const (
	colorCyan      = "\033[36m"
	colorReset     = "\033[0m"
	colorYellow    = "\033[33m"
	colorBoldGreen = "\033[1;32m"
	colorBoldRed   = "\033[1;31m"
)

// Server serves surfaces computed by a single Analyzer. All surfaces share
// the analyzer's grid, so any response can be differenced client-side
// against any other from the same server.
type Server struct {
	analyzer *analysis.Analyzer
}

// NewServer builds a server around an analyzer.
func NewServer(analyzer *analysis.Analyzer) *Server {
	return &Server{analyzer: analyzer}
}

// ServeMux returns the route table.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/league/surface", s.leagueSurface)
	mux.HandleFunc("/api/player/surface", s.playerSurface)
	mux.HandleFunc("/api/player/compare", s.playerCompare)
	mux.HandleFunc("/api/player/stats", s.playerStats)
	mux.HandleFunc("/api/player/heatmap.png", s.playerHeatmapPNG)
	mux.HandleFunc("/api/team/surface", s.teamSurface)
	mux.HandleFunc("/api/team/compare", s.teamCompare)
	mux.HandleFunc("/api/team/stats", s.teamStats)
	mux.HandleFunc("/charts/compare", s.compareChart)
	return mux
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	default:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	}
}

// LoggingMiddleware logs method, path, status, and duration for each request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeScopeError maps pipeline failures onto HTTP statuses: an empty scope
// is a 404, everything else (numeric anomalies included) a 500. The error
// message in the body already distinguishes the failure kinds.
func (s *Server) writeScopeError(w http.ResponseWriter, err error) {
	if shots.IsEmptyScope(err) {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSONError(w, http.StatusInternalServerError, err.Error())
}

type gridJSON struct {
	XAxis []float64 `json:"x_axis"`
	YAxis []float64 `json:"y_axis"`
}

type surfaceJSON struct {
	Scope            string      `json:"scope"`
	Season           int         `json:"season"`
	Grid             gridJSON    `json:"grid"`
	Values           [][]float64 `json:"values"`
	Difference       bool        `json:"difference"`
	InsufficientData bool        `json:"insufficient_data"`
}

func (s *Server) writeSurface(w http.ResponseWriter, scope shots.Scope, sf *surface.Surface, difference bool) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(surfaceJSON{
		Scope:  scope.String(),
		Season: s.analyzer.Season(),
		Grid: gridJSON{
			XAxis: sf.Grid().XAxis,
			YAxis: sf.Grid().YAxis,
		},
		Values:           sf.Values(),
		Difference:       difference,
		InsufficientData: sf.InsufficientData(),
	})
}

// requireParam fetches a query parameter, writing a 400 if it is absent.
func (s *Server) requireParam(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		s.writeJSONError(w, http.StatusBadRequest, "missing required parameter: "+key)
		return "", false
	}
	return v, true
}
