package api

import (
	"encoding/json"
	"net/http"

	"github.com/slapshot-data/xgoal.report/internal/render"
	"github.com/slapshot-data/xgoal.report/internal/shots"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	json.NewEncoder(w).Encode(v)
}

func (s *Server) leagueSurface(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sf, err := s.analyzer.LeagueBaseline(r.Context())
	if err != nil {
		s.writeScopeError(w, err)
		return
	}
	s.writeSurface(w, shots.LeagueScope(), sf, false)
}

func (s *Server) playerSurface(w http.ResponseWriter, r *http.Request) {
	s.scopeSurface(w, r, "name", shots.PlayerScope)
}

func (s *Server) teamSurface(w http.ResponseWriter, r *http.Request) {
	s.scopeSurface(w, r, "team", shots.TeamScope)
}

func (s *Server) scopeSurface(w http.ResponseWriter, r *http.Request, param string, scopeFor func(string) shots.Scope) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name, ok := s.requireParam(w, r, param)
	if !ok {
		return
	}
	scope := scopeFor(name)
	sf, err := s.analyzer.SurfaceFor(r.Context(), scope)
	if err != nil {
		s.writeScopeError(w, err)
		return
	}
	s.writeSurface(w, scope, sf, false)
}

func (s *Server) playerCompare(w http.ResponseWriter, r *http.Request) {
	s.scopeCompare(w, r, "name", shots.PlayerScope)
}

func (s *Server) teamCompare(w http.ResponseWriter, r *http.Request) {
	s.scopeCompare(w, r, "team", shots.TeamScope)
}

func (s *Server) scopeCompare(w http.ResponseWriter, r *http.Request, param string, scopeFor func(string) shots.Scope) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name, ok := s.requireParam(w, r, param)
	if !ok {
		return
	}
	scope := scopeFor(name)
	diff, err := s.analyzer.CompareToLeague(r.Context(), scope)
	if err != nil {
		s.writeScopeError(w, err)
		return
	}
	s.writeSurface(w, scope, diff, true)
}

func (s *Server) playerStats(w http.ResponseWriter, r *http.Request) {
	s.scopeStats(w, r, "name", shots.PlayerScope)
}

func (s *Server) teamStats(w http.ResponseWriter, r *http.Request) {
	s.scopeStats(w, r, "team", shots.TeamScope)
}

func (s *Server) scopeStats(w http.ResponseWriter, r *http.Request, param string, scopeFor func(string) shots.Scope) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name, ok := s.requireParam(w, r, param)
	if !ok {
		return
	}
	stats, err := s.analyzer.StatsFor(r.Context(), scopeFor(name))
	if err != nil {
		s.writeScopeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, stats)
}

// playerHeatmapPNG renders a player's surface as a PNG. mode=compare renders
// the league difference with a zero-centred diverging palette; anything else
// renders the raw density.
func (s *Server) playerHeatmapPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name, ok := s.requireParam(w, r, "name")
	if !ok {
		return
	}
	scope := shots.PlayerScope(name)

	if r.URL.Query().Get("mode") == "compare" {
		diff, err := s.analyzer.CompareToLeague(r.Context(), scope)
		if err != nil {
			s.writeScopeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := render.WriteDifferencePNG(w, diff, name+" vs league xGoal"); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	sf, err := s.analyzer.SurfaceFor(r.Context(), scope)
	if err != nil {
		s.writeScopeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.WriteDensityPNG(w, sf, name+" xGoal density"); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
