package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmfalke/trendline/internal/filter"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string   `json:"message"`
	Field   string   `json:"field,omitempty"`
	Allowed []string `json:"allowed,omitempty"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "trendline",
		"status":  "ok",
	})
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	var f filter.GameFilter
	if !s.decodeBody(w, r, &f) {
		return
	}

	env, cached, err := s.svc.Games(r.Context(), &f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, cached)
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	var f filter.TrendFilter
	if !s.decodeBody(w, r, &f) {
		return
	}

	env, cached, err := s.svc.Trends(r.Context(), &f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, cached)
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) handleUpcomingGames(w http.ResponseWriter, r *http.Request) {
	snap, cached, err := s.svc.UpcomingGames(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, cached)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.CacheStats())
}

func (s *Server) handleProtectedEntries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.ProtectedEntries())
}

func (s *Server) handleClearUpcoming(w http.ResponseWriter, r *http.Request) {
	s.svc.ClearUpcoming(preserveParam(r))
	s.clearResponse(w, r, "upcoming_games")
}

func (s *Server) handleClearResults(w http.ResponseWriter, r *http.Request) {
	s.svc.ClearResults(preserveParam(r))
	s.clearResponse(w, r, "query_results")
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	s.svc.ClearAll(preserveParam(r))
	s.clearResponse(w, r, "all")
}

func (s *Server) clearResponse(w http.ResponseWriter, r *http.Request, scope string) {
	writeJSON(w, http.StatusOK, map[string]any{
		"cleared":   scope,
		"preserved": preserveParam(r),
		"stats":     s.svc.CacheStats(),
	})
}

// preserveParam reads the preserve query parameter. Protected entries
// survive unless the caller explicitly passes preserve=false.
func preserveParam(r *http.Request) bool {
	return r.URL.Query().Get("preserve") != "false"
}

// decodeBody reads the filter document. An empty body is a valid empty
// filter.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		s.writeStatus(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, dst); err != nil {
		s.writeStatus(w, http.StatusBadRequest, "malformed filter document: "+err.Error())
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *filter.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorDetail{
			Message: ve.Message,
			Field:   ve.Field,
			Allowed: ve.Allowed,
		}})
		return
	}

	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method, "path", r.URL.Path, "error", err)
	s.writeStatus(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) writeStatus(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Message: msg}})
}

func setCacheHeader(w http.ResponseWriter, cached bool) {
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
