// Package server exposes the query service over HTTP.
//
// Routing uses the method-qualified patterns of net/http's ServeMux. The
// handlers decode a JSON filter body, hand it to the service, and write the
// response envelope; all policy lives below this layer.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmfalke/trendline/internal/filter"
	"github.com/dmfalke/trendline/internal/querycache"
	"github.com/dmfalke/trendline/internal/service"
	"github.com/dmfalke/trendline/internal/store"
)

// Server is the HTTP front of a Service.
type Server struct {
	svc Service
	log *slog.Logger
	mux *http.ServeMux
}

// Service is what the handlers need from the query layer. Satisfied by
// *service.Service.
type Service interface {
	Games(ctx context.Context, f *filter.GameFilter) (*service.Envelope[store.Game], bool, error)
	Trends(ctx context.Context, f *filter.TrendFilter) (*service.Envelope[store.Trend], bool, error)
	UpcomingGames(ctx context.Context) (*service.UpcomingSnapshot, bool, error)
	CacheStats() map[string]querycache.Stats
	ClearUpcoming(preserve bool)
	ClearResults(preserve bool)
	ClearAll(preserve bool)
	ProtectedEntries() map[string][]string
}

// New builds a Server and installs its routes.
func New(svc Service, log *slog.Logger) *Server {
	s := &Server{svc: svc, log: log, mux: http.NewServeMux()}

	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("POST /api/v1/games", s.handleGames)
	s.mux.HandleFunc("POST /api/v1/trends", s.handleTrends)
	s.mux.HandleFunc("GET /api/v1/upcoming-games", s.handleUpcomingGames)

	s.mux.HandleFunc("GET /api/v1/cache/stats", s.handleCacheStats)
	s.mux.HandleFunc("GET /api/v1/cache/protected-entries", s.handleProtectedEntries)
	s.mux.HandleFunc("POST /api/v1/cache/clear/upcoming-games", s.handleClearUpcoming)
	s.mux.HandleFunc("POST /api/v1/cache/clear/trends", s.handleClearResults)
	s.mux.HandleFunc("POST /api/v1/cache/clear/all", s.handleClearAll)

	return s
}

// Handler returns the server's root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.withLogging(s.mux))
}
