// Package service implements the query operations behind the API: validate,
// fingerprint, consult the cache, and only then compile and hit the store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmfalke/trendline/internal/compile"
	"github.com/dmfalke/trendline/internal/filter"
	"github.com/dmfalke/trendline/internal/fingerprint"
	"github.com/dmfalke/trendline/internal/querycache"
	"github.com/dmfalke/trendline/internal/seed"
	"github.com/dmfalke/trendline/internal/store"
)

// Cache sizing. The snapshot cache holds one logical entry; the headroom is
// for future parameterless views. Result entries can be large (a trend
// sweep runs to thousands of rows), so the LRU stays small.
const (
	SnapshotCacheSize = 16
	SnapshotTTL       = time.Hour
	ResultCacheSize   = 100
)

// Envelope is the uniform response shape for filtered queries. TotalCount
// is the match count before pagination; Count is the page size actually
// returned.
type Envelope[T any] struct {
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
	Count      int `json:"count"`
	TotalCount int `json:"total_count"`
	Results    []T `json:"results"`
}

// UpcomingSnapshot is the cached upcoming-games view.
type UpcomingSnapshot struct {
	Count   int                  `json:"count"`
	Results []store.UpcomingGame `json:"results"`
}

// Service owns the caches and coordinates query execution.
type Service struct {
	store *store.Store
	log   *slog.Logger

	snapshot *querycache.TTLCache
	results  *querycache.LRUCache
}

// CacheSizing overrides the default cache construction.
type CacheSizing struct {
	SnapshotSize int
	SnapshotTTL  time.Duration
	ResultsSize  int
}

// New creates a Service over an open store with default cache sizing.
func New(st *store.Store, log *slog.Logger) *Service {
	return NewSized(st, log, CacheSizing{
		SnapshotSize: SnapshotCacheSize,
		SnapshotTTL:  SnapshotTTL,
		ResultsSize:  ResultCacheSize,
	})
}

// NewSized creates a Service with explicit cache sizing.
func NewSized(st *store.Store, log *slog.Logger, sz CacheSizing) *Service {
	return &Service{
		store:    st,
		log:      log,
		snapshot: querycache.NewTTLCache(sz.SnapshotSize, sz.SnapshotTTL),
		results:  querycache.NewLRUCache(sz.ResultsSize),
	}
}

// Games answers a filtered game query. The second return reports whether
// the response came from cache.
func (s *Service) Games(ctx context.Context, f *filter.GameFilter) (*Envelope[store.Game], bool, error) {
	if err := f.Normalize(); err != nil {
		return nil, false, err
	}

	key, err := fingerprint.Games(f.Canonical())
	if err != nil {
		return nil, false, err
	}

	if v, ok := s.results.Get(key); ok {
		s.log.DebugContext(ctx, "cache hit", "kind", "games", "key", key)
		return v.(*Envelope[store.Game]), true, nil
	}

	frag, keys, err := compile.Games(f)
	if err != nil {
		return nil, false, err
	}

	rows, total, err := s.store.Games(ctx, frag, keys, *f.Limit, *f.Offset)
	if err != nil {
		// Never cache a failed query.
		return nil, false, fmt.Errorf("games: %w", err)
	}

	env := &Envelope[store.Game]{
		Limit:      *f.Limit,
		Offset:     *f.Offset,
		Count:      len(rows),
		TotalCount: total,
		Results:    rows,
	}
	s.results.Put(key, env)
	s.log.DebugContext(ctx, "cache store", "kind", "games", "key", key, "total_count", total)
	return env, false, nil
}

// Trends answers a filtered trend query.
func (s *Service) Trends(ctx context.Context, f *filter.TrendFilter) (*Envelope[store.Trend], bool, error) {
	env, cached, err := s.trends(ctx, f, false)
	return env, cached, err
}

func (s *Service) trends(ctx context.Context, f *filter.TrendFilter, pin bool) (*Envelope[store.Trend], bool, error) {
	if err := f.Normalize(); err != nil {
		return nil, false, err
	}

	key, err := fingerprint.Trends(f.Canonical())
	if err != nil {
		return nil, false, err
	}

	if v, ok := s.results.Get(key); ok {
		s.log.DebugContext(ctx, "cache hit", "kind", "trends", "key", key)
		return v.(*Envelope[store.Trend]), true, nil
	}

	frag, keys, err := compile.Trends(f)
	if err != nil {
		return nil, false, err
	}

	rows, total, err := s.store.Trends(ctx, frag, keys, *f.Limit, *f.Offset)
	if err != nil {
		return nil, false, fmt.Errorf("trends: %w", err)
	}

	env := &Envelope[store.Trend]{
		Limit:      *f.Limit,
		Offset:     *f.Offset,
		Count:      len(rows),
		TotalCount: total,
		Results:    rows,
	}
	if pin {
		s.results.PutPinned(key, env)
	} else {
		s.results.Put(key, env)
	}
	s.log.DebugContext(ctx, "cache store", "kind", "trends", "key", key, "total_count", total, "pinned", pin)
	return env, false, nil
}

// UpcomingGames returns the upcoming-games snapshot, refreshing it from the
// store when the cached copy has aged out.
func (s *Service) UpcomingGames(ctx context.Context) (*UpcomingSnapshot, bool, error) {
	if v, ok := s.snapshot.Get(fingerprint.UpcomingSnapshotKey); ok {
		return v.(*UpcomingSnapshot), true, nil
	}

	games, err := s.store.UpcomingGames(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("upcoming games: %w", err)
	}

	snap := &UpcomingSnapshot{Count: len(games), Results: games}
	// The snapshot key is the designated protected entry.
	s.snapshot.PutPinned(fingerprint.UpcomingSnapshotKey, snap)
	return snap, false, nil
}

// WarmUp populates the pinned cache entries: the upcoming-games snapshot
// and the canonical initial trend sweep. The sweep is scoped to the games
// currently on the slate, so the snapshot is fetched first and its game ids
// feed the seed query before it is fingerprinted.
func (s *Service) WarmUp(ctx context.Context) error {
	snap, _, err := s.UpcomingGames(ctx)
	if err != nil {
		return fmt.Errorf("warm up: %w", err)
	}

	f, err := seed.InitialTrendQuery()
	if err != nil {
		return fmt.Errorf("warm up: %w", err)
	}
	for _, g := range snap.Results {
		f.GamesApplicable = append(f.GamesApplicable, g.IDString)
	}
	if _, _, err := s.trends(ctx, f, true); err != nil {
		return fmt.Errorf("warm up: %w", err)
	}

	s.log.InfoContext(ctx, "cache warm-up complete",
		"protected_snapshot", s.snapshot.PinnedKeys(),
		"protected_results", s.results.PinnedKeys())
	return nil
}
