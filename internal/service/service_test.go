package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmfalke/trendline/internal/filter"
	"github.com/dmfalke/trendline/internal/fingerprint"
	"github.com/dmfalke/trendline/internal/seed"
	"github.com/dmfalke/trendline/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func gameFilter(t *testing.T, body string) *filter.GameFilter {
	t.Helper()
	var f filter.GameFilter
	require.NoError(t, json.Unmarshal([]byte(body), &f))
	return &f
}

func trendFilter(t *testing.T, body string) *filter.TrendFilter {
	t.Helper()
	var f filter.TrendFilter
	require.NoError(t, json.Unmarshal([]byte(body), &f))
	return &f
}

func insertTestTrend(t *testing.T, s *Service, id string, winPct float64) {
	t.Helper()
	_, err := s.store.DB().Exec(`
		INSERT INTO trends (id_string, category, seasons, wins, losses, pushes,
			total_games, win_percentage, games_applicable)
		VALUES (?, 'home outright', 'since 2006-2007', 10, 5, 0, 15, ?, '')`,
		id, winPct)
	require.NoError(t, err)
}

func insertTestUpcoming(t *testing.T, s *Service, id, date string) {
	t.Helper()
	_, err := s.store.DB().Exec(`
		INSERT INTO upcoming_games (id_string, date, month, day, year, season,
			day_of_week, home_team, away_team, home_abbreviation, away_abbreviation,
			home_division, away_division, divisional)
		VALUES (?, ?, 'September', 28, 2025, '2025-2026', 'Sunday',
			'Dallas Cowboys', 'Philadelphia Eagles', 'DAL', 'PHI',
			'NFC EAST', 'NFC EAST', 1)`,
		id, date)
	require.NoError(t, err)
}

func TestGamesSecondRequestServedFromCache(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	env, cached, err := s.Games(ctx, gameFilter(t, `{"year": 2021}`))
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 0, env.TotalCount)

	// Same meaning, different spelling: still a hit.
	env2, cached, err := s.Games(ctx, gameFilter(t, `{"year": [2021], "limit": 100}`))
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Same(t, env, env2)

	_, cached, err = s.Games(ctx, gameFilter(t, `{"year": 2020}`))
	require.NoError(t, err)
	assert.False(t, cached)
}

func TestGamesValidationErrorWritesNothing(t *testing.T) {
	s := newTestService(t)

	_, _, err := s.Games(context.Background(), gameFilter(t, `{"home_team": "Dallas Texans"}`))
	require.Error(t, err)
	assert.True(t, filter.IsValidationError(err))
	assert.Equal(t, 0, s.CacheStats()["query_results"].CurrentSize)
}

func TestTrendsEnvelopeCounts(t *testing.T) {
	s := newTestService(t)
	insertTestTrend(t, s, "low", 40)
	insertTestTrend(t, s, "high", 80)

	env, cached, err := s.Trends(context.Background(), trendFilter(t, `{"limit": 1}`))
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 1, env.Limit)
	assert.Equal(t, 1, env.Count)
	assert.Equal(t, 2, env.TotalCount)
	require.Len(t, env.Results, 1)
	assert.Equal(t, "high", env.Results[0].IDString)
}

func TestUpcomingSnapshotIsPinned(t *testing.T) {
	s := newTestService(t)
	insertTestUpcoming(t, s, "DALPHI20250928", "2025-09-28")

	snap, cached, err := s.UpcomingGames(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 1, snap.Count)

	_, cached, err = s.UpcomingGames(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)

	protected := s.ProtectedEntries()
	assert.Equal(t, []string{fingerprint.UpcomingSnapshotKey}, protected["upcoming_games"])
}

func TestWarmUpPinsBothEntries(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.WarmUp(context.Background()))

	protected := s.ProtectedEntries()
	assert.Len(t, protected["upcoming_games"], 1)
	assert.Len(t, protected["query_results"], 1)

	// Preserving clears keep the warm-up entries; full clears drop them.
	s.ClearAll(true)
	protected = s.ProtectedEntries()
	assert.Len(t, protected["upcoming_games"], 1)
	assert.Len(t, protected["query_results"], 1)

	s.ClearAll(false)
	protected = s.ProtectedEntries()
	assert.Empty(t, protected["upcoming_games"])
	assert.Empty(t, protected["query_results"])
}

func TestWarmUpScopesSeedToSlate(t *testing.T) {
	s := newTestService(t)
	insertTestUpcoming(t, s, "DALPHI20250928", "2025-09-28")
	require.NoError(t, s.WarmUp(context.Background()))

	// The pinned entry is keyed by the seed query narrowed to the games
	// currently on the slate, not by the bare seed document.
	f, err := seed.InitialTrendQuery()
	require.NoError(t, err)
	f.GamesApplicable = filter.StringList{"DALPHI20250928"}
	require.NoError(t, f.Normalize())
	key, err := fingerprint.Trends(f.Canonical())
	require.NoError(t, err)

	assert.Equal(t, []string{key}, s.ProtectedEntries()["query_results"])
}

func TestWarmedTrendQueryHitsCache(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.WarmUp(context.Background()))

	// Re-issuing the warm-up query as a plain request is a cache hit.
	seedKeys := s.ProtectedEntries()["query_results"]
	require.Len(t, seedKeys, 1)

	stats := s.CacheStats()["query_results"]
	assert.Contains(t, stats.Keys, seedKeys[0])
}

func TestCacheStatsShape(t *testing.T) {
	s := newTestService(t)
	stats := s.CacheStats()

	snap := stats["upcoming_games"]
	assert.Equal(t, "ttl", snap.Type)
	assert.Equal(t, SnapshotCacheSize, snap.MaxSize)
	assert.Equal(t, 3600.0, snap.TTLSeconds)

	results := stats["query_results"]
	assert.Equal(t, "lru", results.Type)
	assert.Equal(t, ResultCacheSize, results.MaxSize)
}

func TestClearResultsPreservesOnlyPinned(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	require.NoError(t, s.WarmUp(ctx))

	_, _, err := s.Games(ctx, gameFilter(t, `{"year": 2021}`))
	require.NoError(t, err)
	assert.Equal(t, 2, s.CacheStats()["query_results"].CurrentSize)

	s.ClearResults(true)
	assert.Equal(t, 1, s.CacheStats()["query_results"].CurrentSize)
}
