package service

import "github.com/dmfalke/trendline/internal/querycache"

// CacheStats reports both caches.
func (s *Service) CacheStats() map[string]querycache.Stats {
	return map[string]querycache.Stats{
		"upcoming_games": s.snapshot.Stats(),
		"query_results":  s.results.Stats(),
	}
}

// ClearUpcoming flushes the snapshot cache. With preserve set, the pinned
// snapshot survives.
func (s *Service) ClearUpcoming(preserve bool) {
	s.snapshot.Clear(preserve)
}

// ClearResults flushes the query result cache. With preserve set, pinned
// warm-up entries survive.
func (s *Service) ClearResults(preserve bool) {
	s.results.Clear(preserve)
}

// ClearAll flushes both caches.
func (s *Service) ClearAll(preserve bool) {
	s.snapshot.Clear(preserve)
	s.results.Clear(preserve)
}

// ProtectedEntries lists the pinned keys per cache.
func (s *Service) ProtectedEntries() map[string][]string {
	return map[string][]string{
		"upcoming_games": s.snapshot.PinnedKeys(),
		"query_results":  s.results.PinnedKeys(),
	}
}
