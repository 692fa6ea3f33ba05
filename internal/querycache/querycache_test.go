package querycache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCachePutGet(t *testing.T) {
	c := NewTTLCache(4, time.Hour)
	c.Put("a", 1)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache(4, time.Hour)
	now := time.Unix(1000, 0)
	c.SetClock(func() time.Time { return now })

	c.Put("a", 1)
	now = now.Add(59 * time.Minute)
	_, ok := c.Get("a")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Stats().CurrentSize)
}

func TestTTLCachePinnedEntryStillExpires(t *testing.T) {
	c := NewTTLCache(4, time.Hour)
	now := time.Unix(1000, 0)
	c.SetClock(func() time.Time { return now })

	c.PutPinned("snapshot", "v")
	now = now.Add(2 * time.Hour)
	_, ok := c.Get("snapshot")
	assert.False(t, ok)
}

func TestTTLCacheEvictsOldestUnpinned(t *testing.T) {
	c := NewTTLCache(2, time.Hour)
	c.PutPinned("pinned", "v")
	c.Put("old", 1)
	c.Put("new", 2)

	_, ok := c.Get("pinned")
	assert.True(t, ok)
	_, ok = c.Get("old")
	assert.False(t, ok)
	_, ok = c.Get("new")
	assert.True(t, ok)
}

func TestTTLCacheFullyPinnedStaysBounded(t *testing.T) {
	c := NewTTLCache(2, time.Hour)
	c.PutPinned("p1", 1)
	c.PutPinned("p2", 2)

	c.Put("extra", 3)
	assert.Equal(t, 2, c.Stats().CurrentSize)
	_, ok := c.Get("extra")
	assert.False(t, ok)
}

func TestTTLCacheClearPreserve(t *testing.T) {
	c := NewTTLCache(4, time.Hour)
	c.PutPinned("pinned", "keep")
	c.Put("plain", "drop")

	c.Clear(true)
	v, ok := c.Get("pinned")
	require.True(t, ok)
	assert.Equal(t, "keep", v)
	_, ok = c.Get("plain")
	assert.False(t, ok)

	c.Clear(false)
	_, ok = c.Get("pinned")
	assert.False(t, ok)
}

func TestTTLCacheClearPreserveRefreshesTTL(t *testing.T) {
	c := NewTTLCache(4, time.Hour)
	now := time.Unix(1000, 0)
	c.SetClock(func() time.Time { return now })

	c.PutPinned("pinned", "v")
	now = now.Add(50 * time.Minute)
	c.Clear(true)

	// Re-insertion restarts the clock.
	now = now.Add(50 * time.Minute)
	_, ok := c.Get("pinned")
	assert.True(t, ok)
}

func TestTTLCacheStats(t *testing.T) {
	c := NewTTLCache(16, time.Hour)
	c.Put("a", 1)

	s := c.Stats()
	assert.Equal(t, "ttl", s.Type)
	assert.Equal(t, 16, s.MaxSize)
	assert.Equal(t, 1, s.CurrentSize)
	assert.Equal(t, 3600.0, s.TTLSeconds)
	assert.Equal(t, []string{"a"}, s.Keys)
}

func TestLRUCacheEvictionOrder(t *testing.T) {
	c := NewLRUCache(2)
	c.Put("a", 1)
	c.Put("b", 2)

	// Touch a so b becomes the coldest.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Put("c", 3)
	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestLRUCachePinnedSurvivesEviction(t *testing.T) {
	c := NewLRUCache(2)
	c.PutPinned("pinned", "v")
	for i := 0; i < 10; i++ {
		c.Put(fmt.Sprintf("k%d", i), i)
	}

	v, ok := c.Get("pinned")
	require.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Equal(t, 2, c.Stats().CurrentSize)
}

func TestLRUCacheFullyPinnedStaysBounded(t *testing.T) {
	c := NewLRUCache(2)
	c.PutPinned("p1", 1)
	c.PutPinned("p2", 2)

	// No evictable slot: the newcomer is dropped, not stored past the cap.
	c.Put("extra", 3)
	assert.Equal(t, 2, c.Stats().CurrentSize)
	_, ok := c.Get("extra")
	assert.False(t, ok)
	_, ok = c.Get("p1")
	assert.True(t, ok)
}

func TestLRUCacheClearPreserve(t *testing.T) {
	c := NewLRUCache(4)
	c.PutPinned("pinned", "keep")
	c.Put("plain", "drop")

	c.Clear(true)
	_, ok := c.Get("plain")
	assert.False(t, ok)
	v, ok := c.Get("pinned")
	require.True(t, ok)
	assert.Equal(t, "keep", v)

	c.Clear(false)
	assert.Equal(t, 0, c.Stats().CurrentSize)
}

func TestLRUCacheUpdateKeepsPin(t *testing.T) {
	c := NewLRUCache(4)
	c.PutPinned("k", 1)
	c.Put("k", 2)

	c.Clear(true)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestLRUCacheStatsRecencyOrder(t *testing.T) {
	c := NewLRUCache(4)
	c.Put("a", 1)
	c.Put("b", 2)
	_, _ = c.Get("a")

	s := c.Stats()
	assert.Equal(t, "lru", s.Type)
	assert.Equal(t, []string{"a", "b"}, s.Keys)
	assert.Equal(t, []string(nil), c.PinnedKeys())
}
