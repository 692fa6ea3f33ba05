// Package querycache holds materialized query responses keyed by request
// fingerprint.
//
// Two caches cover two access patterns. The snapshot cache is a small TTL
// cache for the parameterless upcoming-games view, which must age out on
// its own. The result cache is an LRU over arbitrary filtered queries,
// where the fingerprint already guarantees that a hit is exact.
//
// Entries can be pinned. A pinned entry is exempt from capacity eviction
// and survives Clear when the caller asks for preservation; operators use
// this to keep the startup warm-up entries hot across cache flushes.
package querycache

import (
	"container/list"
	"sync"
	"time"
)

// Stats is a point-in-time description of one cache, shaped for the cache
// admin endpoints.
type Stats struct {
	Type        string   `json:"type"`
	MaxSize     int      `json:"maxsize"`
	CurrentSize int      `json:"current_size"`
	TTLSeconds  float64  `json:"ttl,omitempty"`
	Keys        []string `json:"keys"`
}

type ttlEntry struct {
	value    any
	storedAt time.Time
	pinned   bool
}

// TTLCache is a bounded cache whose entries expire a fixed duration after
// insertion. Expiry is lazy: entries die on the next access or Stats call
// rather than on a timer.
type TTLCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	now     func() time.Time

	entries map[string]*ttlEntry
	order   *list.List // insertion order, oldest at back; values are keys
}

// NewTTLCache returns a TTL cache bounded to maxSize entries.
func NewTTLCache(maxSize int, ttl time.Duration) *TTLCache {
	return &TTLCache{
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*ttlEntry),
		order:   list.New(),
	}
}

// SetClock overrides the cache's time source. Tests only.
func (c *TTLCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the live value for key. An expired entry counts as a miss and
// is dropped, pinned or not: pinning protects against eviction, not expiry.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		c.remove(key)
		return nil, false
	}
	return e.value, true
}

// Put stores value under key, resetting its TTL. When the cache is full the
// oldest unpinned entry is evicted first.
func (c *TTLCache) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(key, value, false)
}

// PutPinned stores value under key and protects it from eviction and from
// preserving clears.
func (c *TTLCache) PutPinned(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(key, value, true)
}

func (c *TTLCache) put(key string, value any, pinned bool) {
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.storedAt = c.now()
		e.pinned = e.pinned || pinned
		return
	}
	c.expire()
	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	if len(c.entries) >= c.maxSize {
		// Every resident entry is pinned. Dropping the newcomer keeps the
		// size bound instead of growing past it.
		return
	}
	c.entries[key] = &ttlEntry{value: value, storedAt: c.now(), pinned: pinned}
	c.order.PushFront(key)
}

// Clear drops every entry. With preserve set, pinned live entries are
// re-inserted with a fresh TTL.
func (c *TTLCache) Clear(preserve bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var kept []struct {
		key   string
		value any
	}
	if preserve {
		for k, e := range c.entries {
			if e.pinned && c.now().Sub(e.storedAt) < c.ttl {
				kept = append(kept, struct {
					key   string
					value any
				}{k, e.value})
			}
		}
	}

	c.entries = make(map[string]*ttlEntry)
	c.order.Init()
	for _, e := range kept {
		c.put(e.key, e.value, true)
	}
}

// PinnedKeys returns the keys of live pinned entries.
func (c *TTLCache) PinnedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expire()
	var keys []string
	for k, e := range c.entries {
		if e.pinned {
			keys = append(keys, k)
		}
	}
	return keys
}

// Stats snapshots the cache after dropping expired entries.
func (c *TTLCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expire()

	keys := make([]string, 0, len(c.entries))
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(string))
	}
	return Stats{
		Type:        "ttl",
		MaxSize:     c.maxSize,
		CurrentSize: len(c.entries),
		TTLSeconds:  c.ttl.Seconds(),
		Keys:        keys,
	}
}

// expire drops every entry past its TTL. Caller holds the lock.
func (c *TTLCache) expire() {
	for k, e := range c.entries {
		if c.now().Sub(e.storedAt) >= c.ttl {
			c.remove(k)
		}
	}
}

// evictOldest removes the oldest unpinned entry. Caller holds the lock.
func (c *TTLCache) evictOldest() {
	for el := c.order.Back(); el != nil; el = el.Prev() {
		key := el.Value.(string)
		if e, ok := c.entries[key]; ok && !e.pinned {
			c.remove(key)
			return
		}
	}
}

func (c *TTLCache) remove(key string) {
	delete(c.entries, key)
	for el := c.order.Front(); el != nil; el = el.Next() {
		if el.Value.(string) == key {
			c.order.Remove(el)
			return
		}
	}
}
