package querycache

import (
	"container/list"
	"sync"
)

type lruEntry struct {
	key    string
	value  any
	pinned bool
}

// LRUCache is a bounded least-recently-used cache. Get refreshes recency;
// eviction takes the coldest unpinned entry.
type LRUCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*list.Element
	order   *list.List // most recent at front; values are *lruEntry
}

// NewLRUCache returns an LRU cache bounded to maxSize entries.
func NewLRUCache(maxSize int) *LRUCache {
	return &LRUCache{
		maxSize: maxSize,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Get returns the value for key and marks it most recently used.
func (c *LRUCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).value, true
}

// Put stores value under key as the most recently used entry.
func (c *LRUCache) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(key, value, false)
}

// PutPinned stores value under key and protects it from eviction and from
// preserving clears.
func (c *LRUCache) PutPinned(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(key, value, true)
}

func (c *LRUCache) put(key string, value any, pinned bool) {
	if el, ok := c.entries[key]; ok {
		e := el.Value.(*lruEntry)
		e.value = value
		e.pinned = e.pinned || pinned
		c.order.MoveToFront(el)
		return
	}
	if len(c.entries) >= c.maxSize {
		c.evictColdest()
	}
	if len(c.entries) >= c.maxSize {
		// Every resident entry is pinned. Dropping the newcomer keeps the
		// size bound instead of growing past it.
		return
	}
	c.entries[key] = c.order.PushFront(&lruEntry{key: key, value: value, pinned: pinned})
}

// Clear drops every entry. With preserve set, pinned entries are
// re-inserted, keeping their relative recency.
func (c *LRUCache) Clear(preserve bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var kept []*lruEntry
	if preserve {
		for el := c.order.Back(); el != nil; el = el.Prev() {
			if e := el.Value.(*lruEntry); e.pinned {
				kept = append(kept, e)
			}
		}
	}

	c.entries = make(map[string]*list.Element)
	c.order.Init()
	for _, e := range kept {
		c.entries[e.key] = c.order.PushFront(e)
	}
}

// PinnedKeys returns the keys of pinned entries.
func (c *LRUCache) PinnedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var keys []string
	for el := c.order.Front(); el != nil; el = el.Next() {
		if e := el.Value.(*lruEntry); e.pinned {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Stats snapshots the cache. Keys are listed most recently used first.
func (c *LRUCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*lruEntry).key)
	}
	return Stats{
		Type:        "lru",
		MaxSize:     c.maxSize,
		CurrentSize: len(c.entries),
		Keys:        keys,
	}
}

// evictColdest removes the least recently used unpinned entry. Caller holds
// the lock.
func (c *LRUCache) evictColdest() {
	for el := c.order.Back(); el != nil; el = el.Prev() {
		e := el.Value.(*lruEntry)
		if !e.pinned {
			c.order.Remove(el)
			delete(c.entries, e.key)
			return
		}
	}
}
