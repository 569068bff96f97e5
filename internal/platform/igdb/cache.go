package igdb

import (
	"context"
	"sync"
	"time"

	"gamerecs/internal/metrics"
)

// SearchCache memoizes Searcher results per literal query string. Entries
// expire a fixed TTL after write, and the entry count never exceeds the
// configured capacity; the least recently used entry is evicted first.
// Failed searches are never cached.
type SearchCache struct {
	next     Searcher
	ttl      time.Duration
	capacity int

	mu    sync.Mutex
	items map[string]*cacheEntry

	// head.next is the most recently used, tail.prev the least.
	head *cacheEntry
	tail *cacheEntry

	// clock is swappable in tests.
	clock func() time.Time
}

type cacheEntry struct {
	query     string
	games     []Game
	writtenAt time.Time
	prev      *cacheEntry
	next      *cacheEntry
}

func NewSearchCache(next Searcher, ttl time.Duration, capacity int) *SearchCache {
	if capacity <= 0 {
		capacity = 1000
	}
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}

	c := &SearchCache{
		next:     next,
		ttl:      ttl,
		capacity: capacity,
		items:    make(map[string]*cacheEntry, capacity),
		head:     &cacheEntry{},
		tail:     &cacheEntry{},
		clock:    time.Now,
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// SearchGames returns the cached result for query if present and fresh,
// otherwise delegates to the wrapped Searcher and stores the result.
// Concurrent misses for the same key may each hit the wrapped Searcher;
// the cache only guarantees map integrity, not single-flight.
func (c *SearchCache) SearchGames(ctx context.Context, query string) ([]Game, error) {
	if games, ok := c.lookup(query); ok {
		metrics.CacheHitsTotal.Inc()
		return games, nil
	}
	metrics.CacheMissesTotal.Inc()

	games, err := c.next.SearchGames(ctx, query)
	if err != nil {
		return nil, err
	}

	c.store(query, games)
	return games, nil
}

// InvalidateAll empties the cache immediately.
func (c *SearchCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*cacheEntry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// Len reports the current entry count, expired entries included.
func (c *SearchCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *SearchCache) lookup(query string) ([]Game, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[query]
	if !ok {
		return nil, false
	}

	// Expiry is measured from write time; reads do not extend it.
	if c.clock().Sub(entry.writtenAt) >= c.ttl {
		c.remove(entry)
		metrics.CacheEvictionsTotal.Inc()
		return nil, false
	}

	c.moveToFront(entry)
	return entry.games, true
}

func (c *SearchCache) store(query string, games []Game) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[query]; ok {
		entry.games = games
		entry.writtenAt = c.clock()
		c.moveToFront(entry)
		return
	}

	entry := &cacheEntry{
		query:     query,
		games:     games,
		writtenAt: c.clock(),
	}
	c.items[query] = entry
	c.addToFront(entry)

	for len(c.items) > c.capacity {
		oldest := c.tail.prev
		c.remove(oldest)
		metrics.CacheEvictionsTotal.Inc()
	}
}

func (c *SearchCache) addToFront(entry *cacheEntry) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *SearchCache) moveToFront(entry *cacheEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *SearchCache) remove(entry *cacheEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.query)
}
