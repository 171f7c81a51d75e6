package meetingapi

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	body      []byte
	fetchedAt time.Time
}

// responseCache maps fully qualified urls to the last response body
// fetched for them. Entries are replaced on refetch and only treated
// as stale once their age exceeds the ttl, they are never evicted in
// the background. Concurrent callers of the same url coalesce onto a
// single in-flight fetch.
type responseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	flight  singleflight.Group

	enabled bool
	ttl     time.Duration
	now     func() time.Time
}

func newResponseCache(enabled bool, ttl time.Duration) *responseCache {
	return &responseCache{
		entries: map[string]cacheEntry{},
		enabled: enabled,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *responseCache) lookup(url string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[url]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return entry.body, true
}

func (c *responseCache) store(url string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = cacheEntry{body: body, fetchedAt: c.now()}
}

// GetOrFetch returns the cached body for url while it is fresh,
// otherwise it invokes fetch and stores the result. With the cache
// disabled every call invokes fetch.
func (c *responseCache) GetOrFetch(url string, fetch func() ([]byte, error)) ([]byte, error) {
	if !c.enabled {
		return fetch()
	}

	if body, ok := c.lookup(url); ok {
		return body, nil
	}

	body, err, _ := c.flight.Do(url, func() (any, error) {
		// a coalesced waiter may arrive after the entry was
		// already refreshed
		if body, ok := c.lookup(url); ok {
			return body, nil
		}
		body, err := fetch()
		if err != nil {
			return nil, err
		}
		c.store(url, body)
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (c *responseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]cacheEntry{}
}

// CacheStats describes the current cache contents for introspection.
type CacheStats struct {
	Size    int
	Keys    []string
	Enabled bool
	TTL     time.Duration
}

func (c *responseCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return CacheStats{
		Size:    len(c.entries),
		Keys:    keys,
		Enabled: c.enabled,
		TTL:     c.ttl,
	}
}
