package reader

import (
	"context"
	"sync"

	"github.com/couchcryptid/fars-report/internal/domain"
	"github.com/couchcryptid/fars-report/internal/observability"
)

// CachedReader wraps a RecordSource with an in-memory LRU cache keyed by
// file name, so a summarize followed by a plot of the same year parses
// the file once.
type CachedReader struct {
	inner   domain.RecordSource
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedReader creates a cache decorator around a record source.
func NewCachedReader(inner domain.RecordSource, maxEntries int, metrics *observability.Metrics) *CachedReader {
	return &CachedReader{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedReader) Read(ctx context.Context, filename string) (*domain.YearRecordSet, error) {
	if set, ok := c.cache.get(filename); ok {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return set, nil
	}
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	set, err := c.inner.Read(ctx, filename)
	if err != nil {
		// Failed reads are not cached so a file dropped into the data
		// directory later is picked up.
		return nil, err
	}
	c.cache.put(filename, set)
	return set, nil
}

// lruCache is a simple thread-safe LRU cache for parsed record sets.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value *domain.YearRecordSet
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (*domain.YearRecordSet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value *domain.YearRecordSet) {
	if c.maxEntries <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
