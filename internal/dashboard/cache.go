package dashboard

import (
	"container/list"
	"sync"
)

// reportCache is a mutex-guarded LRU of computed reports keyed by selection.
// Reports are copied in and out, so callers never share an entry's slices.
type reportCache struct {
	maxEntries int
	mu         sync.Mutex
	order      *list.List // front is most recently used
	entries    map[string]*list.Element
}

type cacheEntry struct {
	key    string
	report Report
}

func newReportCache(maxEntries int) *reportCache {
	return &reportCache{
		maxEntries: maxEntries,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
	}
}

func (c *reportCache) get(key string) (Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return Report{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).report.clone(), true
}

func (c *reportCache) put(key string, r Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).report = r.clone()
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, report: r.clone()})
	if c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *reportCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
