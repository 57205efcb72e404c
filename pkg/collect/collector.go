package collect

import "sync"

type entryID struct {
	namespace string
	key       string
}

// Collector deduplicates ExtractedKeys by (namespace, key), applying the
// replacement policy of Invariant 1. Safe for concurrent Add calls so the
// engine can walk files in parallel (§5) behind a single mutex — the write
// itself is O(1), so a full RWMutex split isn't worth the complexity.
type Collector struct {
	mu      sync.Mutex
	entries map[entryID]Key
	order   []entryID
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{entries: make(map[entryID]Key)}
}

// Add inserts k, or applies the replacement policy against an existing
// entry for the same (namespace, key).
func (c *Collector) Add(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := entryID{namespace: k.Namespace, key: k.Key}
	existing, ok := c.entries[id]
	if !ok {
		c.entries[id] = k
		c.order = append(c.order, id)
		return
	}
	if moreSpecificThan(k, existing) {
		c.entries[id] = k
	}
}

// All returns every collected key, in first-seen order.
func (c *Collector) All() []Key {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Key, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id])
	}
	return out
}

// Len reports how many distinct (namespace, key) entries are collected.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
