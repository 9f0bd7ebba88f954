package poster

import "sync"

// Cache maps titles to resolved poster URLs. An empty URL records a known miss.
type Cache interface {
	Get(title string) (url string, found bool)
	Set(title, url string)
}

// MemoryCache is a session-scoped Cache safe for concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache returns an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (c *MemoryCache) Get(title string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	url, ok := c.entries[title]
	return url, ok
}

func (c *MemoryCache) Set(title, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[title] = url
}

// Clear drops every cached entry.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
}

// Len returns the number of cached titles.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
