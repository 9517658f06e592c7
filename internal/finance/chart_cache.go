package finance

import (
	"sync"
	"time"
)

// Chart image cache entry
type chartCacheEntry struct {
	createdAt time.Time
	image     []byte
}

// ChartCache keeps rendered chart bytes for a fixed TTL. A zero TTL disables it.
type ChartCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]chartCacheEntry
}

func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{ttl: ttl, now: time.Now, entries: map[string]chartCacheEntry{}}
}

func (c *ChartCache) Get(key string) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok {
		if c.now().Before(entry.createdAt.Add(c.ttl)) {
			img := make([]byte, len(entry.image))
			copy(img, entry.image)
			return img, true
		}
		delete(c.entries, key)
	}
	return nil, false
}

func (c *ChartCache) Set(key string, img []byte) {
	if c.ttl <= 0 {
		return
	}
	stored := make([]byte, len(img))
	copy(stored, img)
	c.mu.Lock()
	c.entries[key] = chartCacheEntry{createdAt: c.now(), image: stored}
	c.mu.Unlock()
}

// GetOrRender returns the cached bytes for key or renders and caches them.
func (c *ChartCache) GetOrRender(key string, render func() ([]byte, error)) ([]byte, error) {
	if img, ok := c.Get(key); ok {
		return img, nil
	}
	img, err := render()
	if err != nil {
		return nil, err
	}
	c.Set(key, img)
	return img, nil
}
