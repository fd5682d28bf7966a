package catalog

import (
	"image"
	"sync"
)

// Resolver resolves an image identifier to a decoded texture. A nil result
// means "blank paper"; the renderer falls back to its paper color.
type Resolver interface {
	Resolve(name string) *image.NRGBA
}

// Cache is a concurrency-safe image cache over an Index. Sequence workers
// share one cache so each page image is decoded exactly once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img *image.NRGBA // nil when the load was attempted and failed
}

// NewCache creates an image cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches an image by identifier. Returns nil for unknown
// identifiers or undecodable files.
func (c *Cache) Resolve(name string) *image.NRGBA {
	if name == "" {
		return nil
	}
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil
	}

	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	img, _ := LoadImage(path)

	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img}
	c.mu.Unlock()

	return img
}
