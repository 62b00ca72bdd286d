package catalog

import (
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/trovehq/trove/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedItemEntry wraps an item with version metadata for cache invalidation
type cachedItemEntry struct {
	Version  string       `json:"version"`
	Item     *domain.Item `json:"item"`
	CachedAt time.Time    `json:"cached_at"`
}

// itemCache provides an in-memory LRU cache for catalog lookups.
// Catalog rows are immutable, so the TTL only bounds memory after reseeding.
type itemCache struct {
	items *expirable.LRU[string, *cachedItemEntry]
	lists *expirable.LRU[string, []domain.Item]
}

func newItemCache(size int, ttl time.Duration) *itemCache {
	return &itemCache{
		items: expirable.NewLRU[string, *cachedItemEntry](size, nil, ttl),
		lists: expirable.NewLRU[string, []domain.Item](size, nil, ttl),
	}
}

func nameKey(name string) string { return "name:" + name }
func idKey(id int) string        { return "id:" + strconv.Itoa(id) }

// GetItem retrieves an item from the cache by key.
// Automatically invalidates entries with mismatched versions.
func (c *itemCache) GetItem(key string) (*domain.Item, bool) {
	entry, found := c.items.Get(key)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.items.Remove(key)
		return nil, false
	}

	return entry.Item, true
}

// SetItem stores an item under both its name and ID keys.
func (c *itemCache) SetItem(item *domain.Item) {
	entry := &cachedItemEntry{
		Version:  CacheSchemaVersion,
		Item:     item,
		CachedAt: time.Now(),
	}
	c.items.Add(nameKey(item.InternalName), entry)
	c.items.Add(idKey(item.ID), entry)
}

// GetList retrieves a cached item list.
func (c *itemCache) GetList(key string) ([]domain.Item, bool) {
	return c.lists.Get(key)
}

// SetList caches an item list.
func (c *itemCache) SetList(key string, items []domain.Item) {
	c.lists.Add(key, items)
}
