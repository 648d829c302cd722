package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	CatalogKeyPackages = "public:packages"
	CatalogKeyServices = "public:services"
	CatalogKeyTips     = "public:nutrition_tips"
	CatalogKeyProducts = "public:products"
)

// CatalogCache holds public catalog listings for a few minutes.
type CatalogCache struct {
	cache *cache.Cache
}

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CatalogCache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *CatalogCache) Set(key string, value interface{}) {
	c.cache.Set(key, value, cache.DefaultExpiration)
}

func (c *CatalogCache) Invalidate(keys ...string) {
	for _, k := range keys {
		c.cache.Delete(k)
	}
}

func (c *CatalogCache) Flush() {
	c.cache.Flush()
}
