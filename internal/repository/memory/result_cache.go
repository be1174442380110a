package memory

import (
	"time"

	"ai-shopping-be/pkg/model"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ResultCache memoizes parsed tool results by content identity.
type ResultCache struct {
	cache *cache.Cache
}

func NewResultCache(ttl, cleanupInterval time.Duration) *ResultCache {
	return &ResultCache{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (r *ResultCache) Save(key uuid.UUID, result model.ParsedToolResult) {
	r.cache.Set(key.String(), result, cache.DefaultExpiration)
}

func (r *ResultCache) Get(key uuid.UUID) (model.ParsedToolResult, bool) {
	if x, found := r.cache.Get(key.String()); found {
		return x.(model.ParsedToolResult), true
	}
	return model.ParsedToolResult{}, false
}

func (r *ResultCache) Delete(key uuid.UUID) {
	r.cache.Delete(key.String())
}

func (r *ResultCache) Len() int {
	return r.cache.ItemCount()
}
