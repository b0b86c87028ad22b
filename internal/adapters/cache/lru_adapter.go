package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/khetisetu/search-backend/internal/domain/providers"
)

// LRUAdapter is an in-process expiring cache. It backs single-instance
// deployments and the autocomplete hot path, where a network round trip to
// Redis would cost more than recomputing the value.
type LRUAdapter struct {
	lru *expirable.LRU[string, []byte]
	ttl time.Duration
}

// NewLRUAdapter creates an in-process cache holding up to size entries, each
// expiring after ttl. Per-call TTLs are ignored; the cache-wide ttl wins.
func NewLRUAdapter(size int, ttl time.Duration) providers.CacheProvider {
	return &LRUAdapter{
		lru: expirable.NewLRU[string, []byte](size, nil, ttl),
		ttl: ttl,
	}
}

// Get retrieves a value, reporting a miss for absent or expired keys
func (a *LRUAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := a.lru.Get(key); ok {
		return value, nil
	}
	return nil, providers.ErrCacheMiss
}

// Set stores a value under the cache-wide TTL
func (a *LRUAdapter) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	a.lru.Add(key, value)
	return nil
}

// Delete removes a key
func (a *LRUAdapter) Delete(ctx context.Context, key string) error {
	a.lru.Remove(key)
	return nil
}
