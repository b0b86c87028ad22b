package cache

import (
	"context"

	"github.com/khetisetu/search-backend/internal/domain/providers"
)

// NoopAdapter always misses. It stands in for Redis when caching is disabled
// or the cache backend is unreachable; every lookup falls through to the real
// pipeline.
type NoopAdapter struct{}

// NewNoopAdapter creates the always-miss cache adapter
func NewNoopAdapter() providers.CacheProvider {
	return &NoopAdapter{}
}

// Get always reports a miss
func (a *NoopAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, providers.ErrCacheMiss
}

// Set discards the value
func (a *NoopAdapter) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	return nil
}

// Delete is a no-op
func (a *NoopAdapter) Delete(ctx context.Context, key string) error {
	return nil
}
