package providers

import "context"

type cacheMissError struct{}

func (cacheMissError) Error() string { return "cache miss" }

// ErrCacheMiss is returned by Get when the key is absent. Callers must treat
// the cache as a performance optimization only: a miss (or any cache error)
// always falls through to the real pipeline.
var ErrCacheMiss error = cacheMissError{}

// CacheProvider is the pluggable result-cache port. It must be satisfiable by
// a no-op (always-miss) implementation without changing any caller.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
