package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khetisetu/search-backend/internal/domain/providers"
)

type mapCache struct {
	entries map[string][]byte
	sets    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := c.entries[key]; ok {
		return value, nil
	}
	return nil, providers.ErrCacheMiss
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	c.entries[key] = value
	c.sets++
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func TestCacheKeyIgnoresParameterOrder(t *testing.T) {
	m := NewCacheMiddleware(newMapCache(), nil)

	a := httptest.NewRequest(http.MethodGet, "/api/search/trending?type=products&limit=5", nil)
	b := httptest.NewRequest(http.MethodGet, "/api/search/trending?limit=5&type=products", nil)
	c := httptest.NewRequest(http.MethodGet, "/api/search/trending?limit=6&type=products", nil)

	assert.Equal(t, m.generateCacheKey(a), m.generateCacheKey(b))
	assert.NotEqual(t, m.generateCacheKey(a), m.generateCacheKey(c))
}

func TestCacheMiddlewareServesSecondRequestFromCache(t *testing.T) {
	store := newMapCache()
	m := NewCacheMiddleware(store, nil)

	calls := 0
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"success":true}`)); err != nil {
			t.Fatal(err)
		}
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/search/trending?type=products", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/search/trending?type=products", nil))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, store.sets)
}

// Search result and history routes are never cached: repeat searches must
// reach the pipeline so history and popularity count every one of them.
func TestCacheMiddlewareNeverCachesSearchOrHistoryRoutes(t *testing.T) {
	store := newMapCache()
	m := NewCacheMiddleware(store, nil)

	calls := 0
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	paths := []string{
		"/api/search?q=tomato",
		"/api/search/products?q=tomato",
		"/api/search/recent",
	}
	for _, path := range paths {
		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	}

	assert.Equal(t, 2*len(paths), calls)
	assert.Empty(t, store.entries)
}

func TestCacheMiddlewareSkipsErrorResponses(t *testing.T) {
	store := newMapCache()
	m := NewCacheMiddleware(store, nil)

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search/trending?type=bogus", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.entries)
}
