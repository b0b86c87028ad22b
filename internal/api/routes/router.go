package routes

import (
	"net/http"

	"github.com/khetisetu/search-backend/internal/api/handlers"
	"github.com/khetisetu/search-backend/internal/api/middleware"
	"github.com/khetisetu/search-backend/internal/infrastructure/observability"
)

// Router holds the route handlers and cross-cutting middleware
type Router struct {
	mux *http.ServeMux

	searchHandler *handlers.SearchHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	jwtSecret       string
}

// NewRouter creates a new router
func NewRouter(
	searchHandler *handlers.SearchHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	jwtSecret string,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		searchHandler:   searchHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
		jwtSecret:       jwtSecret,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Search endpoints. The static paths (autocomplete, popular, ...) must
	// not collide with the {type} wildcard, so each entity gets its own
	// literal route.
	r.mux.HandleFunc("GET /api/search", r.searchHandler.Search)
	r.mux.HandleFunc("GET /api/search/products", r.searchHandler.SearchProducts)
	r.mux.HandleFunc("GET /api/search/questions", r.searchHandler.SearchQuestions)
	r.mux.HandleFunc("GET /api/search/articles", r.searchHandler.SearchArticles)
	r.mux.HandleFunc("GET /api/search/experts", r.searchHandler.SearchExperts)

	r.mux.HandleFunc("GET /api/search/autocomplete", r.searchHandler.Autocomplete)
	r.mux.HandleFunc("GET /api/search/popular", r.searchHandler.Popular)
	r.mux.HandleFunc("GET /api/search/trending", r.searchHandler.Trending)

	// History endpoints require an authenticated caller
	r.mux.HandleFunc("GET /api/search/recent", middleware.RequireIdentity(r.searchHandler.Recent))
	r.mux.HandleFunc("DELETE /api/search/recent", middleware.RequireIdentity(r.searchHandler.ClearRecent))

	// Analytics endpoints
	r.mux.HandleFunc("GET /api/search/analytics/zero-results", r.searchHandler.ZeroResults)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Identity sits inside the cache: cached routes are public and identity
	// must never become part of a shared cache entry.
	handler = middleware.OptionalIdentity(r.jwtSecret)(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
