package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khetisetu/search-backend/internal/adapters/analytics"
	"github.com/khetisetu/search-backend/internal/adapters/cache"
	"github.com/khetisetu/search-backend/internal/adapters/database"
	"github.com/khetisetu/search-backend/internal/adapters/search"
	"github.com/khetisetu/search-backend/internal/api/handlers"
	"github.com/khetisetu/search-backend/internal/api/middleware"
	"github.com/khetisetu/search-backend/internal/api/routes"
	"github.com/khetisetu/search-backend/internal/application/services"
	"github.com/khetisetu/search-backend/internal/domain/providers"
	"github.com/khetisetu/search-backend/internal/domain/repositories"
	"github.com/khetisetu/search-backend/internal/infrastructure/clients/postgres"
	"github.com/khetisetu/search-backend/internal/infrastructure/clients/redis"
	"github.com/khetisetu/search-backend/internal/infrastructure/clients/typesense"
	"github.com/khetisetu/search-backend/internal/infrastructure/observability"
	"github.com/khetisetu/search-backend/pkg/config"
)

func main() {

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger("khetisetu-search", cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize Typesense client. The search engine is the one hard
	// dependency: without it there is nothing to serve.
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Fatalf("Failed to initialize Typesense client: %v", err)
	}
	log.Println("Typesense client initialized successfully")

	// Initialize database client. Postgres only backs the durable search
	// log, so the API degrades to serving without analytics when it is down.
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Printf("Warning: Failed to initialize PostgreSQL client: %v", err)
		pgClient = nil
	} else {
		defer pgClient.Close()
		log.Println("PostgreSQL client initialized successfully")
	}

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize adapters

	entityAdapters := []repositories.EntitySearchRepository{
		search.NewProductAdapter(typesenseClient),
		search.NewQuestionAdapter(typesenseClient),
		search.NewArticleAdapter(typesenseClient),
		search.NewExpertAdapter(typesenseClient),
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var historyRepo repositories.SearchHistoryRepository
	var popularRepo repositories.PopularSearchRepository
	if redisClient != nil {
		historyRepo = analytics.NewRedisHistoryAdapter(redisClient, cfg.Search.HistoryTTLDays)
		popularRepo = analytics.NewRedisPopularAdapter(redisClient, cfg.Search.PopularWindowDays, cfg.Search.PopularMaxTerms)
	} else {
		log.Println("Search history and popular terms disabled (Redis not available)")
	}

	var eventRepo repositories.SearchEventRepository
	if pgClient != nil {
		eventRepo = database.NewSearchEventAdapter(pgClient)
	} else {
		log.Println("Search event log disabled (PostgreSQL not available)")
	}

	// Initialize services

	analyticsService := services.NewAnalyticsService(historyRepo, popularRepo, eventRepo)

	searchService := services.NewSearchService(
		entityAdapters,
		services.NewRelevanceService(),
		analyticsService,
		metrics,
		cfg.Search.AdapterTimeout,
	)

	// Autocomplete caches in-process: the keystroke path should not pay a
	// Redis round trip.
	autocompleteService := services.NewAutocompleteService(
		entityAdapters,
		cache.NewLRUAdapter(4096, 5*time.Minute),
		cfg.Search.AutocompleteTimeout,
	)

	trendingService := services.NewTrendingService(
		entityAdapters,
		cfg.Search.TrendingWindowDays,
		cfg.Search.TrendingPerType,
	)

	// Initialize handlers

	searchHandler := handlers.NewSearchHandler(
		services.NewQueryCompiler(),
		searchService,
		autocompleteService,
		analyticsService,
		trendingService,
	)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		searchHandler,
		cacheMiddleware,
		metrics,
		cfg.Auth.JWTSecret,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
