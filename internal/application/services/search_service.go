package services

import (
	"context"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/khetisetu/search-backend/internal/domain/entities"
	"github.com/khetisetu/search-backend/internal/domain/repositories"
	"github.com/khetisetu/search-backend/internal/infrastructure/observability"
	apperrors "github.com/khetisetu/search-backend/pkg/errors"
)

// UnifiedSearchResult is the merged answer to a type=all query. Every entity
// list is non-nil; a degraded adapter contributes an empty slice.
type UnifiedSearchResult struct {
	Products     []*entities.ProductResult
	Questions    []*entities.QuestionResult
	Articles     []*entities.ArticleResult
	Experts      []*entities.ExpertResult
	TotalResults int64
}

// SearchService runs compiled queries against the entity adapters: a single
// adapter for explicit types, a parallel fan-out for type=all. Each adapter
// sits behind its own circuit breaker so a down backing store sheds load fast
// instead of eating the per-call timeout on every request.
type SearchService struct {
	adapters  map[entities.EntityType]repositories.EntitySearchRepository
	breakers  map[entities.EntityType]*gobreaker.CircuitBreaker
	relevance *RelevanceService
	analytics *AnalyticsService
	metrics   *observability.Metrics
	timeout   time.Duration
}

// NewSearchService wires the per-entity adapters into the search pipeline
func NewSearchService(
	adapters []repositories.EntitySearchRepository,
	relevance *RelevanceService,
	analytics *AnalyticsService,
	metrics *observability.Metrics,
	adapterTimeout time.Duration,
) *SearchService {
	byType := make(map[entities.EntityType]repositories.EntitySearchRepository, len(adapters))
	breakers := make(map[entities.EntityType]*gobreaker.CircuitBreaker, len(adapters))
	for _, adapter := range adapters {
		byType[adapter.EntityType()] = adapter
		breakers[adapter.EntityType()] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    string(adapter.EntityType()),
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		})
	}
	return &SearchService{
		adapters:  byType,
		breakers:  breakers,
		relevance: relevance,
		analytics: analytics,
		metrics:   metrics,
		timeout:   adapterTimeout,
	}
}

// SearchEntity answers a single-entity query. An adapter failure here is a
// user-facing outage for that entity type.
func (s *SearchService) SearchEntity(ctx context.Context, query *entities.SearchQuery, userID string) (*entities.SearchPage, error) {
	started := time.Now()

	page, err := s.searchOne(ctx, query.Type, query)
	if err != nil {
		return nil, apperrors.NewUnavailableError("search is unavailable for "+string(query.Type), err)
	}

	s.scoreAndRank(query, page.Results)
	observability.RecordSearchMetric(ctx, s.metrics, string(query.Type), time.Since(started))
	s.analytics.TrackSearch(ctx, userID, query, page.TotalCount, time.Since(started))

	return page, nil
}

// SearchAll fans the query out to every entity adapter in parallel, bounding
// latency to the slowest adapter. A failed adapter degrades to an empty list
// for its type; the unified response still succeeds.
func (s *SearchService) SearchAll(ctx context.Context, query *entities.SearchQuery, userID string) (*UnifiedSearchResult, error) {
	started := time.Now()
	logger := observability.LoggerFromContext(ctx)

	pages := make(map[entities.EntityType]*entities.SearchPage, len(entities.SearchableTypes))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, entityType := range entities.SearchableTypes {
		if _, ok := s.adapters[entityType]; !ok {
			continue
		}
		wg.Add(1)
		go func(entityType entities.EntityType) {
			defer wg.Done()
			page, err := s.searchOne(ctx, entityType, query)
			if err != nil {
				logger.Warn().Err(err).Str("entity_type", string(entityType)).
					Msg("entity adapter failed, degrading to empty results")
				observability.RecordAdapterFailure(ctx, s.metrics, string(entityType))
				page = &entities.SearchPage{Results: []entities.SearchResult{}}
			}
			mu.Lock()
			pages[entityType] = page
			mu.Unlock()
		}(entityType)
	}
	wg.Wait()

	result := &UnifiedSearchResult{
		Products:  []*entities.ProductResult{},
		Questions: []*entities.QuestionResult{},
		Articles:  []*entities.ArticleResult{},
		Experts:   []*entities.ExpertResult{},
	}
	for _, page := range pages {
		s.scoreAndRank(query, page.Results)
		result.TotalResults += page.TotalCount
		for _, r := range page.Results {
			switch hit := r.(type) {
			case *entities.ProductResult:
				result.Products = append(result.Products, hit)
			case *entities.QuestionResult:
				result.Questions = append(result.Questions, hit)
			case *entities.ArticleResult:
				result.Articles = append(result.Articles, hit)
			case *entities.ExpertResult:
				result.Experts = append(result.Experts, hit)
			}
		}
	}

	observability.RecordSearchMetric(ctx, s.metrics, string(entities.EntityAll), time.Since(started))
	s.analytics.TrackSearch(ctx, userID, query, result.TotalResults, time.Since(started))

	return result, nil
}

// searchOne runs a single adapter behind its breaker with the per-adapter
// timeout
func (s *SearchService) searchOne(ctx context.Context, entityType entities.EntityType, query *entities.SearchQuery) (*entities.SearchPage, error) {
	adapter, ok := s.adapters[entityType]
	if !ok {
		return nil, apperrors.NewInternalError("no adapter for entity type "+string(entityType), nil)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.breakers[entityType].Execute(func() (interface{}, error) {
		return adapter.Search(callCtx, query)
	})
	if err != nil {
		return nil, err
	}
	return result.(*entities.SearchPage), nil
}

// scoreAndRank computes composite scores for the page. Only relevance sort
// re-orders; every other mode keeps the engine's field ordering, scores are
// attached for display only.
func (s *SearchService) scoreAndRank(query *entities.SearchQuery, results []entities.SearchResult) {
	s.relevance.ScoreAll(results)
	if query.Sort == entities.SortRelevance {
		s.relevance.Rank(results)
	}
}
