package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/khetisetu/search-backend/internal/domain/entities"
	"github.com/khetisetu/search-backend/internal/domain/repositories"
	"github.com/khetisetu/search-backend/internal/infrastructure/observability"
)

// TrendingService computes the trending snapshot on demand: per-entity top
// items over the trailing window ranked by engagement, plus a merged topic
// list from tag frequency across products and questions. Nothing is
// persisted; the HTTP cache in front of the route absorbs repeat requests.
type TrendingService struct {
	adapters   map[entities.EntityType]repositories.EntitySearchRepository
	windowDays int
	perType    int
}

// NewTrendingService creates the trending computer
func NewTrendingService(adapters []repositories.EntitySearchRepository, windowDays, perType int) *TrendingService {
	byType := make(map[entities.EntityType]repositories.EntitySearchRepository, len(adapters))
	for _, adapter := range adapters {
		byType[adapter.EntityType()] = adapter
	}
	return &TrendingService{adapters: byType, windowDays: windowDays, perType: perType}
}

// trendingTypes lists the entity types the snapshot covers; experts have no
// time-windowed engagement signal worth trending on
var trendingTypes = []entities.EntityType{
	entities.EntityProducts,
	entities.EntityQuestions,
	entities.EntityArticles,
}

// Snapshot computes the trending view. When typeFilter names a single entity
// type, only that list is populated; topics are included either way.
func (s *TrendingService) Snapshot(ctx context.Context, typeFilter entities.EntityType) (*entities.TrendingSnapshot, error) {
	since := time.Now().AddDate(0, 0, -s.windowDays)
	logger := observability.LoggerFromContext(ctx)

	snapshot := &entities.TrendingSnapshot{
		Products:  []*entities.Product{},
		Questions: []*entities.Question{},
		Articles:  []*entities.Article{},
		Topics:    []entities.TopicCount{},
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, entityType := range trendingTypes {
		if typeFilter != "" && typeFilter != entities.EntityAll && typeFilter != entityType {
			continue
		}
		adapter, ok := s.adapters[entityType]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(entityType entities.EntityType, adapter repositories.EntitySearchRepository) {
			defer wg.Done()
			results, err := adapter.Trending(ctx, since, s.perType)
			if err != nil {
				logger.Warn().Err(err).Str("entity_type", string(entityType)).
					Msg("trending query failed for entity type")
				return
			}
			mu.Lock()
			s.merge(snapshot, results)
			mu.Unlock()
		}(entityType, adapter)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		topics := s.topics(ctx, since)
		mu.Lock()
		snapshot.Topics = topics
		mu.Unlock()
	}()

	wg.Wait()
	return snapshot, nil
}

func (s *TrendingService) merge(snapshot *entities.TrendingSnapshot, results []entities.SearchResult) {
	for _, r := range results {
		switch hit := r.(type) {
		case *entities.ProductResult:
			snapshot.Products = append(snapshot.Products, &hit.Product)
		case *entities.QuestionResult:
			snapshot.Questions = append(snapshot.Questions, &hit.Question)
		case *entities.ArticleResult:
			snapshot.Articles = append(snapshot.Articles, &hit.Article)
		}
	}
}

// topics sums tag frequencies across products and questions in the window
func (s *TrendingService) topics(ctx context.Context, since time.Time) []entities.TopicCount {
	logger := observability.LoggerFromContext(ctx)
	totals := map[string]int64{}

	for _, entityType := range []entities.EntityType{entities.EntityProducts, entities.EntityQuestions} {
		adapter, ok := s.adapters[entityType]
		if !ok {
			continue
		}
		counts, err := adapter.TagCounts(ctx, since, s.perType*2)
		if err != nil {
			logger.Warn().Err(err).Str("entity_type", string(entityType)).
				Msg("tag count query failed for entity type")
			continue
		}
		for _, tc := range counts {
			totals[tc.Tag] += tc.Count
		}
	}

	topics := make([]entities.TopicCount, 0, len(totals))
	for tag, count := range totals {
		topics = append(topics, entities.TopicCount{Tag: tag, Count: count})
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Count != topics[j].Count {
			return topics[i].Count > topics[j].Count
		}
		return topics[i].Tag < topics[j].Tag
	})
	if len(topics) > s.perType {
		topics = topics[:s.perType]
	}
	return topics
}
