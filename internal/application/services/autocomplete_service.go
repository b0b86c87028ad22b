package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/khetisetu/search-backend/internal/domain/entities"
	"github.com/khetisetu/search-backend/internal/domain/providers"
	"github.com/khetisetu/search-backend/internal/domain/repositories"
	"github.com/khetisetu/search-backend/internal/infrastructure/observability"
)

const (
	minPrefixLength      = 2
	perTypeSuggestionCap = 5
	globalSuggestionCap  = 10
	suggestionCacheTTL   = 300
)

// AutocompleteService serves prefix suggestions across entity types. It is
// the hot path behind every keystroke: no scoring pipeline, a tight timeout,
// and a short-TTL cache in front of the engine.
type AutocompleteService struct {
	adapters map[entities.EntityType]repositories.EntitySearchRepository
	cache    providers.CacheProvider
	timeout  time.Duration
}

// NewAutocompleteService creates the autocomplete engine; cache is typically
// the in-process LRU
func NewAutocompleteService(
	adapters []repositories.EntitySearchRepository,
	cache providers.CacheProvider,
	timeout time.Duration,
) *AutocompleteService {
	byType := make(map[entities.EntityType]repositories.EntitySearchRepository, len(adapters))
	for _, adapter := range adapters {
		byType[adapter.EntityType()] = adapter
	}
	return &AutocompleteService{adapters: byType, cache: cache, timeout: timeout}
}

// Suggest returns up to ten suggestions for the prefix. Prefixes shorter than
// two characters return an empty list, never an error: the UI calls this on
// every keystroke.
func (s *AutocompleteService) Suggest(ctx context.Context, prefix string, entityType entities.EntityType) ([]entities.Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if len(prefix) < minPrefixLength {
		return []entities.Suggestion{}, nil
	}
	if entityType == "" {
		entityType = entities.EntityAll
	}

	cacheKey := "autocomplete:" + string(entityType) + ":" + strings.ToLower(prefix)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var suggestions []entities.Suggestion
		if json.Unmarshal(cached, &suggestions) == nil {
			return suggestions, nil
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	targets := entities.SearchableTypes
	if entityType != entities.EntityAll {
		targets = []entities.EntityType{entityType}
	}

	logger := observability.LoggerFromContext(ctx)
	merged := []entities.Suggestion{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, target := range targets {
		adapter, ok := s.adapters[target]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(adapter repositories.EntitySearchRepository) {
			defer wg.Done()
			suggestions, err := adapter.Suggest(callCtx, prefix, perTypeSuggestionCap)
			if err != nil {
				// Best-effort per type; a slow collection loses its slots
				logger.Debug().Err(err).Str("entity_type", string(adapter.EntityType())).
					Msg("suggest failed for entity type")
				return
			}
			mu.Lock()
			merged = append(merged, suggestions...)
			mu.Unlock()
		}(adapter)
	}
	wg.Wait()

	// All candidates are prefix matches by construction; ties break
	// alphabetically for a stable dropdown
	sort.SliceStable(merged, func(i, j int) bool {
		return strings.ToLower(merged[i].Text) < strings.ToLower(merged[j].Text)
	})
	if len(merged) > globalSuggestionCap {
		merged = merged[:globalSuggestionCap]
	}

	if encoded, err := json.Marshal(merged); err == nil {
		if err := s.cache.Set(ctx, cacheKey, encoded, suggestionCacheTTL); err != nil {
			logger.Debug().Err(err).Msg("failed to cache suggestions")
		}
	}

	return merged, nil
}
