package services

import (
	"context"
	"time"

	"github.com/khetisetu/search-backend/internal/domain/entities"
	"github.com/khetisetu/search-backend/internal/domain/repositories"
	"github.com/khetisetu/search-backend/internal/infrastructure/observability"
)

const trackTimeout = 5 * time.Second

// AnalyticsService records search activity (history, popularity counters,
// durable event log) and serves the read endpoints over them. All writes are
// best-effort telemetry: they run in the background and never fail a search.
type AnalyticsService struct {
	history repositories.SearchHistoryRepository
	popular repositories.PopularSearchRepository
	events  repositories.SearchEventRepository
}

// NewAnalyticsService creates the analytics service. Any repository may be
// nil, in which case its writes and reads are skipped; search keeps working
// with whatever stores are actually up.
func NewAnalyticsService(
	history repositories.SearchHistoryRepository,
	popular repositories.PopularSearchRepository,
	events repositories.SearchEventRepository,
) *AnalyticsService {
	return &AnalyticsService{history: history, popular: popular, events: events}
}

// TrackSearch records one completed search in the background. History is
// recorded only for authenticated searches; popularity counts every search.
// The request context may already be done by the time the writes run, so a
// fresh context is used.
func (s *AnalyticsService) TrackSearch(ctx context.Context, userID string, query *entities.SearchQuery, resultCount int64, latency time.Duration) {
	logger := observability.LoggerFromContext(ctx)

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), trackTimeout)
		defer cancel()

		if s.history != nil && userID != "" {
			if err := s.history.Upsert(bgCtx, userID, query.NormalizedTerm); err != nil {
				logger.Warn().Err(err).Msg("failed to record search history")
			}
		}

		if s.popular != nil {
			if err := s.popular.Increment(bgCtx, query.NormalizedTerm, userID); err != nil {
				logger.Warn().Err(err).Msg("failed to increment popular counter")
			}
		}

		if s.events != nil {
			event := &entities.SearchEvent{
				UserID:          userID,
				Query:           query.Term,
				NormalizedQuery: query.NormalizedTerm,
				EntityType:      query.Type,
				ResultCount:     resultCount,
				LatencyMs:       latency.Milliseconds(),
			}
			if geoFilter := query.Filters.Geo; geoFilter != nil {
				event.Latitude = &geoFilter.Latitude
				event.Longitude = &geoFilter.Longitude
			}
			if err := s.events.LogEvent(bgCtx, event); err != nil {
				logger.Warn().Err(err).Msg("failed to log search event")
			}
		}
	}()
}

// Recent lists the user's search history, most recent first
func (s *AnalyticsService) Recent(ctx context.Context, userID string, limit int) ([]entities.SearchHistoryEntry, error) {
	if s.history == nil {
		return []entities.SearchHistoryEntry{}, nil
	}
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	return s.history.Recent(ctx, userID, limit)
}

// ClearHistory removes all history entries for the user
func (s *AnalyticsService) ClearHistory(ctx context.Context, userID string) error {
	if s.history == nil {
		return nil
	}
	return s.history.Clear(ctx, userID)
}

// Popular returns the most searched terms over the trailing window
func (s *AnalyticsService) Popular(ctx context.Context, limit int) ([]entities.PopularSearch, error) {
	if s.popular == nil {
		return []entities.PopularSearch{}, nil
	}
	if limit <= 0 || limit > maxLimit {
		limit = 10
	}
	return s.popular.Top(ctx, limit)
}

// ZeroResultQueries lists recent searches that found nothing
func (s *AnalyticsService) ZeroResultQueries(ctx context.Context, limit int) ([]*entities.SearchEvent, error) {
	if s.events == nil {
		return nil, nil
	}
	return s.events.ZeroResultQueries(ctx, limit)
}
