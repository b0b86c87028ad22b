package repositories

import (
	"context"

	"github.com/khetisetu/search-backend/internal/domain/entities"
)

// SearchHistoryRepository stores per-user search history. Entry expiry is
// owned by the store's TTL mechanism, not by callers.
type SearchHistoryRepository interface {
	// Upsert increments the (user, normalizedQuery) counter and refreshes
	// lastSearchedAt and the entry TTL
	Upsert(ctx context.Context, userID, normalizedQuery string) error

	// Recent lists the user's entries, most recently searched first
	Recent(ctx context.Context, userID string, limit int) ([]entities.SearchHistoryEntry, error)

	// Clear removes all entries for the user
	Clear(ctx context.Context, userID string) error
}

// PopularSearchRepository maintains the global popularity counters
type PopularSearchRepository interface {
	// Increment bumps the counter for the normalized query; searcherID (user
	// or anonymous session) feeds the unique-searcher estimate
	Increment(ctx context.Context, normalizedQuery, searcherID string) error

	// Top returns the most searched terms over the trailing window
	Top(ctx context.Context, limit int) ([]entities.PopularSearch, error)
}

// SearchEventRepository is the durable search-event log
type SearchEventRepository interface {
	LogEvent(ctx context.Context, event *entities.SearchEvent) error
	ZeroResultQueries(ctx context.Context, limit int) ([]*entities.SearchEvent, error)
}
