package repositories

import (
	"context"
	"time"

	"github.com/khetisetu/search-backend/internal/domain/entities"
)

// EntitySearchRepository is the contract every entity search adapter
// implements: fan a compiled query out to the backing collection and return
// the page of candidates, the total filtered count, and facets over the whole
// filtered set.
type EntitySearchRepository interface {
	// EntityType reports which tag this adapter serves
	EntityType() entities.EntityType

	// Search executes text match + attribute filters + geo predicate in one
	// retrieval pass
	Search(ctx context.Context, query *entities.SearchQuery) (*entities.SearchPage, error)

	// Suggest returns up to limit prefix matches against the entity's primary
	// display field
	Suggest(ctx context.Context, prefix string, limit int) ([]entities.Suggestion, error)

	// Trending returns items updated since the cutoff, ordered by engagement,
	// capped to limit
	Trending(ctx context.Context, since time.Time, limit int) ([]entities.SearchResult, error)

	// TagCounts aggregates tag frequency over items updated since the cutoff
	TagCounts(ctx context.Context, since time.Time, limit int) ([]entities.TopicCount, error)
}

// SearchIndexer is the write side of a search collection, used by the indexer
// to (re)build documents from the system of record
type SearchIndexer interface {
	EnsureCollections(ctx context.Context) error
	UpsertProduct(ctx context.Context, p *entities.Product) error
	UpsertQuestion(ctx context.Context, q *entities.Question) error
	UpsertArticle(ctx context.Context, a *entities.Article) error
	UpsertExpert(ctx context.Context, e *entities.Expert) error
}
