package repositories

import (
	"context"

	"github.com/khetisetu/search-backend/internal/domain/entities"
)

// CatalogRepository reads entities from the system of record for index
// (re)builds. Only rows the search surface may ever show are returned; the
// visibility predicate is applied at the source.
type CatalogRepository interface {
	Products(ctx context.Context) ([]*entities.Product, error)
	Questions(ctx context.Context) ([]*entities.Question, error)
	Articles(ctx context.Context) ([]*entities.Article, error)
	Experts(ctx context.Context) ([]*entities.Expert, error)
}
