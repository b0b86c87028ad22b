package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/khetisetu/search-backend/internal/domain/entities"
	"github.com/khetisetu/search-backend/internal/domain/repositories"
	tsclient "github.com/khetisetu/search-backend/internal/infrastructure/clients/typesense"
	"github.com/khetisetu/search-backend/internal/infrastructure/observability"
)

// TypesenseIndexer is the write side of the four search collections
type TypesenseIndexer struct {
	client *tsclient.Client
}

var _ repositories.SearchIndexer = (*TypesenseIndexer)(nil)

// NewTypesenseIndexer creates the collection indexer
func NewTypesenseIndexer(client *tsclient.Client) *TypesenseIndexer {
	return &TypesenseIndexer{client: client}
}

// EnsureCollections creates any missing collections. Existing collections are
// left untouched; schema migrations are a manual operation.
func (i *TypesenseIndexer) EnsureCollections(ctx context.Context) error {
	for _, schema := range collectionSchemas() {
		_, err := i.client.Client().Collection(schema.Name).Retrieve(ctx)
		if err == nil {
			continue
		}
		if _, err := i.client.Client().Collections().Create(ctx, schema); err != nil {
			return fmt.Errorf("create collection %s: %w", schema.Name, err)
		}
	}
	return nil
}

// ResetCollections drops all four collections so the next EnsureCollections
// rebuilds them from scratch. Missing collections are not an error.
func (i *TypesenseIndexer) ResetCollections(ctx context.Context) error {
	for _, schema := range collectionSchemas() {
		if _, err := i.client.Client().Collection(schema.Name).Delete(ctx); err != nil {
			observability.GetLogger().Warn().Err(err).Str("collection", schema.Name).
				Msg("failed to delete collection")
		}
	}
	return nil
}

func collectionSchemas() []*api.CollectionSchema {
	return []*api.CollectionSchema{
		{
			Name: productSpec.Collection,
			Fields: []api.Field{
				{Name: "id", Type: "string"},
				{Name: "name", Type: "string"},
				{Name: "description", Type: "string"},
				{Name: "category", Type: "string", Facet: pointer.True()},
				{Name: "variety", Type: "string", Optional: pointer.True()},
				{Name: "tags", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},
				{Name: "price", Type: "float"},
				{Name: "price_bucket", Type: "string", Facet: pointer.True()},
				{Name: "unit", Type: "string"},
				{Name: "quantity_available", Type: "int32"},
				{Name: "quality_grade", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
				{Name: "organic", Type: "bool"},
				{Name: "seller_id", Type: "string"},
				{Name: "seller_name", Type: "string"},
				{Name: "seller_verified", Type: "bool"},
				{Name: "rating", Type: "float"},
				{Name: "rating_count", Type: "int32"},
				{Name: "thumbnail", Type: "string", Optional: pointer.True()},
				{Name: "city", Type: "string", Optional: pointer.True()},
				{Name: "state", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
				{Name: "location", Type: "geopoint"},
				{Name: "status", Type: "string"},
				{Name: "views", Type: "int64"},
				{Name: "created_at", Type: "int64"},
				{Name: "updated_at", Type: "int64"},
			},
			DefaultSortingField: pointer.String("created_at"),
		},
		{
			Name: questionSpec.Collection,
			Fields: []api.Field{
				{Name: "id", Type: "string"},
				{Name: "title", Type: "string"},
				{Name: "description", Type: "string"},
				{Name: "category", Type: "string", Facet: pointer.True()},
				{Name: "tags", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},
				{Name: "asked_by_id", Type: "string"},
				{Name: "asked_by_name", Type: "string"},
				{Name: "answer_count", Type: "int32"},
				{Name: "status", Type: "string"},
				{Name: "views", Type: "int64"},
				{Name: "created_at", Type: "int64"},
				{Name: "updated_at", Type: "int64"},
			},
			DefaultSortingField: pointer.String("created_at"),
		},
		{
			Name: articleSpec.Collection,
			Fields: []api.Field{
				{Name: "id", Type: "string"},
				{Name: "title", Type: "string"},
				{Name: "content", Type: "string"},
				{Name: "excerpt", Type: "string"},
				{Name: "category", Type: "string", Facet: pointer.True()},
				{Name: "tags", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},
				{Name: "author_id", Type: "string"},
				{Name: "author_name", Type: "string"},
				{Name: "thumbnail", Type: "string", Optional: pointer.True()},
				{Name: "like_count", Type: "int32"},
				{Name: "status", Type: "string"},
				{Name: "views", Type: "int64"},
				{Name: "created_at", Type: "int64"},
				{Name: "updated_at", Type: "int64"},
			},
			DefaultSortingField: pointer.String("created_at"),
		},
		{
			Name: expertSpec.Collection,
			Fields: []api.Field{
				{Name: "id", Type: "string"},
				{Name: "name", Type: "string"},
				{Name: "bio", Type: "string"},
				{Name: "specializations", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},
				{Name: "verified", Type: "bool"},
				{Name: "rating", Type: "float"},
				{Name: "rating_count", Type: "int32"},
				{Name: "experience_years", Type: "int32"},
				{Name: "total_answers", Type: "int32"},
				{Name: "thumbnail", Type: "string", Optional: pointer.True()},
				{Name: "city", Type: "string", Optional: pointer.True()},
				{Name: "state", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
				{Name: "location", Type: "geopoint"},
				{Name: "status", Type: "string"},
				{Name: "created_at", Type: "int64"},
				{Name: "updated_at", Type: "int64"},
			},
			DefaultSortingField: pointer.String("created_at"),
		},
	}
}

// priceBucket maps a price onto the faceted range labels. Buckets are in the
// listing currency per unit; the labels are what the priceRange facet exposes.
func priceBucket(price float64) string {
	switch {
	case price < 50:
		return "0-50"
	case price < 200:
		return "50-200"
	case price < 500:
		return "200-500"
	case price < 2000:
		return "500-2000"
	default:
		return "2000+"
	}
}

func (i *TypesenseIndexer) upsert(ctx context.Context, collection string, document map[string]interface{}) error {
	if _, err := i.client.Client().Collection(collection).Documents().Upsert(ctx, document); err != nil {
		return fmt.Errorf("upsert into %s: %w", collection, err)
	}
	return nil
}

// UpsertProduct writes or replaces one product document
func (i *TypesenseIndexer) UpsertProduct(ctx context.Context, p *entities.Product) error {
	return i.upsert(ctx, productSpec.Collection, map[string]interface{}{
		"id":                 p.ID,
		"name":               p.Name,
		"description":        p.Description,
		"category":           p.Category,
		"variety":            p.Variety,
		"tags":               p.Tags,
		"price":              p.Price,
		"price_bucket":       priceBucket(p.Price),
		"unit":               p.Unit,
		"quantity_available": p.QuantityAvailable,
		"quality_grade":      p.QualityGrade,
		"organic":            p.Organic,
		"seller_id":          p.SellerID,
		"seller_name":        p.SellerName,
		"seller_verified":    p.SellerVerified,
		"rating":             p.Rating,
		"rating_count":       p.RatingCount,
		"thumbnail":          p.Thumbnail,
		"city":               p.City,
		"state":              p.State,
		"location":           []float64{p.Location.Latitude, p.Location.Longitude},
		"status":             p.Status,
		"views":              p.Views,
		"created_at":         p.CreatedAt.Unix(),
		"updated_at":         p.UpdatedAt.Unix(),
	})
}

// UpsertQuestion writes or replaces one question document
func (i *TypesenseIndexer) UpsertQuestion(ctx context.Context, q *entities.Question) error {
	return i.upsert(ctx, questionSpec.Collection, map[string]interface{}{
		"id":            q.ID,
		"title":         q.Title,
		"description":   q.Description,
		"category":      q.Category,
		"tags":          q.Tags,
		"asked_by_id":   q.AskedByID,
		"asked_by_name": q.AskedByName,
		"answer_count":  q.AnswerCount,
		"status":        q.Status,
		"views":         q.Views,
		"created_at":    q.CreatedAt.Unix(),
		"updated_at":    q.UpdatedAt.Unix(),
	})
}

// UpsertArticle writes or replaces one article document
func (i *TypesenseIndexer) UpsertArticle(ctx context.Context, a *entities.Article) error {
	return i.upsert(ctx, articleSpec.Collection, map[string]interface{}{
		"id":          a.ID,
		"title":       a.Title,
		"content":     a.Content,
		"excerpt":     a.Excerpt,
		"category":    a.Category,
		"tags":        a.Tags,
		"author_id":   a.AuthorID,
		"author_name": a.AuthorName,
		"thumbnail":   a.Thumbnail,
		"like_count":  a.LikeCount,
		"status":      a.Status,
		"views":       a.Views,
		"created_at":  a.CreatedAt.Unix(),
		"updated_at":  a.UpdatedAt.Unix(),
	})
}

// UpsertExpert writes or replaces one expert document
func (i *TypesenseIndexer) UpsertExpert(ctx context.Context, e *entities.Expert) error {
	return i.upsert(ctx, expertSpec.Collection, map[string]interface{}{
		"id":               e.ID,
		"name":             e.Name,
		"bio":              e.Bio,
		"specializations":  e.Specializations,
		"verified":         e.Verified,
		"rating":           e.Rating,
		"rating_count":     e.RatingCount,
		"experience_years": e.ExperienceYears,
		"total_answers":    e.TotalAnswers,
		"thumbnail":        e.Thumbnail,
		"city":             e.City,
		"state":            e.State,
		"location":         []float64{e.Location.Latitude, e.Location.Longitude},
		"status":           e.Status,
		"created_at":       e.CreatedAt.Unix(),
		"updated_at":       e.UpdatedAt.Unix(),
	})
}
