package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/khetisetu/search-backend/internal/domain/entities"
	"github.com/khetisetu/search-backend/internal/domain/repositories"
	tsclient "github.com/khetisetu/search-backend/internal/infrastructure/clients/typesense"
	"github.com/khetisetu/search-backend/pkg/geo"
)

// hitMeta carries per-hit retrieval signals into the decoder
type hitMeta struct {
	BaseScore  float64
	DistanceKm *float64
}

// TypesenseAdapter serves one entity collection. All four entity adapters are
// instances of this type with different collection specs and decoders; the
// retrieval pipeline itself is shared.
type TypesenseAdapter struct {
	client *tsclient.Client
	spec   collectionSpec
	decode func(doc map[string]interface{}, meta hitMeta) entities.SearchResult
}

var _ repositories.EntitySearchRepository = (*TypesenseAdapter)(nil)

func newAdapter(client *tsclient.Client, spec collectionSpec, decode func(map[string]interface{}, hitMeta) entities.SearchResult) *TypesenseAdapter {
	return &TypesenseAdapter{client: client, spec: spec, decode: decode}
}

// NewProductAdapter creates the product search adapter
func NewProductAdapter(client *tsclient.Client) *TypesenseAdapter {
	return newAdapter(client, productSpec, decodeProduct)
}

// NewQuestionAdapter creates the question search adapter
func NewQuestionAdapter(client *tsclient.Client) *TypesenseAdapter {
	return newAdapter(client, questionSpec, decodeQuestion)
}

// NewArticleAdapter creates the article search adapter
func NewArticleAdapter(client *tsclient.Client) *TypesenseAdapter {
	return newAdapter(client, articleSpec, decodeArticle)
}

// NewExpertAdapter creates the expert search adapter
func NewExpertAdapter(client *tsclient.Client) *TypesenseAdapter {
	return newAdapter(client, expertSpec, decodeExpert)
}

// EntityType reports which tag this adapter serves
func (a *TypesenseAdapter) EntityType() entities.EntityType {
	return a.spec.Entity
}

// Search runs text match, attribute filters, and the geo predicate in one
// retrieval pass. Facets come back from the same request, so they always
// describe the whole filtered set the page was drawn from.
func (a *TypesenseAdapter) Search(ctx context.Context, query *entities.SearchQuery) (*entities.SearchPage, error) {
	params := &api.SearchCollectionParams{
		Q:              pointer.String(query.NormalizedTerm),
		QueryBy:        pointer.String(a.spec.QueryBy),
		QueryByWeights: pointer.String(a.spec.Weights),
		FilterBy:       pointer.String(buildFilterBy(a.spec, query.Filters)),
		SortBy:         pointer.String(sortBy(a.spec, query.Sort)),
		FacetBy:        pointer.String(strings.Join(a.spec.FacetBy, ",")),
		MaxFacetValues: pointer.Int(maxFacetValues),
		Page:           pointer.Int(query.Page),
		PerPage:        pointer.Int(query.Limit),
	}

	result, err := a.client.Client().Collection(a.spec.Collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", a.spec.Collection, err)
	}

	page := &entities.SearchPage{
		Results: []entities.SearchResult{},
		Facets:  a.convertFacets(result.FacetCounts),
	}
	if result.Found != nil {
		page.TotalCount = int64(*result.Found)
	}
	if result.Hits == nil {
		return page, nil
	}

	// Text match scores are ordinal within a response; normalize against the
	// best hit so boosts operate on a stable 0..10 scale
	var maxTextMatch int64
	for _, hit := range *result.Hits {
		if hit.TextMatch != nil && *hit.TextMatch > maxTextMatch {
			maxTextMatch = *hit.TextMatch
		}
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document
		meta := hitMeta{BaseScore: normalizeTextMatch(hit.TextMatch, maxTextMatch)}
		meta.DistanceKm = hitDistanceKm(hit, doc, query.Filters.Geo)
		page.Results = append(page.Results, a.decode(doc, meta))
	}

	return page, nil
}

// Suggest returns prefix matches against the entity's primary display field.
// Typesense prefix-matches the final token; the explicit HasPrefix check pins
// strict leading-prefix semantics and deduplicates display strings.
func (a *TypesenseAdapter) Suggest(ctx context.Context, prefix string, limit int) ([]entities.Suggestion, error) {
	params := &api.SearchCollectionParams{
		Q:        pointer.String(prefix),
		QueryBy:  pointer.String(a.spec.SuggestField),
		FilterBy: pointer.String(a.spec.Visibility),
		PerPage:  pointer.Int(limit * 3),
	}

	result, err := a.client.Client().Collection(a.spec.Collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("suggest %s: %w", a.spec.Collection, err)
	}

	suggestions := []entities.Suggestion{}
	if result.Hits == nil {
		return suggestions, nil
	}

	lowered := strings.ToLower(prefix)
	seen := map[string]bool{}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document
		text := docString(doc, a.spec.SuggestField)
		key := strings.ToLower(text)
		if !strings.HasPrefix(key, lowered) || seen[key] {
			continue
		}
		seen[key] = true
		suggestions = append(suggestions, entities.Suggestion{
			Text: text,
			Type: a.spec.Entity,
			ID:   docString(doc, "id"),
		})
		if len(suggestions) == limit {
			break
		}
	}

	return suggestions, nil
}

// Trending returns items updated since the cutoff, ordered by engagement
func (a *TypesenseAdapter) Trending(ctx context.Context, since time.Time, limit int) ([]entities.SearchResult, error) {
	params := &api.SearchCollectionParams{
		Q:        pointer.String("*"),
		QueryBy:  pointer.String(a.spec.SuggestField),
		FilterBy: pointer.String(fmt.Sprintf("%s && updated_at:>=%d", a.spec.Visibility, since.Unix())),
		SortBy:   pointer.String(a.spec.EngagementSort),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(a.spec.Collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("trending %s: %w", a.spec.Collection, err)
	}

	results := []entities.SearchResult{}
	if result.Hits == nil {
		return results, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		results = append(results, a.decode(*hit.Document, hitMeta{}))
	}
	return results, nil
}

// TagCounts aggregates tag frequency over items updated since the cutoff.
// Entities without a tags field report no topics.
func (a *TypesenseAdapter) TagCounts(ctx context.Context, since time.Time, limit int) ([]entities.TopicCount, error) {
	if _, ok := a.spec.FilterFields["tags"]; !ok {
		return []entities.TopicCount{}, nil
	}

	params := &api.SearchCollectionParams{
		Q:              pointer.String("*"),
		QueryBy:        pointer.String(a.spec.SuggestField),
		FilterBy:       pointer.String(fmt.Sprintf("%s && updated_at:>=%d", a.spec.Visibility, since.Unix())),
		FacetBy:        pointer.String("tags"),
		MaxFacetValues: pointer.Int(limit),
		PerPage:        pointer.Int(0),
	}

	result, err := a.client.Client().Collection(a.spec.Collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("tag counts %s: %w", a.spec.Collection, err)
	}

	topics := []entities.TopicCount{}
	if result.FacetCounts == nil {
		return topics, nil
	}
	for _, fc := range *result.FacetCounts {
		if fc.FieldName == nil || *fc.FieldName != "tags" || fc.Counts == nil {
			continue
		}
		for _, c := range *fc.Counts {
			if c.Value == nil || c.Count == nil {
				continue
			}
			topics = append(topics, entities.TopicCount{Tag: *c.Value, Count: int64(*c.Count)})
		}
	}
	return topics, nil
}

func (a *TypesenseAdapter) convertFacets(counts *[]api.FacetCounts) []entities.Facet {
	facets := []entities.Facet{}
	if counts == nil {
		return facets
	}
	for _, fc := range *counts {
		if fc.FieldName == nil || fc.Counts == nil {
			continue
		}
		dimension, ok := a.spec.FacetDimension[*fc.FieldName]
		if !ok {
			continue
		}
		for _, c := range *fc.Counts {
			if c.Value == nil || c.Count == nil {
				continue
			}
			facets = append(facets, entities.Facet{
				Dimension: dimension,
				Value:     *c.Value,
				Count:     int64(*c.Count),
			})
		}
	}
	return facets
}

// normalizeTextMatch scales an ordinal text match score to 0..10 against the
// best hit in the same response
func normalizeTextMatch(textMatch *int64, max int64) float64 {
	if textMatch == nil || max == 0 {
		return 0
	}
	return 10 * float64(*textMatch) / float64(max)
}

// hitDistanceKm extracts the engine-computed geo distance, falling back to
// haversine against the document location when the engine omits it
func hitDistanceKm(hit api.SearchResultHit, doc map[string]interface{}, filter *entities.GeoFilter) *float64 {
	if filter == nil {
		return nil
	}
	if hit.GeoDistanceMeters != nil {
		if meters, ok := (*hit.GeoDistanceMeters)["location"]; ok {
			km := geo.RoundKm(float64(meters) / 1000.0)
			return &km
		}
	}
	loc, ok := docLocation(doc)
	if !ok {
		return nil
	}
	km := geo.RoundKm(geo.DistanceKm(filter.Latitude, filter.Longitude, loc.Latitude, loc.Longitude))
	return &km
}
