package search

import (
	"fmt"
	"strings"

	"github.com/khetisetu/search-backend/internal/domain/entities"
)

// collectionSpec declares one entity's search capabilities: which collection
// backs it, which weighted fields text search runs over, which attributes are
// filterable, which dimensions are faceted, and how sort modes map to sort
// keys. Compiling a SearchQuery against this table is the only per-entity
// logic; adding a filter or a facet means editing the table, not the
// pipeline.
type collectionSpec struct {
	Collection string
	Entity     entities.EntityType

	// QueryBy lists searchable fields, most important first; Weights aligns
	QueryBy string
	Weights string

	// Visibility is the hard status predicate, always ANDed in
	Visibility string

	// FilterFields maps canonical filter names (category, price, quality,
	// organic, verified, experience, rating, tags, states, geo) to collection
	// fields; absent keys mean the filter does not apply to this entity
	FilterFields map[string]string

	// FacetBy lists facet fields; FacetDimension renames them for responses
	FacetBy        []string
	FacetDimension map[string]string

	// SuggestField is the primary display field for autocomplete
	SuggestField string

	// SortKeys maps validated sort modes to Typesense sort_by expressions;
	// missing modes fall back to relevance ordering
	SortKeys map[entities.SortMode]string

	// EngagementSort orders the trending window (views first, then the
	// entity's secondary engagement signal)
	EngagementSort string
}

const maxFacetValues = 20

var productSpec = collectionSpec{
	Collection: "products",
	Entity:     entities.EntityProducts,
	QueryBy:    "name,description,category,tags,variety",
	Weights:    "5,3,2,2,1",
	Visibility: "status:=active",
	FilterFields: map[string]string{
		"category": "category",
		"price":    "price",
		"quality":  "quality_grade",
		"organic":  "organic",
		"verified": "seller_verified",
		"rating":   "rating",
		"tags":     "tags",
		"states":   "state",
		"geo":      "location",
	},
	FacetBy: []string{"category", "quality_grade", "price_bucket", "state"},
	FacetDimension: map[string]string{
		"category":      "category",
		"quality_grade": "quality",
		"price_bucket":  "priceRange",
		"state":         "state",
	},
	SuggestField: "name",
	SortKeys: map[entities.SortMode]string{
		entities.SortNewest:    "created_at:desc",
		entities.SortOldest:    "created_at:asc",
		entities.SortPriceAsc:  "price:asc",
		entities.SortPriceDesc: "price:desc",
		entities.SortRating:    "rating:desc",
		entities.SortPopular:   "views:desc",
	},
	EngagementSort: "views:desc,rating_count:desc",
}

var questionSpec = collectionSpec{
	Collection: "questions",
	Entity:     entities.EntityQuestions,
	QueryBy:    "title,description,category,tags",
	Weights:    "5,3,2,2",
	Visibility: "status:=open",
	FilterFields: map[string]string{
		"category": "category",
		"tags":     "tags",
	},
	FacetBy: []string{"category", "tags"},
	FacetDimension: map[string]string{
		"category": "category",
		"tags":     "tags",
	},
	SuggestField: "title",
	SortKeys: map[entities.SortMode]string{
		entities.SortNewest:  "created_at:desc",
		entities.SortOldest:  "created_at:asc",
		entities.SortPopular: "views:desc",
	},
	EngagementSort: "views:desc,answer_count:desc",
}

var articleSpec = collectionSpec{
	Collection: "articles",
	Entity:     entities.EntityArticles,
	QueryBy:    "title,content,excerpt,category,tags",
	Weights:    "5,2,3,2,2",
	Visibility: "status:=published",
	FilterFields: map[string]string{
		"category": "category",
		"tags":     "tags",
	},
	FacetBy: []string{"category", "tags"},
	FacetDimension: map[string]string{
		"category": "category",
		"tags":     "tags",
	},
	SuggestField: "title",
	SortKeys: map[entities.SortMode]string{
		entities.SortNewest:  "created_at:desc",
		entities.SortOldest:  "created_at:asc",
		entities.SortPopular: "views:desc",
	},
	EngagementSort: "views:desc,like_count:desc",
}

var expertSpec = collectionSpec{
	Collection: "experts",
	Entity:     entities.EntityExperts,
	QueryBy:    "name,bio,specializations,city,state",
	Weights:    "5,3,4,1,1",
	Visibility: "status:=active",
	FilterFields: map[string]string{
		"verified":   "verified",
		"experience": "experience_years",
		"rating":     "rating",
		"states":     "state",
		"geo":        "location",
	},
	FacetBy: []string{"specializations", "state"},
	FacetDimension: map[string]string{
		"specializations": "specialization",
		"state":           "state",
	},
	SuggestField: "name",
	SortKeys: map[entities.SortMode]string{
		entities.SortNewest: "created_at:desc",
		entities.SortOldest: "created_at:asc",
		entities.SortRating: "rating:desc",
	},
	EngagementSort: "rating_count:desc,total_answers:desc",
}

// buildFilterBy compiles the filter bag against the spec's table as one
// conjunction. Absent filters are omitted, never defaulted; the visibility
// predicate is always present.
func buildFilterBy(spec collectionSpec, f entities.SearchFilters) string {
	parts := []string{spec.Visibility}

	if fld, ok := spec.FilterFields["category"]; ok && f.Category != "" {
		parts = append(parts, fmt.Sprintf("%s:=%s", fld, escapeFilterValue(f.Category)))
	}
	if fld, ok := spec.FilterFields["price"]; ok {
		if f.MinPrice != nil {
			parts = append(parts, fmt.Sprintf("%s:>=%g", fld, *f.MinPrice))
		}
		if f.MaxPrice != nil {
			parts = append(parts, fmt.Sprintf("%s:<=%g", fld, *f.MaxPrice))
		}
	}
	if fld, ok := spec.FilterFields["quality"]; ok && f.QualityGrade != "" {
		parts = append(parts, fmt.Sprintf("%s:=%s", fld, escapeFilterValue(f.QualityGrade)))
	}
	if fld, ok := spec.FilterFields["organic"]; ok && f.Organic != nil {
		parts = append(parts, fmt.Sprintf("%s:=%t", fld, *f.Organic))
	}
	if fld, ok := spec.FilterFields["verified"]; ok && f.Verified != nil {
		parts = append(parts, fmt.Sprintf("%s:=%t", fld, *f.Verified))
	}
	if fld, ok := spec.FilterFields["experience"]; ok {
		if f.MinExperience != nil {
			parts = append(parts, fmt.Sprintf("%s:>=%d", fld, *f.MinExperience))
		}
		if f.MaxExperience != nil {
			parts = append(parts, fmt.Sprintf("%s:<=%d", fld, *f.MaxExperience))
		}
	}
	if fld, ok := spec.FilterFields["rating"]; ok && f.MinRating != nil {
		parts = append(parts, fmt.Sprintf("%s:>=%g", fld, *f.MinRating))
	}
	if fld, ok := spec.FilterFields["tags"]; ok && len(f.Tags) > 0 {
		parts = append(parts, fmt.Sprintf("%s:=[%s]", fld, joinFilterValues(f.Tags)))
	}
	if fld, ok := spec.FilterFields["states"]; ok && len(f.States) > 0 {
		parts = append(parts, fmt.Sprintf("%s:=[%s]", fld, joinFilterValues(f.States)))
	}
	// Geo composes as one more predicate, pre-pagination, so "nearest N
	// within radius" stays correct
	if fld, ok := spec.FilterFields["geo"]; ok && f.Geo != nil {
		parts = append(parts, fmt.Sprintf("%s:(%f, %f, %f km)", fld, f.Geo.Latitude, f.Geo.Longitude, f.Geo.RadiusKm))
	}

	return strings.Join(parts, " && ")
}

// sortBy maps the validated sort mode to a sort expression. Relevance (and
// any mode the entity has no key for) orders by text match with recency as
// tie-break; the composite re-rank happens in the scoring service.
func sortBy(spec collectionSpec, mode entities.SortMode) string {
	if expr, ok := spec.SortKeys[mode]; ok && mode != entities.SortRelevance {
		return expr
	}
	return "_text_match:desc,created_at:desc"
}

func escapeFilterValue(v string) string {
	if strings.ContainsAny(v, " ,&|():") {
		return "`" + strings.ReplaceAll(v, "`", "") + "`"
	}
	return v
}

func joinFilterValues(vals []string) string {
	escaped := make([]string, 0, len(vals))
	for _, v := range vals {
		escaped = append(escaped, escapeFilterValue(v))
	}
	return strings.Join(escaped, ",")
}
