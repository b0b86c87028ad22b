package entities

import "time"

// EntityType selects which collections a search spans
type EntityType string

const (
	EntityAll       EntityType = "all"
	EntityProducts  EntityType = "products"
	EntityQuestions EntityType = "questions"
	EntityArticles  EntityType = "articles"
	EntityExperts   EntityType = "experts"
)

// SearchableTypes lists the four concrete entity types
var SearchableTypes = []EntityType{EntityProducts, EntityQuestions, EntityArticles, EntityExperts}

// SortMode is a validated sort selector
type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortNewest    SortMode = "newest"
	SortOldest    SortMode = "oldest"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortRating    SortMode = "rating"
	SortPopular   SortMode = "popular"
)

// GeoFilter restricts candidates to a radius around a point
type GeoFilter struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// SearchFilters is the bag of entity-specific filter predicates.
// Absent filters (nil pointers, empty strings/slices) are omitted from the
// compiled query, never defaulted.
type SearchFilters struct {
	Category      string
	MinPrice      *float64
	MaxPrice      *float64
	QualityGrade  string
	Organic       *bool
	Verified      *bool
	MinExperience *int
	MaxExperience *int
	MinRating     *float64
	Tags          []string
	States        []string
	Geo           *GeoFilter
}

// SearchQuery is a validated, normalized search request
type SearchQuery struct {
	// Term is echoed back verbatim; NormalizedTerm is used for matching
	Term           string
	NormalizedTerm string
	Type           EntityType
	Page           int
	Limit          int
	Sort           SortMode
	Filters        SearchFilters
}

// Offset returns the zero-based offset for the current page
func (q *SearchQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// SearchResult is the closed tagged union over the four entity result shapes.
// Every result belongs to exactly one entity tag; merging never changes it.
type SearchResult interface {
	Entity() EntityType
	ResultID() string
	DisplayName() string
	Score() float64
	CreatedTime() time.Time
}

// ProductResult is a product hit with its composite score
type ProductResult struct {
	Product
	BaseScore  float64  `json:"-"`
	Relevance  float64  `json:"relevanceScore"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

func (r *ProductResult) Entity() EntityType     { return EntityProducts }
func (r *ProductResult) ResultID() string       { return r.ID }
func (r *ProductResult) DisplayName() string    { return r.Name }
func (r *ProductResult) Score() float64         { return r.Relevance }
func (r *ProductResult) CreatedTime() time.Time { return r.CreatedAt }

// QuestionResult is a question hit with its composite score
type QuestionResult struct {
	Question
	BaseScore float64 `json:"-"`
	Relevance float64 `json:"relevanceScore"`
}

func (r *QuestionResult) Entity() EntityType     { return EntityQuestions }
func (r *QuestionResult) ResultID() string       { return r.ID }
func (r *QuestionResult) DisplayName() string    { return r.Title }
func (r *QuestionResult) Score() float64         { return r.Relevance }
func (r *QuestionResult) CreatedTime() time.Time { return r.CreatedAt }

// ArticleResult is an article hit with its composite score
type ArticleResult struct {
	Article
	BaseScore float64 `json:"-"`
	Relevance float64 `json:"relevanceScore"`
}

func (r *ArticleResult) Entity() EntityType     { return EntityArticles }
func (r *ArticleResult) ResultID() string       { return r.ID }
func (r *ArticleResult) DisplayName() string    { return r.Title }
func (r *ArticleResult) Score() float64         { return r.Relevance }
func (r *ArticleResult) CreatedTime() time.Time { return r.CreatedAt }

// ExpertResult is an expert hit with its composite score
type ExpertResult struct {
	Expert
	BaseScore  float64  `json:"-"`
	Relevance  float64  `json:"relevanceScore"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

func (r *ExpertResult) Entity() EntityType     { return EntityExperts }
func (r *ExpertResult) ResultID() string       { return r.ID }
func (r *ExpertResult) DisplayName() string    { return r.Name }
func (r *ExpertResult) Score() float64         { return r.Relevance }
func (r *ExpertResult) CreatedTime() time.Time { return r.CreatedAt }

// Facet is one value count along a facet dimension, computed over the whole
// filtered candidate set (not the current page)
type Facet struct {
	Dimension string `json:"dimension"`
	Value     string `json:"value"`
	Count     int64  `json:"count"`
}

// SearchPage is one adapter's answer: ranked candidates for the requested
// page, the total count of the filtered set, and facets over that whole set
type SearchPage struct {
	Results    []SearchResult
	TotalCount int64
	Facets     []Facet
}

// Suggestion is one autocomplete candidate
type Suggestion struct {
	Text string     `json:"text"`
	Type EntityType `json:"type"`
	ID   string     `json:"id,omitempty"`
}

// Pagination is response paging metadata
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes page metadata for a total count
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}
