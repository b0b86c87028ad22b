package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khetisetu/search-backend/internal/domain/entities"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
func intPtr(v int) *int           { return &v }

func TestBuildFilterBy_VisibilityAlwaysPresent(t *testing.T) {
	filter := buildFilterBy(productSpec, entities.SearchFilters{})
	assert.Equal(t, "status:=active", filter)

	filter = buildFilterBy(articleSpec, entities.SearchFilters{})
	assert.Equal(t, "status:=published", filter)

	filter = buildFilterBy(questionSpec, entities.SearchFilters{})
	assert.Equal(t, "status:=open", filter)
}

func TestBuildFilterBy_ProductFilters(t *testing.T) {
	filter := buildFilterBy(productSpec, entities.SearchFilters{
		Category:     "vegetables",
		MinPrice:     floatPtr(10),
		MaxPrice:     floatPtr(200),
		QualityGrade: "A",
		Organic:      boolPtr(true),
		Verified:     boolPtr(true),
		MinRating:    floatPtr(4),
		Tags:         []string{"heirloom", "vine ripened"},
		States:       []string{"Karnataka", "Tamil Nadu"},
	})

	assert.Contains(t, filter, "status:=active")
	assert.Contains(t, filter, "category:=vegetables")
	assert.Contains(t, filter, "price:>=10")
	assert.Contains(t, filter, "price:<=200")
	assert.Contains(t, filter, "quality_grade:=A")
	assert.Contains(t, filter, "organic:=true")
	assert.Contains(t, filter, "seller_verified:=true")
	assert.Contains(t, filter, "rating:>=4")
	assert.Contains(t, filter, "tags:=[heirloom,`vine ripened`]")
	assert.Contains(t, filter, "state:=[Karnataka,`Tamil Nadu`]")
}

func TestBuildFilterBy_InapplicableFiltersDropped(t *testing.T) {
	// Questions have no price, verified, or geo fields; only the filters the
	// collection declares may reach the engine
	filter := buildFilterBy(questionSpec, entities.SearchFilters{
		Category: "pests",
		MinPrice: floatPtr(10),
		Verified: boolPtr(true),
		Geo:      &entities.GeoFilter{Latitude: 12.9, Longitude: 77.6, RadiusKm: 25},
	})

	assert.Equal(t, "status:=open && category:=pests", filter)
}

func TestBuildFilterBy_GeoPredicate(t *testing.T) {
	filter := buildFilterBy(productSpec, entities.SearchFilters{
		Geo: &entities.GeoFilter{Latitude: 12.971599, Longitude: 77.594566, RadiusKm: 25},
	})

	assert.Contains(t, filter, "location:(12.971599, 77.594566, 25.000000 km)")
}

func TestBuildFilterBy_ExpertExperienceRange(t *testing.T) {
	filter := buildFilterBy(expertSpec, entities.SearchFilters{
		MinExperience: intPtr(5),
		MaxExperience: intPtr(15),
		Verified:      boolPtr(true),
	})

	assert.Contains(t, filter, "experience_years:>=5")
	assert.Contains(t, filter, "experience_years:<=15")
	assert.Contains(t, filter, "verified:=true")
}

func TestSortBy(t *testing.T) {
	assert.Equal(t, "_text_match:desc,created_at:desc", sortBy(productSpec, entities.SortRelevance))
	assert.Equal(t, "price:asc", sortBy(productSpec, entities.SortPriceAsc))
	assert.Equal(t, "created_at:desc", sortBy(questionSpec, entities.SortNewest))

	// Modes an entity has no key for fall back to relevance ordering
	assert.Equal(t, "_text_match:desc,created_at:desc", sortBy(questionSpec, entities.SortPriceAsc))
	assert.Equal(t, "_text_match:desc,created_at:desc", sortBy(expertSpec, entities.SortPopular))
}

func TestNormalizeTextMatch(t *testing.T) {
	best := int64(578730123365187705)
	half := best / 2

	assert.Equal(t, 10.0, normalizeTextMatch(&best, best))
	assert.InDelta(t, 5.0, normalizeTextMatch(&half, best), 0.001)
	assert.Equal(t, 0.0, normalizeTextMatch(nil, best))
	assert.Equal(t, 0.0, normalizeTextMatch(&best, 0))
}

func TestPriceBucket(t *testing.T) {
	assert.Equal(t, "0-50", priceBucket(0))
	assert.Equal(t, "0-50", priceBucket(49.99))
	assert.Equal(t, "50-200", priceBucket(50))
	assert.Equal(t, "200-500", priceBucket(350))
	assert.Equal(t, "500-2000", priceBucket(1999))
	assert.Equal(t, "2000+", priceBucket(2000))
}

func TestDecodeProduct(t *testing.T) {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	doc := map[string]interface{}{
		"id":                 "prod-1",
		"name":               "Tomato",
		"description":        "Fresh hybrid tomatoes",
		"category":           "vegetables",
		"tags":               []interface{}{"hybrid", "fresh"},
		"price":              45.0,
		"unit":               "kg",
		"quantity_available": 120.0,
		"quality_grade":      "A",
		"organic":            true,
		"seller_id":          "seller-9",
		"seller_name":        "Green Farm",
		"seller_verified":    true,
		"rating":             4.6,
		"rating_count":       31.0,
		"state":              "Karnataka",
		"location":           []interface{}{12.97, 77.59},
		"status":             "active",
		"views":              900.0,
		"created_at":         float64(created.Unix()),
		"updated_at":         float64(created.Unix()),
	}

	dist := 3.2
	result := decodeProduct(doc, hitMeta{BaseScore: 7.5, DistanceKm: &dist})

	product, ok := result.(*entities.ProductResult)
	require.True(t, ok)
	assert.Equal(t, "prod-1", product.ID)
	assert.Equal(t, "Tomato", product.Name)
	assert.Equal(t, []string{"hybrid", "fresh"}, product.Tags)
	assert.Equal(t, 45.0, product.Price)
	assert.Equal(t, 120, product.QuantityAvailable)
	assert.True(t, product.Organic)
	assert.True(t, product.SellerVerified)
	assert.Equal(t, 12.97, product.Location.Latitude)
	assert.Equal(t, created, product.CreatedAt)
	assert.Equal(t, 7.5, product.BaseScore)
	assert.Equal(t, 7.5, product.Relevance)
	require.NotNil(t, product.DistanceKm)
	assert.Equal(t, 3.2, *product.DistanceKm)
	assert.Equal(t, entities.EntityProducts, product.Entity())
}

func TestDecodeExpert_MissingOptionalFields(t *testing.T) {
	doc := map[string]interface{}{
		"id":       "exp-1",
		"name":     "Dr. Rao",
		"verified": true,
		"rating":   4.8,
		"status":   "active",
	}

	result := decodeExpert(doc, hitMeta{BaseScore: 10})

	expert, ok := result.(*entities.ExpertResult)
	require.True(t, ok)
	assert.Equal(t, "Dr. Rao", expert.Name)
	assert.True(t, expert.Verified)
	assert.Nil(t, expert.Specializations)
	assert.Zero(t, expert.ExperienceYears)
	assert.Nil(t, expert.DistanceKm)
	assert.True(t, expert.CreatedAt.IsZero())
}

func TestDocLocation(t *testing.T) {
	loc, ok := docLocation(map[string]interface{}{"location": []interface{}{12.9, 77.6}})
	require.True(t, ok)
	assert.Equal(t, 12.9, loc.Latitude)
	assert.Equal(t, 77.6, loc.Longitude)

	_, ok = docLocation(map[string]interface{}{"location": "not-a-point"})
	assert.False(t, ok)

	_, ok = docLocation(map[string]interface{}{})
	assert.False(t, ok)
}
