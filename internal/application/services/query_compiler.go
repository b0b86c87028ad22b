package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/khetisetu/search-backend/internal/domain/entities"
	apperrors "github.com/khetisetu/search-backend/pkg/errors"
	"github.com/khetisetu/search-backend/pkg/geo"
)

const (
	minTermLength = 2
	maxTermLength = 200
	defaultLimit  = 20
	maxLimit      = 100
)

// RawSearchParams is the untyped query-string input to the compiler
type RawSearchParams struct {
	Q     string
	Type  string
	Page  string
	Limit string
	Sort  string

	Category      string
	MinPrice      string
	MaxPrice      string
	QualityGrade  string
	Organic       string
	Verified      string
	MinExperience string
	MaxExperience string
	MinRating     string
	Tags          string
	States        string

	Lat    string
	Lng    string
	Radius string
}

var validSortModes = map[entities.SortMode]bool{
	entities.SortRelevance: true,
	entities.SortNewest:    true,
	entities.SortOldest:    true,
	entities.SortPriceAsc:  true,
	entities.SortPriceDesc: true,
	entities.SortRating:    true,
	entities.SortPopular:   true,
}

var validEntityTypes = map[entities.EntityType]bool{
	entities.EntityAll:       true,
	entities.EntityProducts:  true,
	entities.EntityQuestions: true,
	entities.EntityArticles:  true,
	entities.EntityExperts:   true,
}

// QueryCompiler turns raw query parameters into a typed, validated
// SearchQuery. Pure validation and normalization, no side effects.
type QueryCompiler struct{}

// NewQueryCompiler creates the compiler
func NewQueryCompiler() *QueryCompiler {
	return &QueryCompiler{}
}

// Compile validates and normalizes the raw parameters. Validation errors name
// the offending field; unknown sort values fall back to relevance so stale
// query strings keep working.
func (c *QueryCompiler) Compile(raw RawSearchParams) (*entities.SearchQuery, error) {
	term := strings.TrimSpace(raw.Q)
	if len(term) < minTermLength {
		return nil, apperrors.NewValidationError("q", "search term must be at least 2 characters")
	}
	if len(term) > maxTermLength {
		return nil, apperrors.NewValidationError("q", "search term must be at most 200 characters")
	}

	entityType := entities.EntityAll
	if raw.Type != "" {
		entityType = entities.EntityType(raw.Type)
		if !validEntityTypes[entityType] {
			return nil, apperrors.NewValidationError("type", "unknown entity type")
		}
	}

	page, err := parsePositiveInt(raw.Page, "page", 1)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	limit, err := parsePositiveInt(raw.Limit, "limit", defaultLimit)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	sort := entities.SortRelevance
	if raw.Sort != "" && validSortModes[entities.SortMode(raw.Sort)] {
		sort = entities.SortMode(raw.Sort)
	}

	filters, err := c.compileFilters(raw)
	if err != nil {
		return nil, err
	}

	return &entities.SearchQuery{
		Term:           term,
		NormalizedTerm: c.Normalize(term),
		Type:           entityType,
		Page:           page,
		Limit:          limit,
		Sort:           sort,
		Filters:        filters,
	}, nil
}

func (c *QueryCompiler) compileFilters(raw RawSearchParams) (entities.SearchFilters, error) {
	var filters entities.SearchFilters

	filters.Category = strings.TrimSpace(raw.Category)
	filters.QualityGrade = strings.TrimSpace(raw.QualityGrade)
	filters.Tags = splitValues(raw.Tags)
	filters.States = splitValues(raw.States)

	var err error
	if filters.MinPrice, err = parseFloatPtr(raw.MinPrice, "minPrice"); err != nil {
		return filters, err
	}
	if filters.MaxPrice, err = parseFloatPtr(raw.MaxPrice, "maxPrice"); err != nil {
		return filters, err
	}
	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		return filters, apperrors.NewValidationError("minPrice", "minPrice must not exceed maxPrice")
	}

	if filters.Organic, err = parseBoolPtr(raw.Organic, "organic"); err != nil {
		return filters, err
	}
	if filters.Verified, err = parseBoolPtr(raw.Verified, "verified"); err != nil {
		return filters, err
	}

	if filters.MinExperience, err = parseIntPtr(raw.MinExperience, "minExperience"); err != nil {
		return filters, err
	}
	if filters.MaxExperience, err = parseIntPtr(raw.MaxExperience, "maxExperience"); err != nil {
		return filters, err
	}

	if filters.MinRating, err = parseFloatPtr(raw.MinRating, "minRating"); err != nil {
		return filters, err
	}

	geoFilter, err := compileGeoFilter(raw)
	if err != nil {
		return filters, err
	}
	filters.Geo = geoFilter

	return filters, nil
}

// compileGeoFilter requires lat, lng, and radius together; a partial set is a
// caller mistake, not a filter to silently drop
func compileGeoFilter(raw RawSearchParams) (*entities.GeoFilter, error) {
	if raw.Lat == "" && raw.Lng == "" && raw.Radius == "" {
		return nil, nil
	}
	if raw.Lat == "" {
		return nil, apperrors.NewValidationError("lat", "lat is required with lng/radius")
	}
	if raw.Lng == "" {
		return nil, apperrors.NewValidationError("lng", "lng is required with lat/radius")
	}
	if raw.Radius == "" {
		return nil, apperrors.NewValidationError("radius", "radius is required with lat/lng")
	}

	lat, err := parseFiniteFloat(raw.Lat, "lat")
	if err != nil {
		return nil, err
	}
	if !geo.ValidLatitude(lat) {
		return nil, apperrors.NewValidationError("lat", "lat must be between -90 and 90")
	}

	lng, err := parseFiniteFloat(raw.Lng, "lng")
	if err != nil {
		return nil, err
	}
	if !geo.ValidLongitude(lng) {
		return nil, apperrors.NewValidationError("lng", "lng must be between -180 and 180")
	}

	radius, err := parseFiniteFloat(raw.Radius, "radius")
	if err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, apperrors.NewValidationError("radius", "radius must be greater than zero")
	}

	return &entities.GeoFilter{Latitude: lat, Longitude: lng, RadiusKm: radius}, nil
}

// Normalize lowercases the term and strips everything except letters, digits,
// spaces, dashes, slashes, and apostrophes, collapsing runs of whitespace.
// The same normalization keys search history and popularity counters.
func (c *QueryCompiler) Normalize(term string) string {
	var b strings.Builder
	b.Grow(len(term))
	lastSpace := true
	for _, r := range strings.ToLower(term) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '/', r == '\'':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == '\t' || r == '\n':
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		case r > 127:
			// Non-ASCII letters (regional names, crop varieties) pass through
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}

func splitValues(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func parsePositiveInt(raw, field string, defaultValue int) (int, error) {
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(field, field+" must be an integer")
	}
	return value, nil
}

func parseIntPtr(raw, field string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(field, field+" must be an integer")
	}
	return &value, nil
}

func parseFloatPtr(raw, field string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := parseFiniteFloat(raw, field)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func parseFiniteFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, apperrors.NewValidationError(field, field+" must be a finite number")
	}
	return value, nil
}

func parseBoolPtr(raw, field string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(field, field+" must be true or false")
	}
	return &value, nil
}
