package handlers

import (
	"net/http"
	"strconv"

	"github.com/khetisetu/search-backend/internal/api/middleware"
	"github.com/khetisetu/search-backend/internal/application/services"
	"github.com/khetisetu/search-backend/internal/domain/entities"
)

// SearchHandler serves the search HTTP surface: unified and entity-specific
// search, autocomplete, and the analytics read endpoints
type SearchHandler struct {
	compiler     *services.QueryCompiler
	search       *services.SearchService
	autocomplete *services.AutocompleteService
	analytics    *services.AnalyticsService
	trending     *services.TrendingService
}

// NewSearchHandler creates the search handler
func NewSearchHandler(
	compiler *services.QueryCompiler,
	search *services.SearchService,
	autocomplete *services.AutocompleteService,
	analytics *services.AnalyticsService,
	trending *services.TrendingService,
) *SearchHandler {
	return &SearchHandler{
		compiler:     compiler,
		search:       search,
		autocomplete: autocomplete,
		analytics:    analytics,
		trending:     trending,
	}
}

func rawParamsFromRequest(r *http.Request) services.RawSearchParams {
	q := r.URL.Query()
	return services.RawSearchParams{
		Q:             q.Get("q"),
		Type:          q.Get("type"),
		Page:          q.Get("page"),
		Limit:         q.Get("limit"),
		Sort:          q.Get("sort"),
		Category:      q.Get("category"),
		MinPrice:      q.Get("minPrice"),
		MaxPrice:      q.Get("maxPrice"),
		QualityGrade:  q.Get("qualityGrade"),
		Organic:       q.Get("organic"),
		Verified:      q.Get("verified"),
		MinExperience: q.Get("minExperience"),
		MaxExperience: q.Get("maxExperience"),
		MinRating:     q.Get("minRating"),
		Tags:          q.Get("tags"),
		States:        q.Get("states"),
		Lat:           q.Get("lat"),
		Lng:           q.Get("lng"),
		Radius:        q.Get("radius"),
	}
}

// Search handles GET /api/search. The unified envelope always carries all
// four entity lists; a type-restricted call fills only the requested one.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query, err := h.compiler.Compile(rawParamsFromRequest(r))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	if query.Type == entities.EntityAll {
		result, err := h.search.SearchAll(r.Context(), query, userID)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success":      true,
			"query":        query.Term,
			"type":         query.Type,
			"products":     result.Products,
			"questions":    result.Questions,
			"articles":     result.Articles,
			"experts":      result.Experts,
			"totalResults": result.TotalResults,
			"pagination":   entities.NewPagination(query.Page, query.Limit, result.TotalResults),
		})
		return
	}

	page, err := h.search.SearchEntity(r.Context(), query, userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	products, questions, articles, experts := splitResults(page.Results)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"query":        query.Term,
		"type":         query.Type,
		"products":     products,
		"questions":    questions,
		"articles":     articles,
		"experts":      experts,
		"totalResults": page.TotalCount,
		"pagination":   entities.NewPagination(query.Page, query.Limit, page.TotalCount),
	})
}

// SearchProducts handles GET /api/search/products
func (h *SearchHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	h.entitySearch(w, r, entities.EntityProducts)
}

// SearchQuestions handles GET /api/search/questions
func (h *SearchHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	h.entitySearch(w, r, entities.EntityQuestions)
}

// SearchArticles handles GET /api/search/articles
func (h *SearchHandler) SearchArticles(w http.ResponseWriter, r *http.Request) {
	h.entitySearch(w, r, entities.EntityArticles)
}

// SearchExperts handles GET /api/search/experts
func (h *SearchHandler) SearchExperts(w http.ResponseWriter, r *http.Request) {
	h.entitySearch(w, r, entities.EntityExperts)
}

func (h *SearchHandler) entitySearch(w http.ResponseWriter, r *http.Request, entityType entities.EntityType) {
	raw := rawParamsFromRequest(r)
	raw.Type = string(entityType)

	query, err := h.compiler.Compile(raw)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	page, err := h.search.SearchEntity(r.Context(), query, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"query":            query.Term,
		"filters":          filtersEcho(query.Filters),
		string(entityType): page.Results,
		"facets":           page.Facets,
		"pagination":       entities.NewPagination(query.Page, query.Limit, page.TotalCount),
	})
}

// Autocomplete handles GET /api/search/autocomplete. A short prefix is a
// normal keystroke, answered with an empty list.
func (h *SearchHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.autocomplete.Suggest(
		r.Context(),
		r.URL.Query().Get("q"),
		entities.EntityType(r.URL.Query().Get("type")),
	)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"suggestions": suggestions,
	})
}

// Popular handles GET /api/search/popular
func (h *SearchHandler) Popular(w http.ResponseWriter, r *http.Request) {
	searches, err := h.analytics.Popular(r.Context(), intParam(r, "limit", 10))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"searches": searches,
	})
}

// Recent handles GET /api/search/recent (authenticated)
func (h *SearchHandler) Recent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	searches, err := h.analytics.Recent(r.Context(), userID, intParam(r, "limit", 20))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"searches": searches,
	})
}

// ClearRecent handles DELETE /api/search/recent (authenticated)
func (h *SearchHandler) ClearRecent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if err := h.analytics.ClearHistory(r.Context(), userID); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Trending handles GET /api/search/trending
func (h *SearchHandler) Trending(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.trending.Snapshot(r.Context(), entities.EntityType(r.URL.Query().Get("type")))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"products":  snapshot.Products,
		"questions": snapshot.Questions,
		"articles":  snapshot.Articles,
		"topics":    snapshot.Topics,
	})
}

// ZeroResults handles GET /api/search/analytics/zero-results
func (h *SearchHandler) ZeroResults(w http.ResponseWriter, r *http.Request) {
	queries, err := h.analytics.ZeroResultQueries(r.Context(), intParam(r, "limit", 100))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if queries == nil {
		queries = []*entities.SearchEvent{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"queries": queries,
	})
}

func splitResults(results []entities.SearchResult) (
	products []*entities.ProductResult,
	questions []*entities.QuestionResult,
	articles []*entities.ArticleResult,
	experts []*entities.ExpertResult,
) {
	products = []*entities.ProductResult{}
	questions = []*entities.QuestionResult{}
	articles = []*entities.ArticleResult{}
	experts = []*entities.ExpertResult{}
	for _, r := range results {
		switch hit := r.(type) {
		case *entities.ProductResult:
			products = append(products, hit)
		case *entities.QuestionResult:
			questions = append(questions, hit)
		case *entities.ArticleResult:
			articles = append(articles, hit)
		case *entities.ExpertResult:
			experts = append(experts, hit)
		}
	}
	return products, questions, articles, experts
}

// filtersEcho reports the filters that were actually applied
func filtersEcho(f entities.SearchFilters) map[string]interface{} {
	echo := map[string]interface{}{}
	if f.Category != "" {
		echo["category"] = f.Category
	}
	if f.MinPrice != nil {
		echo["minPrice"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		echo["maxPrice"] = *f.MaxPrice
	}
	if f.QualityGrade != "" {
		echo["qualityGrade"] = f.QualityGrade
	}
	if f.Organic != nil {
		echo["organic"] = *f.Organic
	}
	if f.Verified != nil {
		echo["verified"] = *f.Verified
	}
	if f.MinExperience != nil {
		echo["minExperience"] = *f.MinExperience
	}
	if f.MaxExperience != nil {
		echo["maxExperience"] = *f.MaxExperience
	}
	if f.MinRating != nil {
		echo["minRating"] = *f.MinRating
	}
	if len(f.Tags) > 0 {
		echo["tags"] = f.Tags
	}
	if len(f.States) > 0 {
		echo["states"] = f.States
	}
	if f.Geo != nil {
		echo["lat"] = f.Geo.Latitude
		echo["lng"] = f.Geo.Longitude
		echo["radius"] = f.Geo.RadiusKm
	}
	return echo
}

func intParam(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
