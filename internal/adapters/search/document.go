package search

import (
	"time"

	"github.com/khetisetu/search-backend/internal/domain/entities"
)

// Documents come back as map[string]interface{}; numbers are float64 after
// JSON decoding regardless of the schema type. These helpers keep the
// decoders free of repeated type assertions.

func docString(doc map[string]interface{}, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func docFloat(doc map[string]interface{}, key string) float64 {
	if v, ok := doc[key].(float64); ok {
		return v
	}
	return 0
}

func docInt(doc map[string]interface{}, key string) int {
	return int(docFloat(doc, key))
}

func docInt64(doc map[string]interface{}, key string) int64 {
	return int64(docFloat(doc, key))
}

func docBool(doc map[string]interface{}, key string) bool {
	if v, ok := doc[key].(bool); ok {
		return v
	}
	return false
}

func docStrings(doc map[string]interface{}, key string) []string {
	raw, ok := doc[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func docTime(doc map[string]interface{}, key string) time.Time {
	if v, ok := doc[key].(float64); ok && v > 0 {
		return time.Unix(int64(v), 0).UTC()
	}
	return time.Time{}
}

func docLocation(doc map[string]interface{}) (entities.Location, bool) {
	raw, ok := doc["location"].([]interface{})
	if !ok || len(raw) != 2 {
		return entities.Location{}, false
	}
	lat, latOK := raw[0].(float64)
	lng, lngOK := raw[1].(float64)
	if !latOK || !lngOK {
		return entities.Location{}, false
	}
	return entities.Location{Latitude: lat, Longitude: lng}, true
}

func decodeProduct(doc map[string]interface{}, meta hitMeta) entities.SearchResult {
	loc, _ := docLocation(doc)
	return &entities.ProductResult{
		Product: entities.Product{
			ID:                docString(doc, "id"),
			Name:              docString(doc, "name"),
			Description:       docString(doc, "description"),
			Category:          docString(doc, "category"),
			Variety:           docString(doc, "variety"),
			Tags:              docStrings(doc, "tags"),
			Price:             docFloat(doc, "price"),
			Unit:              docString(doc, "unit"),
			QuantityAvailable: docInt(doc, "quantity_available"),
			QualityGrade:      docString(doc, "quality_grade"),
			Organic:           docBool(doc, "organic"),
			SellerID:          docString(doc, "seller_id"),
			SellerName:        docString(doc, "seller_name"),
			SellerVerified:    docBool(doc, "seller_verified"),
			Rating:            docFloat(doc, "rating"),
			RatingCount:       docInt(doc, "rating_count"),
			Thumbnail:         docString(doc, "thumbnail"),
			City:              docString(doc, "city"),
			State:             docString(doc, "state"),
			Location:          loc,
			Status:            docString(doc, "status"),
			Views:             docInt64(doc, "views"),
			CreatedAt:         docTime(doc, "created_at"),
			UpdatedAt:         docTime(doc, "updated_at"),
		},
		BaseScore:  meta.BaseScore,
		Relevance:  meta.BaseScore,
		DistanceKm: meta.DistanceKm,
	}
}

func decodeQuestion(doc map[string]interface{}, meta hitMeta) entities.SearchResult {
	return &entities.QuestionResult{
		Question: entities.Question{
			ID:          docString(doc, "id"),
			Title:       docString(doc, "title"),
			Description: docString(doc, "description"),
			Category:    docString(doc, "category"),
			Tags:        docStrings(doc, "tags"),
			AskedByID:   docString(doc, "asked_by_id"),
			AskedByName: docString(doc, "asked_by_name"),
			AnswerCount: docInt(doc, "answer_count"),
			Views:       docInt64(doc, "views"),
			Status:      docString(doc, "status"),
			CreatedAt:   docTime(doc, "created_at"),
			UpdatedAt:   docTime(doc, "updated_at"),
		},
		BaseScore: meta.BaseScore,
		Relevance: meta.BaseScore,
	}
}

func decodeArticle(doc map[string]interface{}, meta hitMeta) entities.SearchResult {
	return &entities.ArticleResult{
		Article: entities.Article{
			ID:         docString(doc, "id"),
			Title:      docString(doc, "title"),
			Content:    docString(doc, "content"),
			Excerpt:    docString(doc, "excerpt"),
			Category:   docString(doc, "category"),
			Tags:       docStrings(doc, "tags"),
			AuthorID:   docString(doc, "author_id"),
			AuthorName: docString(doc, "author_name"),
			Thumbnail:  docString(doc, "thumbnail"),
			Views:      docInt64(doc, "views"),
			LikeCount:  docInt(doc, "like_count"),
			Status:     docString(doc, "status"),
			CreatedAt:  docTime(doc, "created_at"),
			UpdatedAt:  docTime(doc, "updated_at"),
		},
		BaseScore: meta.BaseScore,
		Relevance: meta.BaseScore,
	}
}

func decodeExpert(doc map[string]interface{}, meta hitMeta) entities.SearchResult {
	loc, _ := docLocation(doc)
	return &entities.ExpertResult{
		Expert: entities.Expert{
			ID:              docString(doc, "id"),
			Name:            docString(doc, "name"),
			Bio:             docString(doc, "bio"),
			Specializations: docStrings(doc, "specializations"),
			Verified:        docBool(doc, "verified"),
			Rating:          docFloat(doc, "rating"),
			RatingCount:     docInt(doc, "rating_count"),
			ExperienceYears: docInt(doc, "experience_years"),
			TotalAnswers:    docInt(doc, "total_answers"),
			Thumbnail:       docString(doc, "thumbnail"),
			City:            docString(doc, "city"),
			State:           docString(doc, "state"),
			Location:        loc,
			Status:          docString(doc, "status"),
			CreatedAt:       docTime(doc, "created_at"),
			UpdatedAt:       docTime(doc, "updated_at"),
		},
		BaseScore:  meta.BaseScore,
		Relevance:  meta.BaseScore,
		DistanceKm: meta.DistanceKm,
	}
}
