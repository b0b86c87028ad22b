package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/khetisetu/search-backend/internal/domain/entities"
)

func fixedNowService(now time.Time) *RelevanceService {
	svc := NewRelevanceService()
	svc.now = func() time.Time { return now }
	return svc
}

// Regression-pins the product boost formula: verified +2, organic +1.5,
// rating>=4.5 +2, in-stock +1, listed yesterday so no recency penalty.
func TestScore_ProductBoostFormula(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	svc := fixedNowService(now)

	result := &entities.ProductResult{
		Product: entities.Product{
			SellerVerified:    true,
			Organic:           true,
			Rating:            4.8,
			QuantityAvailable: 10,
			CreatedAt:         now.AddDate(0, 0, -1),
		},
		BaseScore: 7.0,
	}

	score := svc.Score(result)
	assert.Equal(t, 7.0+2+1.5+2+1, score)
	assert.Equal(t, score, result.Relevance)
}

func TestScore_ProductRecencyPenalties(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	svc := fixedNowService(now)

	base := entities.Product{QuantityAvailable: 1}

	fresh := &entities.ProductResult{Product: base, BaseScore: 5}
	fresh.CreatedAt = now.AddDate(0, 0, -10)
	assert.Equal(t, 6.0, svc.Score(fresh))

	stale := &entities.ProductResult{Product: base, BaseScore: 5}
	stale.CreatedAt = now.AddDate(0, 0, -45)
	assert.Equal(t, 5.5, svc.Score(stale))

	// Past 90 days both penalties apply
	veryStale := &entities.ProductResult{Product: base, BaseScore: 5}
	veryStale.CreatedAt = now.AddDate(0, 0, -120)
	assert.Equal(t, 4.5, svc.Score(veryStale))
}

func TestScore_ProductRatingFloorIsInclusive(t *testing.T) {
	now := time.Now()
	svc := fixedNowService(now)

	atFloor := &entities.ProductResult{
		Product:   entities.Product{Rating: 4.5, CreatedAt: now},
		BaseScore: 1,
	}
	assert.Equal(t, 3.0, svc.Score(atFloor))

	below := &entities.ProductResult{
		Product:   entities.Product{Rating: 4.49, CreatedAt: now},
		BaseScore: 1,
	}
	assert.Equal(t, 1.0, svc.Score(below))
}

// Pins the expert formula including the experience and answer caps
func TestScore_ExpertBoostFormula(t *testing.T) {
	svc := NewRelevanceService()

	expert := &entities.ExpertResult{
		Expert: entities.Expert{
			Verified:        true,
			Rating:          4.7,
			ExperienceYears: 25,
			TotalAnswers:    450,
		},
		BaseScore: 4.0,
	}

	// +3 verified, +2 rating, +0.2*min(25,10)=2, +0.01*min(450,100)=1
	assert.Equal(t, 4.0+3+2+2+1, svc.Score(expert))
}

func TestScore_ExpertBelowCaps(t *testing.T) {
	svc := NewRelevanceService()

	expert := &entities.ExpertResult{
		Expert: entities.Expert{
			ExperienceYears: 4,
			TotalAnswers:    30,
		},
		BaseScore: 1.0,
	}

	assert.InDelta(t, 1.0+0.8+0.3, svc.Score(expert), 1e-9)
}

func TestScore_QuestionsAndArticlesUseBaseOnly(t *testing.T) {
	svc := NewRelevanceService()

	question := &entities.QuestionResult{BaseScore: 6.2}
	question.Views = 100000
	question.AnswerCount = 500
	assert.Equal(t, 6.2, svc.Score(question))

	article := &entities.ArticleResult{BaseScore: 3.3}
	article.LikeCount = 9000
	assert.Equal(t, 3.3, svc.Score(article))
}

func TestRank_ScoreDescendingNewestTieBreak(t *testing.T) {
	svc := NewRelevanceService()

	older := &entities.QuestionResult{BaseScore: 5, Relevance: 5}
	older.ID = "older"
	older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	newer := &entities.QuestionResult{BaseScore: 5, Relevance: 5}
	newer.ID = "newer"
	newer.CreatedAt = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	top := &entities.QuestionResult{BaseScore: 9, Relevance: 9}
	top.ID = "top"

	results := []entities.SearchResult{older, newer, top}
	svc.Rank(results)

	assert.Equal(t, "top", results[0].ResultID())
	assert.Equal(t, "newer", results[1].ResultID())
	assert.Equal(t, "older", results[2].ResultID())
}
