package services

import (
	"sort"
	"time"

	"github.com/khetisetu/search-backend/internal/domain/entities"
)

// Boost coefficients. These are a compatibility contract with existing
// ranking behavior; changing any of them is a product decision.
const (
	productVerifiedBoost    = 2.0
	productOrganicBoost     = 1.5
	productRatingBoost      = 2.0
	productInStockBoost     = 1.0
	productStalePenalty     = 0.5
	productVeryStalePenalty = 1.0

	expertVerifiedBoost  = 3.0
	expertRatingBoost    = 2.0
	expertExperienceRate = 0.2
	expertAnswersRate    = 0.01

	ratingBoostFloor = 4.5

	expertExperienceCap = 10
	expertAnswersCap    = 100

	staleAfterDays     = 30
	veryStaleAfterDays = 90
)

// RelevanceService computes composite scores: the adapter's base text-match
// score plus deterministic entity-specific boosts
type RelevanceService struct {
	now func() time.Time
}

// NewRelevanceService creates the scorer
func NewRelevanceService() *RelevanceService {
	return &RelevanceService{now: time.Now}
}

// Score computes and stores the composite score for one result, returning it
func (s *RelevanceService) Score(result entities.SearchResult) float64 {
	switch r := result.(type) {
	case *entities.ProductResult:
		r.Relevance = r.BaseScore + s.productBoost(&r.Product)
		return r.Relevance
	case *entities.QuestionResult:
		r.Relevance = r.BaseScore
		return r.Relevance
	case *entities.ArticleResult:
		r.Relevance = r.BaseScore
		return r.Relevance
	case *entities.ExpertResult:
		r.Relevance = r.BaseScore + s.expertBoost(&r.Expert)
		return r.Relevance
	}
	return 0
}

// ScoreAll scores every result in place
func (s *RelevanceService) ScoreAll(results []entities.SearchResult) {
	for _, r := range results {
		s.Score(r)
	}
}

// Rank orders results by composite score descending, newest first on ties
func (s *RelevanceService) Rank(results []entities.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score() != results[j].Score() {
			return results[i].Score() > results[j].Score()
		}
		return results[i].CreatedTime().After(results[j].CreatedTime())
	})
}

func (s *RelevanceService) productBoost(p *entities.Product) float64 {
	boost := 0.0
	if p.SellerVerified {
		boost += productVerifiedBoost
	}
	if p.Organic {
		boost += productOrganicBoost
	}
	if p.Rating >= ratingBoostFloor {
		boost += productRatingBoost
	}
	if p.InStock() {
		boost += productInStockBoost
	}

	listedFor := s.now().Sub(p.CreatedAt)
	if listedFor > staleAfterDays*24*time.Hour {
		boost -= productStalePenalty
	}
	if listedFor > veryStaleAfterDays*24*time.Hour {
		boost -= productVeryStalePenalty
	}
	return boost
}

func (s *RelevanceService) expertBoost(e *entities.Expert) float64 {
	boost := 0.0
	if e.Verified {
		boost += expertVerifiedBoost
	}
	if e.Rating >= ratingBoostFloor {
		boost += expertRatingBoost
	}
	boost += expertExperienceRate * float64(minInt(e.ExperienceYears, expertExperienceCap))
	boost += expertAnswersRate * float64(minInt(e.TotalAnswers, expertAnswersCap))
	return boost
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
