package services

import (
	"context"
	"errors"
	"time"

	"github.com/khetisetu/search-backend/internal/domain/entities"
	"github.com/khetisetu/search-backend/internal/domain/repositories"
)

var errAdapterDown = errors.New("backing store timed out")

// fakeAdapter is a canned EntitySearchRepository for pipeline tests
type fakeAdapter struct {
	entity      entities.EntityType
	page        *entities.SearchPage
	suggestions []entities.Suggestion
	trending    []entities.SearchResult
	tagCounts   []entities.TopicCount
	err         error
	delay       time.Duration
}

var _ repositories.EntitySearchRepository = (*fakeAdapter)(nil)

func (f *fakeAdapter) EntityType() entities.EntityType { return f.entity }

func (f *fakeAdapter) Search(ctx context.Context, query *entities.SearchQuery) (*entities.SearchPage, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeAdapter) Suggest(ctx context.Context, prefix string, limit int) ([]entities.Suggestion, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.suggestions) > limit {
		return f.suggestions[:limit], nil
	}
	return f.suggestions, nil
}

func (f *fakeAdapter) Trending(ctx context.Context, since time.Time, limit int) ([]entities.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.trending, nil
}

func (f *fakeAdapter) TagCounts(ctx context.Context, since time.Time, limit int) ([]entities.TopicCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tagCounts, nil
}

func productHit(id string, base float64) *entities.ProductResult {
	r := &entities.ProductResult{BaseScore: base, Relevance: base}
	r.ID = id
	r.Name = id
	r.CreatedAt = time.Now()
	return r
}

func questionHit(id string, base float64) *entities.QuestionResult {
	r := &entities.QuestionResult{BaseScore: base, Relevance: base}
	r.ID = id
	r.Title = id
	r.CreatedAt = time.Now()
	return r
}

func pageOf(results ...entities.SearchResult) *entities.SearchPage {
	return &entities.SearchPage{Results: results, TotalCount: int64(len(results))}
}
