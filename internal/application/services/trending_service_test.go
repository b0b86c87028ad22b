package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khetisetu/search-backend/internal/domain/entities"
	"github.com/khetisetu/search-backend/internal/domain/repositories"
)

func TestSnapshot_MergesPerTypeAndTopics(t *testing.T) {
	products := &fakeAdapter{
		entity:   entities.EntityProducts,
		trending: []entities.SearchResult{productHit("prod-1", 0), productHit("prod-2", 0)},
		tagCounts: []entities.TopicCount{
			{Tag: "tomato", Count: 12},
			{Tag: "onion", Count: 4},
		},
	}
	questions := &fakeAdapter{
		entity:   entities.EntityQuestions,
		trending: []entities.SearchResult{questionHit("q-1", 0)},
		tagCounts: []entities.TopicCount{
			{Tag: "tomato", Count: 8},
			{Tag: "drip-irrigation", Count: 6},
		},
	}
	articles := &fakeAdapter{entity: entities.EntityArticles}

	svc := NewTrendingService(
		[]repositories.EntitySearchRepository{products, questions, articles}, 7, 10)

	snapshot, err := svc.Snapshot(context.Background(), entities.EntityAll)
	require.NoError(t, err)

	assert.Len(t, snapshot.Products, 2)
	assert.Len(t, snapshot.Questions, 1)
	assert.Empty(t, snapshot.Articles)

	// Topic counts sum across products and questions, sorted descending
	require.Len(t, snapshot.Topics, 3)
	assert.Equal(t, entities.TopicCount{Tag: "tomato", Count: 20}, snapshot.Topics[0])
	assert.Equal(t, entities.TopicCount{Tag: "drip-irrigation", Count: 6}, snapshot.Topics[1])
	assert.Equal(t, entities.TopicCount{Tag: "onion", Count: 4}, snapshot.Topics[2])
}

func TestSnapshot_TypeFilterLimitsLists(t *testing.T) {
	products := &fakeAdapter{
		entity:   entities.EntityProducts,
		trending: []entities.SearchResult{productHit("prod-1", 0)},
	}
	questions := &fakeAdapter{
		entity:   entities.EntityQuestions,
		trending: []entities.SearchResult{questionHit("q-1", 0)},
	}

	svc := NewTrendingService(
		[]repositories.EntitySearchRepository{products, questions}, 7, 10)

	snapshot, err := svc.Snapshot(context.Background(), entities.EntityQuestions)
	require.NoError(t, err)

	assert.Empty(t, snapshot.Products)
	assert.Len(t, snapshot.Questions, 1)
}

func TestSnapshot_FailedTypeDegrades(t *testing.T) {
	products := &fakeAdapter{entity: entities.EntityProducts, err: errAdapterDown}
	questions := &fakeAdapter{
		entity:   entities.EntityQuestions,
		trending: []entities.SearchResult{questionHit("q-1", 0)},
	}

	svc := NewTrendingService(
		[]repositories.EntitySearchRepository{products, questions}, 7, 10)

	snapshot, err := svc.Snapshot(context.Background(), entities.EntityAll)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Products)
	assert.Len(t, snapshot.Questions, 1)
}
