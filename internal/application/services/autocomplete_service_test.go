package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khetisetu/search-backend/internal/adapters/cache"
	"github.com/khetisetu/search-backend/internal/domain/entities"
	"github.com/khetisetu/search-backend/internal/domain/repositories"
)

func suggestionsOf(entity entities.EntityType, texts ...string) []entities.Suggestion {
	out := make([]entities.Suggestion, 0, len(texts))
	for i, text := range texts {
		out = append(out, entities.Suggestion{Text: text, Type: entity, ID: string(rune('a' + i))})
	}
	return out
}

func newTestAutocomplete(adapters ...repositories.EntitySearchRepository) *AutocompleteService {
	return NewAutocompleteService(adapters, cache.NewNoopAdapter(), 100*time.Millisecond)
}

func TestSuggest_ShortPrefixReturnsEmptySuccess(t *testing.T) {
	svc := newTestAutocomplete()

	for _, prefix := range []string{"", "t", " t "} {
		suggestions, err := svc.Suggest(context.Background(), prefix, entities.EntityAll)
		require.NoError(t, err, "prefix=%q", prefix)
		assert.Empty(t, suggestions)
	}
}

func TestSuggest_MergesSortsAndCaps(t *testing.T) {
	products := &fakeAdapter{
		entity:      entities.EntityProducts,
		suggestions: suggestionsOf(entities.EntityProducts, "tomato", "tomato seeds", "tomato cage", "tomato stake", "tomato feed"),
	}
	questions := &fakeAdapter{
		entity:      entities.EntityQuestions,
		suggestions: suggestionsOf(entities.EntityQuestions, "tomato blight", "tomato wilt", "tomato pests", "tomato yield", "tomato prices"),
	}
	articles := &fakeAdapter{
		entity:      entities.EntityArticles,
		suggestions: suggestionsOf(entities.EntityArticles, "tomato farming", "tomato diseases"),
	}

	svc := newTestAutocomplete(products, questions, articles)

	suggestions, err := svc.Suggest(context.Background(), "tomato", entities.EntityAll)
	require.NoError(t, err)

	// 12 candidates, global cap of 10
	require.Len(t, suggestions, 10)
	for i := 1; i < len(suggestions); i++ {
		assert.LessOrEqual(t, suggestions[i-1].Text, suggestions[i].Text)
	}
}

func TestSuggest_SingleTypeQueriesOnlyThatAdapter(t *testing.T) {
	products := &fakeAdapter{
		entity:      entities.EntityProducts,
		suggestions: suggestionsOf(entities.EntityProducts, "tomato"),
	}
	questions := &fakeAdapter{
		entity:      entities.EntityQuestions,
		suggestions: suggestionsOf(entities.EntityQuestions, "tomato blight"),
	}

	svc := newTestAutocomplete(products, questions)

	suggestions, err := svc.Suggest(context.Background(), "tomato", entities.EntityProducts)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, entities.EntityProducts, suggestions[0].Type)
}

func TestSuggest_FailedTypeLosesItsSlots(t *testing.T) {
	products := &fakeAdapter{
		entity:      entities.EntityProducts,
		suggestions: suggestionsOf(entities.EntityProducts, "tomato"),
	}
	questions := &fakeAdapter{entity: entities.EntityQuestions, err: errAdapterDown}

	svc := newTestAutocomplete(products, questions)

	suggestions, err := svc.Suggest(context.Background(), "tomato", entities.EntityAll)
	require.NoError(t, err)
	assert.Len(t, suggestions, 1)
}

func TestSuggest_CachesResults(t *testing.T) {
	products := &fakeAdapter{
		entity:      entities.EntityProducts,
		suggestions: suggestionsOf(entities.EntityProducts, "tomato"),
	}
	svc := NewAutocompleteService(
		[]repositories.EntitySearchRepository{products},
		cache.NewLRUAdapter(16, time.Minute),
		100*time.Millisecond,
	)

	first, err := svc.Suggest(context.Background(), "tomato", entities.EntityProducts)
	require.NoError(t, err)

	// Adapter failures after the first call are invisible while cached
	products.err = errAdapterDown
	second, err := svc.Suggest(context.Background(), "tomato", entities.EntityProducts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
