package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAdapter_Products(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewCatalogAdapter(client)

	created := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "name", "description", "category", "variety", "tags", "price", "unit",
		"quantity_available", "quality_grade", "organic", "seller_id", "seller_name",
		"seller_verified", "rating", "rating_count", "thumbnail", "city", "state",
		"latitude", "longitude", "status", "views", "created_at", "updated_at",
	}).AddRow(
		"prod-1", "Tomato", "Fresh hybrid tomatoes", "vegetables", "hybrid",
		"{hybrid,fresh}", 45.0, "kg", 120, "A", true, "seller-9", "Green Farm",
		true, 4.6, 31, "", "Bengaluru", "Karnataka", 12.97, 77.59, "active", 900,
		created, created,
	)

	mock.ExpectQuery(`SELECT .+ FROM products\s+WHERE status = 'active'`).
		WillReturnRows(rows)

	products, err := adapter.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "prod-1", p.ID)
	assert.Equal(t, []string{"hybrid", "fresh"}, []string(p.Tags))
	assert.Equal(t, 45.0, p.Price)
	assert.True(t, p.SellerVerified)
	assert.Equal(t, 12.97, p.Location.Latitude)
	assert.Equal(t, created, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogAdapter_Experts(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewCatalogAdapter(client)

	created := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "name", "bio", "specializations", "verified", "rating", "rating_count",
		"experience_years", "total_answers", "thumbnail", "city", "state",
		"latitude", "longitude", "status", "created_at", "updated_at",
	}).AddRow(
		"exp-1", "Dr. Rao", "Soil scientist", "{soil,irrigation}", true, 4.8, 52,
		12, 340, "", "Mysuru", "Karnataka", 12.29, 76.64, "active", created, created,
	)

	mock.ExpectQuery(`SELECT .+ FROM experts\s+WHERE status = 'active'`).
		WillReturnRows(rows)

	experts, err := adapter.Experts(context.Background())
	require.NoError(t, err)
	require.Len(t, experts, 1)

	e := experts[0]
	assert.Equal(t, "Dr. Rao", e.Name)
	assert.Equal(t, []string{"soil", "irrigation"}, []string(e.Specializations))
	assert.Equal(t, 12, e.ExperienceYears)
	assert.True(t, e.Verified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogAdapter_QuestionsEmpty(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewCatalogAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM questions`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "category", "tags", "asked_by_id",
			"asked_by_name", "answer_count", "views", "status", "created_at", "updated_at",
		}))

	questions, err := adapter.Questions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestCatalogAdapter_ArticlesQueryError(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewCatalogAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM articles`).WillReturnError(assert.AnError)

	_, err := adapter.Articles(context.Background())
	assert.Error(t, err)
}
