package database

import (
	"context"
	"time"

	"github.com/lib/pq"

	"github.com/khetisetu/search-backend/internal/domain/entities"
	"github.com/khetisetu/search-backend/internal/domain/repositories"
	"github.com/khetisetu/search-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/khetisetu/search-backend/pkg/errors"
)

// CatalogAdapter reads indexable entities from Postgres. The row structs
// carry db tags so sqlx can scan directly; array columns go through pq.
type CatalogAdapter struct {
	client *postgres.Client
}

var _ repositories.CatalogRepository = (*CatalogAdapter)(nil)

// NewCatalogAdapter creates the catalog read adapter
func NewCatalogAdapter(client *postgres.Client) *CatalogAdapter {
	return &CatalogAdapter{client: client}
}

type productRow struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	Description       string         `db:"description"`
	Category          string         `db:"category"`
	Variety           string         `db:"variety"`
	Tags              pq.StringArray `db:"tags"`
	Price             float64        `db:"price"`
	Unit              string         `db:"unit"`
	QuantityAvailable int            `db:"quantity_available"`
	QualityGrade      string         `db:"quality_grade"`
	Organic           bool           `db:"organic"`
	SellerID          string         `db:"seller_id"`
	SellerName        string         `db:"seller_name"`
	SellerVerified    bool           `db:"seller_verified"`
	Rating            float64        `db:"rating"`
	RatingCount       int            `db:"rating_count"`
	Thumbnail         string         `db:"thumbnail"`
	City              string         `db:"city"`
	State             string         `db:"state"`
	Latitude          float64        `db:"latitude"`
	Longitude         float64        `db:"longitude"`
	Status            string         `db:"status"`
	Views             int64          `db:"views"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// Products lists active product listings
func (a *CatalogAdapter) Products(ctx context.Context) ([]*entities.Product, error) {
	const query = `
		SELECT id, name, description, category, variety, tags, price, unit,
		       quantity_available, quality_grade, organic, seller_id, seller_name,
		       seller_verified, rating, rating_count, thumbnail, city, state,
		       latitude, longitude, status, views, created_at, updated_at
		FROM products
		WHERE status = 'active'
		ORDER BY created_at
	`

	var rows []productRow
	if err := a.client.DB().SelectContext(ctx, &rows, query); err != nil {
		return nil, apperrors.NewInternalError("failed to list products", err)
	}

	products := make([]*entities.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, &entities.Product{
			ID:                r.ID,
			Name:              r.Name,
			Description:       r.Description,
			Category:          r.Category,
			Variety:           r.Variety,
			Tags:              r.Tags,
			Price:             r.Price,
			Unit:              r.Unit,
			QuantityAvailable: r.QuantityAvailable,
			QualityGrade:      r.QualityGrade,
			Organic:           r.Organic,
			SellerID:          r.SellerID,
			SellerName:        r.SellerName,
			SellerVerified:    r.SellerVerified,
			Rating:            r.Rating,
			RatingCount:       r.RatingCount,
			Thumbnail:         r.Thumbnail,
			City:              r.City,
			State:             r.State,
			Location:          entities.Location{Latitude: r.Latitude, Longitude: r.Longitude},
			Status:            r.Status,
			Views:             r.Views,
			CreatedAt:         r.CreatedAt,
			UpdatedAt:         r.UpdatedAt,
		})
	}
	return products, nil
}

type questionRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Category    string         `db:"category"`
	Tags        pq.StringArray `db:"tags"`
	AskedByID   string         `db:"asked_by_id"`
	AskedByName string         `db:"asked_by_name"`
	AnswerCount int            `db:"answer_count"`
	Views       int64          `db:"views"`
	Status      string         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// Questions lists open questions
func (a *CatalogAdapter) Questions(ctx context.Context) ([]*entities.Question, error) {
	const query = `
		SELECT id, title, description, category, tags, asked_by_id, asked_by_name,
		       answer_count, views, status, created_at, updated_at
		FROM questions
		WHERE status = 'open'
		ORDER BY created_at
	`

	var rows []questionRow
	if err := a.client.DB().SelectContext(ctx, &rows, query); err != nil {
		return nil, apperrors.NewInternalError("failed to list questions", err)
	}

	questions := make([]*entities.Question, 0, len(rows))
	for _, r := range rows {
		questions = append(questions, &entities.Question{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Category:    r.Category,
			Tags:        r.Tags,
			AskedByID:   r.AskedByID,
			AskedByName: r.AskedByName,
			AnswerCount: r.AnswerCount,
			Views:       r.Views,
			Status:      r.Status,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return questions, nil
}

type articleRow struct {
	ID         string         `db:"id"`
	Title      string         `db:"title"`
	Content    string         `db:"content"`
	Excerpt    string         `db:"excerpt"`
	Category   string         `db:"category"`
	Tags       pq.StringArray `db:"tags"`
	AuthorID   string         `db:"author_id"`
	AuthorName string         `db:"author_name"`
	Thumbnail  string         `db:"thumbnail"`
	Views      int64          `db:"views"`
	LikeCount  int            `db:"like_count"`
	Status     string         `db:"status"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

// Articles lists published articles
func (a *CatalogAdapter) Articles(ctx context.Context) ([]*entities.Article, error) {
	const query = `
		SELECT id, title, content, excerpt, category, tags, author_id, author_name,
		       thumbnail, views, like_count, status, created_at, updated_at
		FROM articles
		WHERE status = 'published'
		ORDER BY created_at
	`

	var rows []articleRow
	if err := a.client.DB().SelectContext(ctx, &rows, query); err != nil {
		return nil, apperrors.NewInternalError("failed to list articles", err)
	}

	articles := make([]*entities.Article, 0, len(rows))
	for _, r := range rows {
		articles = append(articles, &entities.Article{
			ID:         r.ID,
			Title:      r.Title,
			Content:    r.Content,
			Excerpt:    r.Excerpt,
			Category:   r.Category,
			Tags:       r.Tags,
			AuthorID:   r.AuthorID,
			AuthorName: r.AuthorName,
			Thumbnail:  r.Thumbnail,
			Views:      r.Views,
			LikeCount:  r.LikeCount,
			Status:     r.Status,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	return articles, nil
}

type expertRow struct {
	ID              string         `db:"id"`
	Name            string         `db:"name"`
	Bio             string         `db:"bio"`
	Specializations pq.StringArray `db:"specializations"`
	Verified        bool           `db:"verified"`
	Rating          float64        `db:"rating"`
	RatingCount     int            `db:"rating_count"`
	ExperienceYears int            `db:"experience_years"`
	TotalAnswers    int            `db:"total_answers"`
	Thumbnail       string         `db:"thumbnail"`
	City            string         `db:"city"`
	State           string         `db:"state"`
	Latitude        float64        `db:"latitude"`
	Longitude       float64        `db:"longitude"`
	Status          string         `db:"status"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// Experts lists active expert profiles
func (a *CatalogAdapter) Experts(ctx context.Context) ([]*entities.Expert, error) {
	const query = `
		SELECT id, name, bio, specializations, verified, rating, rating_count,
		       experience_years, total_answers, thumbnail, city, state,
		       latitude, longitude, status, created_at, updated_at
		FROM experts
		WHERE status = 'active'
		ORDER BY created_at
	`

	var rows []expertRow
	if err := a.client.DB().SelectContext(ctx, &rows, query); err != nil {
		return nil, apperrors.NewInternalError("failed to list experts", err)
	}

	experts := make([]*entities.Expert, 0, len(rows))
	for _, r := range rows {
		experts = append(experts, &entities.Expert{
			ID:              r.ID,
			Name:            r.Name,
			Bio:             r.Bio,
			Specializations: r.Specializations,
			Verified:        r.Verified,
			Rating:          r.Rating,
			RatingCount:     r.RatingCount,
			ExperienceYears: r.ExperienceYears,
			TotalAnswers:    r.TotalAnswers,
			Thumbnail:       r.Thumbnail,
			City:            r.City,
			State:           r.State,
			Location:        entities.Location{Latitude: r.Latitude, Longitude: r.Longitude},
			Status:          r.Status,
			CreatedAt:       r.CreatedAt,
			UpdatedAt:       r.UpdatedAt,
		})
	}
	return experts, nil
}
