package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"

	"github.com/khetisetu/search-backend/internal/domain/entities"
	"github.com/khetisetu/search-backend/internal/domain/repositories"
	"github.com/khetisetu/search-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/khetisetu/search-backend/pkg/errors"
)

const searchEventsTable = "search_events"

var pgDialect = goqu.Dialect("postgres")

// SearchEventAdapter is the durable search-event log backed by Postgres
type SearchEventAdapter struct {
	client *postgres.Client
}

var _ repositories.SearchEventRepository = (*SearchEventAdapter)(nil)

// NewSearchEventAdapter creates the search-event log adapter
func NewSearchEventAdapter(client *postgres.Client) *SearchEventAdapter {
	return &SearchEventAdapter{client: client}
}

// LogEvent appends one search event. IDs and timestamps are assigned here
// when the caller leaves them zero.
func (a *SearchEventAdapter) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query, args, err := pgDialect.Insert(searchEventsTable).
		Prepared(true).
		Rows(goqu.Record{
			"id":               event.ID,
			"user_id":          event.UserID,
			"query":            event.Query,
			"normalized_query": event.NormalizedQuery,
			"entity_type":      string(event.EntityType),
			"result_count":     event.ResultCount,
			"latency_ms":       event.LatencyMs,
			"latitude":         event.Latitude,
			"longitude":        event.Longitude,
			"created_at":       event.CreatedAt,
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build search event insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to log search event", err)
	}
	return nil
}

// ZeroResultQueries returns the most recent searches that found nothing,
// the raw material for catalog gap review
func (a *SearchEventAdapter) ZeroResultQueries(ctx context.Context, limit int) ([]*entities.SearchEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	query, args, err := pgDialect.From(searchEventsTable).
		Prepared(true).
		Select("id", "user_id", "query", "normalized_query", "entity_type",
			"result_count", "latency_ms", "latitude", "longitude", "created_at").
		Where(goqu.C("result_count").Eq(0)).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build zero result query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get zero result queries", err)
	}
	defer rows.Close()

	var events []*entities.SearchEvent
	for rows.Next() {
		e := &entities.SearchEvent{}
		var entityType string
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Query,
			&e.NormalizedQuery,
			&entityType,
			&e.ResultCount,
			&e.LatencyMs,
			&e.Latitude,
			&e.Longitude,
			&e.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan search event", err)
		}
		e.EntityType = entities.EntityType(entityType)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate search events", err)
	}

	return events, nil
}
