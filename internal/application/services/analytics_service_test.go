package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khetisetu/search-backend/internal/domain/entities"
)

type recordedUpsert struct {
	userID string
	query  string
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	upserts []recordedUpsert
}

func (f *fakeHistoryRepo) Upsert(ctx context.Context, userID, normalizedQuery string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, recordedUpsert{userID: userID, query: normalizedQuery})
	return nil
}

func (f *fakeHistoryRepo) Recent(ctx context.Context, userID string, limit int) ([]entities.SearchHistoryEntry, error) {
	return nil, nil
}

func (f *fakeHistoryRepo) Clear(ctx context.Context, userID string) error { return nil }

func (f *fakeHistoryRepo) recorded() []recordedUpsert {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedUpsert(nil), f.upserts...)
}

type recordedIncrement struct {
	query      string
	searcherID string
}

type fakePopularRepo struct {
	mu         sync.Mutex
	increments []recordedIncrement
}

func (f *fakePopularRepo) Increment(ctx context.Context, normalizedQuery, searcherID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.increments = append(f.increments, recordedIncrement{query: normalizedQuery, searcherID: searcherID})
	return nil
}

func (f *fakePopularRepo) Top(ctx context.Context, limit int) ([]entities.PopularSearch, error) {
	return nil, nil
}

func (f *fakePopularRepo) recorded() []recordedIncrement {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedIncrement(nil), f.increments...)
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events []*entities.SearchEvent
}

func (f *fakeEventRepo) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventRepo) ZeroResultQueries(ctx context.Context, limit int) ([]*entities.SearchEvent, error) {
	return nil, nil
}

func (f *fakeEventRepo) recorded() []*entities.SearchEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*entities.SearchEvent(nil), f.events...)
}

func trackedQuery() *entities.SearchQuery {
	return &entities.SearchQuery{
		Term:           "Tomato Seeds",
		NormalizedTerm: "tomato seeds",
		Type:           entities.EntityProducts,
		Page:           1,
		Limit:          20,
		Sort:           entities.SortRelevance,
	}
}

func TestTrackSearchRecordsAuthenticatedSearch(t *testing.T) {
	history := &fakeHistoryRepo{}
	popular := &fakePopularRepo{}
	events := &fakeEventRepo{}
	svc := NewAnalyticsService(history, popular, events)

	query := trackedQuery()
	query.Filters.Geo = &entities.GeoFilter{Latitude: 12.9716, Longitude: 77.5946, RadiusKm: 25}

	svc.TrackSearch(context.Background(), "user-1", query, 12, 40*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(history.recorded()) == 1 && len(popular.recorded()) == 1 && len(events.recorded()) == 1
	}, time.Second, 5*time.Millisecond)

	upsert := history.recorded()[0]
	assert.Equal(t, "user-1", upsert.userID)
	assert.Equal(t, "tomato seeds", upsert.query)

	increment := popular.recorded()[0]
	assert.Equal(t, "tomato seeds", increment.query)
	assert.Equal(t, "user-1", increment.searcherID)

	event := events.recorded()[0]
	assert.Equal(t, "Tomato Seeds", event.Query)
	assert.Equal(t, "tomato seeds", event.NormalizedQuery)
	assert.Equal(t, entities.EntityProducts, event.EntityType)
	assert.Equal(t, int64(12), event.ResultCount)
	require.NotNil(t, event.Latitude)
	assert.InDelta(t, 12.9716, *event.Latitude, 1e-9)
}

// A repeat search upserts the same (user, query) key again instead of
// introducing a new one; the store is responsible for folding it into a
// single entry with an incremented count.
func TestTrackSearchRepeatUpsertsSameKey(t *testing.T) {
	history := &fakeHistoryRepo{}
	svc := NewAnalyticsService(history, nil, nil)

	svc.TrackSearch(context.Background(), "user-1", trackedQuery(), 12, time.Millisecond)
	require.Eventually(t, func() bool { return len(history.recorded()) == 1 }, time.Second, 5*time.Millisecond)

	svc.TrackSearch(context.Background(), "user-1", trackedQuery(), 12, time.Millisecond)
	require.Eventually(t, func() bool { return len(history.recorded()) == 2 }, time.Second, 5*time.Millisecond)

	upserts := history.recorded()
	assert.Equal(t, upserts[0], upserts[1])
}

// Anonymous searches count toward popularity and the event log but never
// touch history.
func TestTrackSearchAnonymousSkipsHistory(t *testing.T) {
	history := &fakeHistoryRepo{}
	popular := &fakePopularRepo{}
	events := &fakeEventRepo{}
	svc := NewAnalyticsService(history, popular, events)

	svc.TrackSearch(context.Background(), "", trackedQuery(), 0, time.Millisecond)

	require.Eventually(t, func() bool {
		return len(popular.recorded()) == 1 && len(events.recorded()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Empty(t, history.recorded())
	assert.Equal(t, "", popular.recorded()[0].searcherID)
	assert.Equal(t, int64(0), events.recorded()[0].ResultCount)
}

func TestTrackSearchWithoutBackendsIsANoOp(t *testing.T) {
	svc := NewAnalyticsService(nil, nil, nil)

	svc.TrackSearch(context.Background(), "user-1", trackedQuery(), 3, time.Millisecond)

	// Nothing to observe; the write must simply not panic
	time.Sleep(20 * time.Millisecond)
}
