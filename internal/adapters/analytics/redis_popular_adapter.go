package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khetisetu/search-backend/internal/domain/entities"
	"github.com/khetisetu/search-backend/internal/domain/repositories"
	redisclient "github.com/khetisetu/search-backend/internal/infrastructure/clients/redis"
)

// RedisPopularAdapter counts searches in per-day sorted sets so the trailing
// window slides by key expiry instead of by decrementing counters. Each day's
// set is trimmed to the top maxTerms to bound cardinality; unique searchers
// are estimated with a per-(day, query) HyperLogLog.
type RedisPopularAdapter struct {
	client     *redisclient.Client
	windowDays int
	maxTerms   int
}

var _ repositories.PopularSearchRepository = (*RedisPopularAdapter)(nil)

// NewRedisPopularAdapter creates the popularity counter store
func NewRedisPopularAdapter(client *redisclient.Client, windowDays, maxTerms int) *RedisPopularAdapter {
	return &RedisPopularAdapter{client: client, windowDays: windowDays, maxTerms: maxTerms}
}

func popularDayKey(day time.Time) string {
	return "search:popular:" + day.UTC().Format("2006-01-02")
}

func popularHLLKey(day time.Time, query string) string {
	return fmt.Sprintf("search:popular:hll:%s:%s", day.UTC().Format("2006-01-02"), query)
}

// Increment bumps today's counter for the query and feeds the searcher into
// the unique-searcher estimate
func (a *RedisPopularAdapter) Increment(ctx context.Context, normalizedQuery, searcherID string) error {
	now := time.Now()
	dayKey := popularDayKey(now)
	hllKey := popularHLLKey(now, normalizedQuery)
	keyTTL := time.Duration(a.windowDays+1) * 24 * time.Hour

	pipe := a.client.Client().TxPipeline()
	pipe.ZIncrBy(ctx, dayKey, 1, normalizedQuery)
	// Trim keeps the day's set at the top maxTerms; long-tail queries fall
	// off but the window totals for popular terms stay exact
	pipe.ZRemRangeByRank(ctx, dayKey, 0, int64(-(a.maxTerms + 1)))
	pipe.Expire(ctx, dayKey, keyTTL)
	if searcherID != "" {
		pipe.PFAdd(ctx, hllKey, searcherID)
		pipe.Expire(ctx, hllKey, keyTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment popular counter: %w", err)
	}
	return nil
}

// Top returns the most searched terms over the trailing window, merged across
// the daily sets
func (a *RedisPopularAdapter) Top(ctx context.Context, limit int) ([]entities.PopularSearch, error) {
	now := time.Now()
	dayKeys := make([]string, 0, a.windowDays)
	for i := 0; i < a.windowDays; i++ {
		dayKeys = append(dayKeys, popularDayKey(now.AddDate(0, 0, -i)))
	}

	mergedKey := fmt.Sprintf("search:popular:merged:%d", now.UnixNano())
	client := a.client.Client()

	if err := client.ZUnionStore(ctx, mergedKey, &redis.ZStore{Keys: dayKeys}).Err(); err != nil {
		return nil, fmt.Errorf("failed to merge popular counters: %w", err)
	}
	defer client.Del(context.WithoutCancel(ctx), mergedKey)

	ranked, err := client.ZRevRangeWithScores(ctx, mergedKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read popular counters: %w", err)
	}

	popular := make([]entities.PopularSearch, 0, len(ranked))
	for _, z := range ranked {
		query, ok := z.Member.(string)
		if !ok {
			continue
		}
		entry := entities.PopularSearch{Query: query, Count: int64(z.Score)}

		hllKeys := make([]string, 0, a.windowDays)
		for i := 0; i < a.windowDays; i++ {
			hllKeys = append(hllKeys, popularHLLKey(now.AddDate(0, 0, -i), query))
		}
		if unique, err := client.PFCount(ctx, hllKeys...).Result(); err == nil {
			entry.UniqueSearchers = unique
		}

		popular = append(popular, entry)
	}

	return popular, nil
}
