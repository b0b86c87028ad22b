package analytics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khetisetu/search-backend/internal/domain/entities"
	"github.com/khetisetu/search-backend/internal/domain/repositories"
	redisclient "github.com/khetisetu/search-backend/internal/infrastructure/clients/redis"
)

// RedisHistoryAdapter stores per-user search history in Redis. Each (user,
// query) pair is one hash with its own TTL, refreshed on every repeat search,
// so expiry of stale entries is entirely Redis's job. A per-user sorted set
// indexes entries by last-searched time for recency listing.
type RedisHistoryAdapter struct {
	client *redisclient.Client
	ttl    time.Duration
}

var _ repositories.SearchHistoryRepository = (*RedisHistoryAdapter)(nil)

// NewRedisHistoryAdapter creates the history store; ttlDays bounds how long
// an untouched entry survives
func NewRedisHistoryAdapter(client *redisclient.Client, ttlDays int) *RedisHistoryAdapter {
	return &RedisHistoryAdapter{
		client: client,
		ttl:    time.Duration(ttlDays) * 24 * time.Hour,
	}
}

func historyEntryKey(userID, query string) string {
	return fmt.Sprintf("search:history:%s:%s", userID, query)
}

func historyIndexKey(userID string) string {
	return fmt.Sprintf("search:history:index:%s", userID)
}

// Upsert increments the pair's counter, refreshes lastSearchedAt, and resets
// the entry TTL. Repeat searches never add rows.
func (a *RedisHistoryAdapter) Upsert(ctx context.Context, userID, normalizedQuery string) error {
	now := time.Now()
	entryKey := historyEntryKey(userID, normalizedQuery)
	indexKey := historyIndexKey(userID)

	pipe := a.client.Client().TxPipeline()
	pipe.HIncrBy(ctx, entryKey, "count", 1)
	pipe.HSet(ctx, entryKey, "query", normalizedQuery, "last_searched_at", now.Unix())
	pipe.Expire(ctx, entryKey, a.ttl)
	pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(now.Unix()), Member: normalizedQuery})
	pipe.Expire(ctx, indexKey, a.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to upsert history entry: %w", err)
	}
	return nil
}

// Recent lists the user's entries, most recently searched first. Index members
// whose entry hash has expired are pruned on the way through.
func (a *RedisHistoryAdapter) Recent(ctx context.Context, userID string, limit int) ([]entities.SearchHistoryEntry, error) {
	indexKey := historyIndexKey(userID)

	// Overfetch to absorb expired entries still present in the index
	members, err := a.client.Client().ZRevRange(ctx, indexKey, 0, int64(limit*2)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history index: %w", err)
	}

	entries := []entities.SearchHistoryEntry{}
	var expired []interface{}
	for _, query := range members {
		fields, err := a.client.Client().HGetAll(ctx, historyEntryKey(userID, query)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read history entry: %w", err)
		}
		if len(fields) == 0 {
			expired = append(expired, query)
			continue
		}
		entries = append(entries, historyEntryFromFields(query, fields))
		if len(entries) == limit {
			break
		}
	}

	if len(expired) > 0 {
		// Opportunistic prune; a failure here does not affect the listing
		a.client.Client().ZRem(ctx, indexKey, expired...)
	}

	return entries, nil
}

// Clear removes all entries for the user
func (a *RedisHistoryAdapter) Clear(ctx context.Context, userID string) error {
	indexKey := historyIndexKey(userID)

	members, err := a.client.Client().ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to read history index: %w", err)
	}

	keys := make([]string, 0, len(members)+1)
	for _, query := range members {
		keys = append(keys, historyEntryKey(userID, query))
	}
	keys = append(keys, indexKey)

	if err := a.client.Client().Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func historyEntryFromFields(query string, fields map[string]string) entities.SearchHistoryEntry {
	entry := entities.SearchHistoryEntry{Query: query}
	if count, err := strconv.ParseInt(fields["count"], 10, 64); err == nil {
		entry.Count = count
	}
	if ts, err := strconv.ParseInt(fields["last_searched_at"], 10, 64); err == nil {
		entry.LastSearchedAt = time.Unix(ts, 0).UTC()
	}
	return entry
}
