package entities

import "time"

// SearchHistoryEntry is one (user, query) history record. Unique per pair;
// repeat searches increment Count instead of adding rows.
type SearchHistoryEntry struct {
	Query          string    `json:"query"`
	Count          int64     `json:"count"`
	LastSearchedAt time.Time `json:"lastSearchedAt"`
}

// PopularSearch is a globally counted search term over the trailing window
type PopularSearch struct {
	Query           string `json:"query"`
	Count           int64  `json:"count"`
	UniqueSearchers int64  `json:"uniqueSearchers"`
}

// SearchEvent is one durable search-log row
type SearchEvent struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId,omitempty"`
	Query           string     `json:"query"`
	NormalizedQuery string     `json:"normalizedQuery"`
	EntityType      EntityType `json:"entityType"`
	ResultCount     int64      `json:"resultCount"`
	LatencyMs       int64      `json:"latencyMs"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// TopicCount is a tag with its frequency across entities in the window
type TopicCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// TrendingSnapshot is computed on demand, never persisted
type TrendingSnapshot struct {
	Products  []*Product   `json:"products"`
	Questions []*Question  `json:"questions"`
	Articles  []*Article   `json:"articles"`
	Topics    []TopicCount `json:"topics"`
}
