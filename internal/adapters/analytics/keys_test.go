package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHistoryKeys(t *testing.T) {
	assert.Equal(t, "search:history:user-1:tomato", historyEntryKey("user-1", "tomato"))
	assert.Equal(t, "search:history:index:user-1", historyIndexKey("user-1"))
}

func TestPopularKeys(t *testing.T) {
	day := time.Date(2026, 8, 23, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "search:popular:2026-08-23", popularDayKey(day))
	assert.Equal(t, "search:popular:hll:2026-08-23:tomato", popularHLLKey(day, "tomato"))
}

func TestHistoryEntryFromFields(t *testing.T) {
	entry := historyEntryFromFields("tomato", map[string]string{
		"count":            "3",
		"last_searched_at": "1774000000",
	})

	assert.Equal(t, "tomato", entry.Query)
	assert.Equal(t, int64(3), entry.Count)
	assert.Equal(t, time.Unix(1774000000, 0).UTC(), entry.LastSearchedAt)
}

func TestHistoryEntryFromFields_MalformedFields(t *testing.T) {
	entry := historyEntryFromFields("tomato", map[string]string{"count": "not-a-number"})

	assert.Equal(t, "tomato", entry.Query)
	assert.Zero(t, entry.Count)
	assert.True(t, entry.LastSearchedAt.IsZero())
}
