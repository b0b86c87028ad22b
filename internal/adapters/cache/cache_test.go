package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khetisetu/search-backend/internal/domain/providers"
)

func TestNoopAdapter_AlwaysMisses(t *testing.T) {
	c := NewNoopAdapter()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 60))

	_, err := c.Get(ctx, "key")
	assert.True(t, errors.Is(err, providers.ErrCacheMiss))

	assert.NoError(t, c.Delete(ctx, "key"))
}

func TestLRUAdapter_RoundTrip(t *testing.T) {
	c := NewLRUAdapter(10, time.Minute)
	ctx := context.Background()

	_, err := c.Get(ctx, "absent")
	assert.True(t, errors.Is(err, providers.ErrCacheMiss))

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 60))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	require.NoError(t, c.Delete(ctx, "key"))
	_, err = c.Get(ctx, "key")
	assert.True(t, errors.Is(err, providers.ErrCacheMiss))
}

func TestLRUAdapter_Expiry(t *testing.T) {
	c := NewLRUAdapter(10, 20*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 600))

	time.Sleep(50 * time.Millisecond)

	_, err := c.Get(ctx, "key")
	assert.True(t, errors.Is(err, providers.ErrCacheMiss))
}
