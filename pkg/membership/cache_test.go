package membership_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantguard/pkg/membership"
	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

func TestInMemoryCache(t *testing.T) {
	t.Parallel()

	t.Run("stores and retrieves membership sets", func(t *testing.T) {
		t.Parallel()

		cache := membership.NewInMemoryCache()
		t.Cleanup(func() { _ = cache.Close() })

		ids := []tenant.ID{int64(7), "t-acme"}
		cache.Set(context.Background(), "u1", ids, time.Minute)

		got, ok := cache.Get(context.Background(), "u1")
		require.True(t, ok)
		assert.Equal(t, ids, got)
	})

	t.Run("misses unknown keys", func(t *testing.T) {
		t.Parallel()

		cache := membership.NewInMemoryCache()
		t.Cleanup(func() { _ = cache.Close() })

		_, ok := cache.Get(context.Background(), "missing")
		assert.False(t, ok)
	})

	t.Run("expires entries", func(t *testing.T) {
		t.Parallel()

		cache := membership.NewInMemoryCache()
		t.Cleanup(func() { _ = cache.Close() })

		cache.Set(context.Background(), "u1", []tenant.ID{int64(1)}, 10*time.Millisecond)
		time.Sleep(20 * time.Millisecond)

		_, ok := cache.Get(context.Background(), "u1")
		assert.False(t, ok)
	})

	t.Run("delete removes entries", func(t *testing.T) {
		t.Parallel()

		cache := membership.NewInMemoryCache()
		t.Cleanup(func() { _ = cache.Close() })

		cache.Set(context.Background(), "u1", []tenant.ID{int64(1)}, time.Minute)
		cache.Delete(context.Background(), "u1")

		_, ok := cache.Get(context.Background(), "u1")
		assert.False(t, ok)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		cache := membership.NewInMemoryCache()
		require.NoError(t, cache.Close())
		require.NoError(t, cache.Close())
	})
}
