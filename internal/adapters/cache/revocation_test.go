package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	store := NewMemoryRevocationStore()
	store.now = func() time.Time { return now }

	t.Run("Unknown token is not revoked", func(t *testing.T) {
		revoked, err := store.IsRevoked(ctx, "jti-unknown")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("Revoked token stays revoked until its ttl passes", func(t *testing.T) {
		require.NoError(t, store.Revoke(ctx, "jti-1", time.Hour))

		revoked, err := store.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		now = now.Add(2 * time.Hour)

		revoked, err = store.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
		assert.Empty(t, store.revoked)
	})

	t.Run("Non-positive ttl is a no-op", func(t *testing.T) {
		require.NoError(t, store.Revoke(ctx, "jti-2", 0))
		assert.NotContains(t, store.revoked, "jti-2")
	})

	t.Run("Expired entries are pruned on revoke", func(t *testing.T) {
		require.NoError(t, store.Revoke(ctx, "jti-3", time.Minute))
		now = now.Add(time.Hour)
		require.NoError(t, store.Revoke(ctx, "jti-4", time.Minute))

		assert.NotContains(t, store.revoked, "jti-3")
		assert.Contains(t, store.revoked, "jti-4")
	})
}
