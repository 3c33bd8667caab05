package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ---- MemoryDedupeStore Tests ----

func TestMemoryDedupeStore_MarkProcessed(t *testing.T) {
	store := NewMemoryDedupeStore(0)
	defer store.Close()
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	t.Run("first mark wins", func(t *testing.T) {
		ok, err := store.MarkProcessed(ctx, "orders:1", time.Second)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("second mark within ttl is rejected", func(t *testing.T) {
		ok, err := store.MarkProcessed(ctx, "orders:1", time.Second)
		require.NoError(t, err)
		assert.False(t, ok)

		processed, err := store.IsProcessed(ctx, "orders:1")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("mark after expiry succeeds", func(t *testing.T) {
		now = now.Add(2 * time.Second)
		processed, err := store.IsProcessed(ctx, "orders:1")
		require.NoError(t, err)
		assert.False(t, processed)

		ok, err := store.MarkProcessed(ctx, "orders:1", time.Second)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestMemoryDedupeStore_Sweep(t *testing.T) {
	store := NewMemoryDedupeStore(0)
	defer store.Close()
	ctx := context.Background()

	now := time.Unix(1000, 0)
	store.now = func() time.Time { return now }

	_, _ = store.MarkProcessed(ctx, "a", time.Second)
	_, _ = store.MarkProcessed(ctx, "b", time.Minute)
	now = now.Add(10 * time.Second)
	store.sweep()

	assert.Equal(t, 1, store.Len())
}

func TestMemoryDedupeStore_CloseIsIdempotent(t *testing.T) {
	store := NewMemoryDedupeStore(time.Millisecond)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

// ---- Redis Tests ----

func TestRedisDedupeStore_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	store := NewRedisDedupeStoreWithClient(client, "")
	defer store.Close()

	assert.Equal(t, defaultKeyPrefix, store.keyPrefix)

	_, err := store.MarkProcessed(context.Background(), "k", time.Second)
	assert.Error(t, err)
	_, err = store.IsProcessed(context.Background(), "k")
	assert.Error(t, err)
}

func TestNewDedupeStore_FallsBackToMemory(t *testing.T) {
	cfg := config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	store := NewDedupeStore(ctx, cfg, zap.NewNop())
	defer store.Close()

	_, isMemory := store.(*MemoryDedupeStore)
	assert.True(t, isMemory)
}

func TestNewDedupeStore_DisabledUsesMemory(t *testing.T) {
	store := NewDedupeStore(context.Background(), config.RedisConfig{}, nil)
	defer store.Close()

	_, isMemory := store.(*MemoryDedupeStore)
	assert.True(t, isMemory)
}
