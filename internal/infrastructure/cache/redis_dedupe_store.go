package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/config"
	"go.uber.org/zap"
)

const defaultKeyPrefix = "fluxc:dedupe:"

// RedisDedupeStore shares action de-duplication state between processes
// that sync the same sites.
type RedisDedupeStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisDedupeStore connects to redis and verifies the connection with PING
func NewRedisDedupeStore(ctx context.Context, cfg config.RedisConfig) (*RedisDedupeStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: connect to redis at %s: %w", cfg.Addr, err)
	}

	return NewRedisDedupeStoreWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisDedupeStoreWithClient wraps an existing client
func NewRedisDedupeStoreWithClient(client *redis.Client, keyPrefix string) *RedisDedupeStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisDedupeStore{client: client, keyPrefix: keyPrefix}
}

// MarkProcessed uses SET NX with expiry so concurrent dispatchers agree on one winner
func (s *RedisDedupeStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("cache: mark %q: %w", key, err)
	}
	return ok, nil
}

// IsProcessed checks whether the key is present
func (s *RedisDedupeStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.keyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("cache: lookup %q: %w", key, err)
	}
	return n > 0, nil
}

// Close closes the redis client
func (s *RedisDedupeStore) Close() error {
	return s.client.Close()
}

// NewDedupeStore returns the redis store when enabled and reachable, otherwise
// an in-memory store. A redis failure is logged and falls back.
func NewDedupeStore(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) shared.IdempotencyStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Enabled {
		store, err := NewRedisDedupeStore(ctx, cfg)
		if err == nil {
			logger.Info("using redis action de-duplication", zap.String("addr", cfg.Addr))
			return store
		}
		logger.Warn("redis unavailable, falling back to in-memory de-duplication", zap.Error(err))
	}
	return NewMemoryDedupeStore(time.Minute)
}

var _ shared.IdempotencyStore = (*RedisDedupeStore)(nil)
