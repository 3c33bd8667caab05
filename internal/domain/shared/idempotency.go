package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers keys that were already processed
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL
	// Returns true if the key was newly marked, false if it was already processed
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for action de-duplication
type IdempotencyConfig struct {
	// TTL is the window during which the same key is skipped
	TTL time.Duration

	Enabled bool
}

// DefaultIdempotencyConfig returns the default de-duplication configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     2 * time.Second,
		Enabled: true,
	}
}
