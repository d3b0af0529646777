// Package cache provides a small key/value store with per-entry expiry. Values
// are opaque bytes; callers own the encoding.
package cache

import (
	"context"
	"time"
)

// Store is safe for concurrent use. Get reports found=false for missing or
// expired keys.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
