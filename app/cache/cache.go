// Package cache stores small derived aggregates such as the subscription total sum.
package cache

import (
	"context"
	"time"
)

// TotalSumKey holds the sum of all subscription prices.
const TotalSumKey = "subscriptions:total_sum"

// Invalidator drops a cached value so the next read recomputes it.
type Invalidator interface {
	Invalidate(ctx context.Context, key string) error
}

type Store interface {
	Invalidator
	GetInt64(ctx context.Context, key string) (int64, bool, error)
	SetInt64(ctx context.Context, key string, value int64, ttl time.Duration) error
}
