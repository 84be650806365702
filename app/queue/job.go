// Package queue is a small job queue on top of Redis lists: producers LPUSH
// JSON encoded jobs and workers BRPOP them, so jobs are consumed in FIFO order
// across any number of worker processes.
package queue

import (
	"context"
	"time"
)

type Job struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	SubscriptionID uint64    `json:"subscription_id"`
	Attempts       int       `json:"attempts"`
	EnqueuedAt     time.Time `json:"enqueued_at"`
}

// Enqueuer submits a named job for a subscription. Submit returns once the job
// is stored; execution happens later on a worker.
type Enqueuer interface {
	Submit(ctx context.Context, name string, subscriptionID uint64) error
}

type HandlerFunc func(ctx context.Context, job Job) error
