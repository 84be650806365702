package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/vibast-solutions/ms-go-services/app/metrics"
)

const deadLetterSuffix = ":dead"

type RedisQueue struct {
	client  *redis.Client
	key     string
	metrics *metrics.Metrics
}

func NewRedisQueue(client *redis.Client, key string, m *metrics.Metrics) *RedisQueue {
	return &RedisQueue{
		client:  client,
		key:     key,
		metrics: m,
	}
}

func (q *RedisQueue) Submit(ctx context.Context, name string, subscriptionID uint64) error {
	job := Job{
		ID:             uuid.NewString(),
		Name:           name,
		SubscriptionID: subscriptionID,
		EnqueuedAt:     time.Now().UTC(),
	}
	if err := q.push(ctx, q.key, job); err != nil {
		return err
	}
	q.metrics.JobsEnqueuedTotal.WithLabelValues(name).Inc()
	return nil
}

func (q *RedisQueue) Key() string {
	return q.key
}

func (q *RedisQueue) DeadLetterKey() string {
	return q.key + deadLetterSuffix
}

func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}

func (q *RedisQueue) push(ctx context.Context, key string, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue: marshal job: %w", err)
	}
	if err := q.client.LPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("queue: push job: %w", err)
	}
	return nil
}

func (q *RedisQueue) pushRaw(ctx context.Context, key string, payload string) error {
	return q.client.LPush(ctx, key, payload).Err()
}
