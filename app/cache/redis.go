package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/vibast-solutions/ms-go-services/app/metrics"
)

type RedisStore struct {
	client  *redis.Client
	prefix  string
	metrics *metrics.Metrics
}

func NewRedisStore(client *redis.Client, prefix string, m *metrics.Metrics) *RedisStore {
	return &RedisStore{
		client:  client,
		prefix:  prefix,
		metrics: m,
	}
}

func (s *RedisStore) GetInt64(ctx context.Context, key string) (int64, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Int64()
	if err == redis.Nil {
		s.metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheResultMiss).Inc()
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("cache: get %s: %w", key, err)
	}

	s.metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheResultHit).Inc()
	return value, true, nil
}

func (s *RedisStore) SetInt64(ctx context.Context, key string, value int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Invalidate(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("cache: invalidate %s: %w", key, err)
	}
	s.metrics.CacheInvalidationsTotal.Inc()
	return nil
}
