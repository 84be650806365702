package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/vibast-solutions/ms-go-services/app/metrics"
)

const memoryStoreSize = 1024

// MemoryStore is a process local Store. Every entry shares one TTL, fixed at
// construction, so the ttl passed to SetInt64 is ignored.
type MemoryStore struct {
	lru     *expirable.LRU[string, int64]
	metrics *metrics.Metrics
}

func NewMemoryStore(ttl time.Duration, m *metrics.Metrics) *MemoryStore {
	return &MemoryStore{
		lru:     expirable.NewLRU[string, int64](memoryStoreSize, nil, ttl),
		metrics: m,
	}
}

func (s *MemoryStore) GetInt64(_ context.Context, key string) (int64, bool, error) {
	value, ok := s.lru.Get(key)
	if !ok {
		s.metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheResultMiss).Inc()
		return 0, false, nil
	}

	s.metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheResultHit).Inc()
	return value, true, nil
}

func (s *MemoryStore) SetInt64(_ context.Context, key string, value int64, _ time.Duration) error {
	s.lru.Add(key, value)
	return nil
}

func (s *MemoryStore) Invalidate(_ context.Context, key string) error {
	s.lru.Remove(key)
	s.metrics.CacheInvalidationsTotal.Inc()
	return nil
}
