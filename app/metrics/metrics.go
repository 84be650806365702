package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "services_billing"

const (
	JobResultSuccess = "success"
	JobResultRetry   = "retry"
	JobResultDead    = "dead"

	CacheResultHit  = "hit"
	CacheResultMiss = "miss"
)

// Metrics holds the Prometheus collectors shared by the queue, the worker, the cache
// and the gRPC server.
type Metrics struct {
	GRPCRequestsTotal       *prometheus.CounterVec
	GRPCRequestDuration     *prometheus.HistogramVec
	JobsEnqueuedTotal       *prometheus.CounterVec
	JobsProcessedTotal      *prometheus.CounterVec
	JobDuration             *prometheus.HistogramVec
	CacheLookupsTotal       *prometheus.CounterVec
	CacheInvalidationsTotal prometheus.Counter
}

// NewMetrics creates the collectors and registers them on registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		GRPCRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "grpc_requests_total",
				Help:      "Total number of unary gRPC requests, by method and status code",
			},
			[]string{"method", "code"},
		),
		GRPCRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "grpc_request_duration_seconds",
				Help:      "Unary gRPC handler duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		JobsEnqueuedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "jobs_enqueued_total",
				Help:      "Total number of jobs submitted to the queue",
			},
			[]string{"job"},
		),
		JobsProcessedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "jobs_processed_total",
				Help:      "Total number of jobs taken off the queue, by outcome",
			},
			[]string{"job", "result"},
		),
		JobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "job_duration_seconds",
				Help:      "Job handler duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"job"},
		),
		CacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Total number of cache lookups, by result",
			},
			[]string{"result"},
		),
		CacheInvalidationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_invalidations_total",
				Help:      "Total number of cache invalidations",
			},
		),
	}

	registerer.MustRegister(
		m.GRPCRequestsTotal,
		m.GRPCRequestDuration,
		m.JobsEnqueuedTotal,
		m.JobsProcessedTotal,
		m.JobDuration,
		m.CacheLookupsTotal,
		m.CacheInvalidationsTotal,
	)

	return m
}
