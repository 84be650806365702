package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-services/app/factory"
	"github.com/vibast-solutions/ms-go-services/app/metrics"
	"golang.org/x/sync/errgroup"
)

const errorBackoff = time.Second

type WorkerConfig struct {
	Concurrency int
	PollTimeout time.Duration
	MaxAttempts int
}

// Worker pops jobs from a RedisQueue and runs the handler registered for the job name.
// A failing job is pushed back until it has been attempted MaxAttempts times and is
// then moved to the dead letter list.
type Worker struct {
	queue    *RedisQueue
	cfg      WorkerConfig
	handlers map[string]HandlerFunc
	metrics  *metrics.Metrics
	logger   logrus.FieldLogger
}

func NewWorker(queue *RedisQueue, cfg WorkerConfig, m *metrics.Metrics) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.PollTimeout < time.Second {
		cfg.PollTimeout = time.Second
	}

	return &Worker{
		queue:    queue,
		cfg:      cfg,
		handlers: make(map[string]HandlerFunc),
		metrics:  m,
		logger:   factory.NewModuleLogger("queue-worker"),
	}
}

// Handle registers handler for jobs called name. It must be called before Run.
func (w *Worker) Handle(name string, handler HandlerFunc) {
	w.handlers[name] = handler
}

// Run consumes jobs with cfg.Concurrency goroutines until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < w.cfg.Concurrency; i++ {
		consumer := i
		g.Go(func() error {
			return w.consume(ctx, consumer)
		})
	}
	return g.Wait()
}

func (w *Worker) consume(ctx context.Context, consumer int) error {
	l := w.logger.WithField("consumer", consumer)
	l.Info("Queue consumer started")
	for {
		if ctx.Err() != nil {
			l.Info("Queue consumer stopped")
			return nil
		}

		if _, err := w.ProcessNext(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			l.WithError(err).Error("Queue pop failed")
			select {
			case <-ctx.Done():
			case <-time.After(errorBackoff):
			}
		}
	}
}

// ProcessNext waits up to the poll timeout for one job and handles it.
// It reports whether a job was taken off the queue.
func (w *Worker) ProcessNext(ctx context.Context) (bool, error) {
	result, err := w.queue.client.BRPop(ctx, w.cfg.PollTimeout, w.queue.key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// result[0] is the list name, result[1] the payload
	payload := result[1]
	// once popped, the job must be handled and re-queued even during shutdown
	jobCtx := context.WithoutCancel(ctx)
	var job Job
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		w.logger.WithError(err).Error("Queue job decode failed")
		w.metrics.JobsProcessedTotal.WithLabelValues("unknown", metrics.JobResultDead).Inc()
		if pushErr := w.queue.pushRaw(jobCtx, w.queue.DeadLetterKey(), payload); pushErr != nil {
			w.logger.WithError(pushErr).Error("Queue dead letter push failed")
		}
		return true, nil
	}

	w.dispatch(jobCtx, job)
	return true, nil
}

func (w *Worker) dispatch(ctx context.Context, job Job) {
	l := w.logger.WithFields(logrus.Fields{
		"job":             job.Name,
		"job_id":          job.ID,
		"subscription_id": job.SubscriptionID,
		"attempts":        job.Attempts,
	})

	handler, ok := w.handlers[job.Name]
	if !ok {
		l.Error("job_unknown")
		w.bury(ctx, l, job)
		return
	}

	start := time.Now()
	err := runHandler(ctx, handler, job)
	latency := time.Since(start)
	w.metrics.JobDuration.WithLabelValues(job.Name).Observe(latency.Seconds())
	l = l.WithField("latency", latency.String())

	if err == nil {
		w.metrics.JobsProcessedTotal.WithLabelValues(job.Name, metrics.JobResultSuccess).Inc()
		l.Info("job_completed")
		return
	}

	job.Attempts++
	if job.Attempts >= w.cfg.MaxAttempts {
		l.WithError(err).Error("job_failed")
		w.bury(ctx, l, job)
		return
	}

	l.WithError(err).Warn("job_retry")
	w.metrics.JobsProcessedTotal.WithLabelValues(job.Name, metrics.JobResultRetry).Inc()
	if pushErr := w.queue.push(ctx, w.queue.key, job); pushErr != nil {
		l.WithError(pushErr).Error("Queue retry push failed")
	}
}

func (w *Worker) bury(ctx context.Context, l logrus.FieldLogger, job Job) {
	w.metrics.JobsProcessedTotal.WithLabelValues(job.Name, metrics.JobResultDead).Inc()
	if err := w.queue.push(ctx, w.queue.DeadLetterKey(), job); err != nil {
		l.WithError(err).Error("Queue dead letter push failed")
	}
}

func runHandler(ctx context.Context, handler HandlerFunc, job Job) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("job panicked: %v\n%s", rec, debug.Stack())
		}
	}()

	return handler(ctx, job)
}
