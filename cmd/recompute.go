package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var recomputeWorker bool

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Enqueue price and comment recomputation for every subscription",
	Run:   runRecompute,
}

func init() {
	rootCmd.AddCommand(recomputeCmd)

	recomputeCmd.Flags().BoolVar(&recomputeWorker, "worker", false, "Run continuously using the configured cron schedule")
}

func runRecompute(_ *cobra.Command, _ []string) {
	deps, cleanup := mustLoadDependencies()
	defer cleanup()

	recomputeService := deps.newRecomputeService()
	if !recomputeWorker {
		runJob("recompute", func() error { return sweep(context.Background(), recomputeService) })
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler, err := newRecomputeScheduler(ctx, deps.cfg.Jobs.RecomputeSchedule, recomputeService)
	if err != nil {
		logrus.WithError(err).WithField("schedule", deps.cfg.Jobs.RecomputeSchedule).Fatal("invalid recompute schedule")
	}

	scheduler.Start()
	logrus.WithField("schedule", deps.cfg.Jobs.RecomputeSchedule).Info("Recompute scheduler started")
	<-ctx.Done()
	logrus.WithField("job", "recompute").Info("Worker shutdown requested")
	<-scheduler.Stop().Done()
}

type recomputer interface {
	RecomputeAll(ctx context.Context) (int, error)
}

// newRecomputeScheduler runs the sweep on schedule. Overlapping runs are skipped.
func newRecomputeScheduler(ctx context.Context, schedule string, r recomputer) (*cron.Cron, error) {
	scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := scheduler.AddFunc(schedule, func() {
		runJob("recompute", func() error { return sweep(ctx, r) })
	})
	if err != nil {
		return nil, err
	}
	return scheduler, nil
}

func sweep(ctx context.Context, r recomputer) error {
	n, err := r.RecomputeAll(ctx)
	logrus.WithField("job", "recompute").WithField("subscriptions", n).Info("Recompute enqueued")
	return err
}

func runJob(name string, fn func() error) {
	start := time.Now()
	err := fn()
	latency := time.Since(start)
	if err != nil {
		logrus.WithError(err).WithField("job", name).WithField("latency", latency.String()).Error("job_failed")
		return
	}
	logrus.WithField("job", name).WithField("latency", latency.String()).Info("job_completed")
}
