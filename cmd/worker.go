package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-services/app/queue"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume set_price and set_comment jobs from the queue",
	Run:   runQueueWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runQueueWorker(_ *cobra.Command, _ []string) {
	deps, cleanup := mustLoadDependencies()
	defer cleanup()

	worker := queue.NewWorker(deps.queue, queue.WorkerConfig{
		Concurrency: deps.cfg.Queue.WorkerConcurrency,
		PollTimeout: deps.cfg.Queue.PollTimeout,
		MaxAttempts: deps.cfg.Queue.MaxAttempts,
	}, deps.metrics)
	deps.newRecomputeService().RegisterHandlers(worker)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logrus.WithFields(logrus.Fields{
		"queue":       deps.queue.Key(),
		"concurrency": deps.cfg.Queue.WorkerConcurrency,
	}).Info("Starting queue worker")
	if err := worker.Run(ctx); err != nil {
		logrus.WithError(err).Error("Queue worker stopped with error")
		return
	}
	logrus.Info("Queue worker stopped")
}
