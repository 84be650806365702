package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-services/app/cache"
	"github.com/vibast-solutions/ms-go-services/app/events"
	"github.com/vibast-solutions/ms-go-services/app/factory"
	"github.com/vibast-solutions/ms-go-services/app/queue"
)

type dependentLister interface {
	ListIDsByServiceID(ctx context.Context, serviceID uint64) ([]uint64, error)
	ListIDsByPlanID(ctx context.Context, planID uint64) ([]uint64, error)
}

type eventSubscriber interface {
	Subscribe(t events.Type, handler events.Handler)
}

// RecomputeDispatcher turns domain events into queued jobs and cache invalidations.
type RecomputeDispatcher struct {
	subscriptions dependentLister
	enqueuer      queue.Enqueuer
	invalidator   cache.Invalidator
	logger        logrus.FieldLogger
}

func NewRecomputeDispatcher(subscriptions dependentLister, enqueuer queue.Enqueuer, invalidator cache.Invalidator) *RecomputeDispatcher {
	return &RecomputeDispatcher{
		subscriptions: subscriptions,
		enqueuer:      enqueuer,
		invalidator:   invalidator,
		logger:        factory.NewModuleLogger("recompute-dispatcher"),
	}
}

func (d *RecomputeDispatcher) Register(bus eventSubscriber) {
	bus.Subscribe(events.PricingInputChanged, d.onPricingInputChanged)
	bus.Subscribe(events.SubscriptionCreated, d.onSubscriptionCreated)
	bus.Subscribe(events.SubscriptionRecomputeRequest, d.onRecomputeRequested)
	bus.Subscribe(events.SubscriptionDeleted, d.onSubscriptionDeleted)
}

func (d *RecomputeDispatcher) onPricingInputChanged(ctx context.Context, event events.Event) error {
	var (
		ids []uint64
		err error
	)
	switch event.Source {
	case events.SourceService:
		ids, err = d.subscriptions.ListIDsByServiceID(ctx, event.AggregateID)
	case events.SourcePlan:
		ids, err = d.subscriptions.ListIDsByPlanID(ctx, event.AggregateID)
	default:
		return fmt.Errorf("unexpected pricing input source %q", event.Source)
	}
	if err != nil {
		return fmt.Errorf("list dependent subscriptions: %w", err)
	}

	var errs []error
	for _, id := range ids {
		if err := submitRecompute(ctx, d.enqueuer, id); err != nil {
			errs = append(errs, err)
		}
	}

	d.logger.WithFields(logrus.Fields{
		"source":        string(event.Source),
		"aggregate_id":  event.AggregateID,
		"subscriptions": len(ids),
		"failed":        len(errs),
	}).Info("Recompute scheduled")
	return errors.Join(errs...)
}

func (d *RecomputeDispatcher) onSubscriptionCreated(ctx context.Context, event events.Event) error {
	if err := d.enqueuer.Submit(ctx, JobSetPrice, event.AggregateID); err != nil {
		return fmt.Errorf("submit %s for subscription %d: %w", JobSetPrice, event.AggregateID, err)
	}
	return nil
}

func (d *RecomputeDispatcher) onRecomputeRequested(ctx context.Context, event events.Event) error {
	return submitRecompute(ctx, d.enqueuer, event.AggregateID)
}

func (d *RecomputeDispatcher) onSubscriptionDeleted(ctx context.Context, _ events.Event) error {
	return d.invalidator.Invalidate(ctx, cache.TotalSumKey)
}
