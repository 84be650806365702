// Package events carries domain events from the write path to the consumers
// that schedule recomputation and invalidate caches.
package events

import "time"

type Type string

const (
	// PricingInputChanged is published after a service full price or a plan discount
	// was persisted with a new value.
	PricingInputChanged          Type = "pricing_input.changed"
	SubscriptionCreated          Type = "subscription.created"
	SubscriptionDeleted          Type = "subscription.deleted"
	SubscriptionRecomputeRequest Type = "subscription.recompute_requested"
)

type Source string

const (
	SourceService      Source = "service"
	SourcePlan         Source = "plan"
	SourceSubscription Source = "subscription"
)

type Event struct {
	Type        Type
	Source      Source
	AggregateID uint64
	OccurredAt  time.Time
}

func NewServicePriceChanged(serviceID uint64) Event {
	return newEvent(PricingInputChanged, SourceService, serviceID)
}

func NewPlanDiscountChanged(planID uint64) Event {
	return newEvent(PricingInputChanged, SourcePlan, planID)
}

func NewSubscriptionCreated(subscriptionID uint64) Event {
	return newEvent(SubscriptionCreated, SourceSubscription, subscriptionID)
}

func NewSubscriptionDeleted(subscriptionID uint64) Event {
	return newEvent(SubscriptionDeleted, SourceSubscription, subscriptionID)
}

func NewSubscriptionRecomputeRequested(subscriptionID uint64) Event {
	return newEvent(SubscriptionRecomputeRequest, SourceSubscription, subscriptionID)
}

func newEvent(t Type, source Source, id uint64) Event {
	return Event{
		Type:        t,
		Source:      source,
		AggregateID: id,
		OccurredAt:  time.Now().UTC(),
	}
}
