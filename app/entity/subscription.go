package entity

import "time"

const MaxCommentLength = 250

type Subscription struct {
	ID        uint64
	ClientID  uint64
	ServiceID uint64
	PlanID    uint64
	Price     int64
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PricingInput is a subscription joined with the service and plan fields that determine its price.
type PricingInput struct {
	SubscriptionID  uint64
	ServiceName     string
	FullPrice       int64
	PlanType        string
	DiscountPercent int32
}
