package service

import "errors"

var (
	ErrServiceNotFound      = errors.New("service not found")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrServiceAlreadyExists = errors.New("service already exists")
	ErrServiceInUse         = errors.New("service is referenced by subscriptions")
	ErrPlanInUse            = errors.New("plan is referenced by subscriptions")
	ErrClientInUse          = errors.New("client is referenced by subscriptions")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidPrice         = errors.New("invalid full price")
	ErrInvalidDiscount      = errors.New("invalid discount percent")
	ErrInvalidPlanType      = errors.New("invalid plan type")
	ErrNoFieldsToUpdate     = errors.New("no fields provided for update")
)
