package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-services/app/cache"
	"github.com/vibast-solutions/ms-go-services/app/entity"
	"github.com/vibast-solutions/ms-go-services/app/events"
	"github.com/vibast-solutions/ms-go-services/app/factory"
	"github.com/vibast-solutions/ms-go-services/app/repository"
)

type createSubscriptionRequest interface {
	GetClientId() uint64
	GetServiceId() uint64
	GetPlanId() uint64
}

type listSubscriptionsRequest interface {
	GetClientId() uint64
	GetServiceId() uint64
	GetPlanId() uint64
}

type subscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	FindByID(ctx context.Context, id uint64) (*entity.Subscription, error)
	List(ctx context.Context, filter repository.SubscriptionFilter) ([]*entity.Subscription, error)
	Delete(ctx context.Context, id uint64) error
	SumPrices(ctx context.Context) (int64, error)
}

type serviceFinder interface {
	FindByID(ctx context.Context, id uint64) (*entity.Service, error)
}

type planFinder interface {
	FindByID(ctx context.Context, id uint64) (*entity.Plan, error)
}

type clientFinder interface {
	FindByID(ctx context.Context, id uint64) (*entity.Client, error)
}

type SubscriptionService struct {
	subscriptionRepo subscriptionRepository
	serviceRepo      serviceFinder
	planRepo         planFinder
	clientRepo       clientFinder
	cache            cache.Store
	publisher        eventPublisher
	totalSumTTL      time.Duration
	logger           logrus.FieldLogger
}

func NewSubscriptionService(
	subscriptionRepo subscriptionRepository,
	serviceRepo serviceFinder,
	planRepo planFinder,
	clientRepo clientFinder,
	store cache.Store,
	publisher eventPublisher,
	totalSumTTL time.Duration,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		serviceRepo:      serviceRepo,
		planRepo:         planRepo,
		clientRepo:       clientRepo,
		cache:            store,
		publisher:        publisher,
		totalSumTTL:      totalSumTTL,
		logger:           factory.NewModuleLogger("subscription-service"),
	}
}

// CreateSubscription stores a subscription with a zero price and an empty comment.
// The price is filled in asynchronously by the set_price job.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, req createSubscriptionRequest) (*entity.Subscription, error) {
	if req.GetClientId() == 0 || req.GetServiceId() == 0 || req.GetPlanId() == 0 {
		return nil, fmt.Errorf("%w: client_id, service_id and plan_id are required", ErrInvalidRequest)
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &entity.Subscription{
		ClientID:  req.GetClientId(),
		ServiceID: req.GetServiceId(),
		PlanID:    req.GetPlanId(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.subscriptionRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, fmt.Errorf("%w: referenced client, service or plan was removed", ErrInvalidRequest)
		}
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.NewSubscriptionCreated(item.ID))
	return item, nil
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, id uint64) (*entity.Subscription, error) {
	item, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrSubscriptionNotFound
	}
	return item, nil
}

func (s *SubscriptionService) ListSubscriptions(ctx context.Context, req listSubscriptionsRequest) ([]*entity.Subscription, error) {
	return s.subscriptionRepo.List(ctx, repository.SubscriptionFilter{
		ClientID:  req.GetClientId(),
		ServiceID: req.GetServiceId(),
		PlanID:    req.GetPlanId(),
	})
}

func (s *SubscriptionService) DeleteSubscription(ctx context.Context, id uint64) error {
	if err := s.subscriptionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}

	publish(ctx, s.publisher, s.logger, events.NewSubscriptionDeleted(id))
	return nil
}

// TotalSum returns the sum of all subscription prices, served from the cache when present.
// Cache failures degrade to a direct query.
func (s *SubscriptionService) TotalSum(ctx context.Context) (int64, error) {
	total, ok, err := s.cache.GetInt64(ctx, cache.TotalSumKey)
	if err != nil {
		s.logger.WithError(err).Warn("Total sum cache read failed")
	} else if ok {
		return total, nil
	}

	total, err = s.subscriptionRepo.SumPrices(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.cache.SetInt64(ctx, cache.TotalSumKey, total, s.totalSumTTL); err != nil {
		s.logger.WithError(err).Warn("Total sum cache write failed")
	}
	return total, nil
}

// RequestRecompute schedules both derivation jobs for one subscription.
func (s *SubscriptionService) RequestRecompute(ctx context.Context, id uint64) error {
	if _, err := s.GetSubscription(ctx, id); err != nil {
		return err
	}
	return s.publisher.Publish(ctx, events.NewSubscriptionRecomputeRequested(id))
}

func (s *SubscriptionService) checkReferences(ctx context.Context, req createSubscriptionRequest) error {
	client, err := s.clientRepo.FindByID(ctx, req.GetClientId())
	if err != nil {
		return err
	}
	if client == nil {
		return ErrClientNotFound
	}

	svc, err := s.serviceRepo.FindByID(ctx, req.GetServiceId())
	if err != nil {
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}

	plan, err := s.planRepo.FindByID(ctx, req.GetPlanId())
	if err != nil {
		return err
	}
	if plan == nil {
		return ErrPlanNotFound
	}
	return nil
}
