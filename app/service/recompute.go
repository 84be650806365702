package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-services/app/entity"
	"github.com/vibast-solutions/ms-go-services/app/factory"
	"github.com/vibast-solutions/ms-go-services/app/pricing"
	"github.com/vibast-solutions/ms-go-services/app/queue"
	"github.com/vibast-solutions/ms-go-services/app/repository"
)

const (
	JobSetPrice   = "set_price"
	JobSetComment = "set_comment"
)

type pricingRepository interface {
	FindPricingInput(ctx context.Context, subscriptionID uint64) (*entity.PricingInput, error)
	UpdatePrice(ctx context.Context, id uint64, price int64, updatedAt time.Time) error
	UpdateComment(ctx context.Context, id uint64, comment string, updatedAt time.Time) error
	ListIDs(ctx context.Context) ([]uint64, error)
}

type jobRegistrar interface {
	Handle(name string, handler queue.HandlerFunc)
}

// RecomputeService derives the stored price and comment of a subscription from
// its current service and plan.
type RecomputeService struct {
	repo     pricingRepository
	enqueuer queue.Enqueuer
	logger   logrus.FieldLogger
}

func NewRecomputeService(repo pricingRepository, enqueuer queue.Enqueuer) *RecomputeService {
	return &RecomputeService{
		repo:     repo,
		enqueuer: enqueuer,
		logger:   factory.NewModuleLogger("recompute-service"),
	}
}

// RegisterHandlers binds the set_price and set_comment jobs on a queue worker.
func (s *RecomputeService) RegisterHandlers(w jobRegistrar) {
	w.Handle(JobSetPrice, func(ctx context.Context, job queue.Job) error {
		return s.SetPrice(ctx, job.SubscriptionID)
	})
	w.Handle(JobSetComment, func(ctx context.Context, job queue.Job) error {
		return s.SetComment(ctx, job.SubscriptionID)
	})
}

// SetPrice recomputes and stores the price. A subscription deleted before the
// job ran is not an error.
func (s *RecomputeService) SetPrice(ctx context.Context, subscriptionID uint64) error {
	in, err := s.repo.FindPricingInput(ctx, subscriptionID)
	if err != nil {
		return fmt.Errorf("load pricing input: %w", err)
	}
	if in == nil {
		s.skip(JobSetPrice, subscriptionID)
		return nil
	}

	price := pricing.Price(in.FullPrice, in.DiscountPercent)
	if err := s.repo.UpdatePrice(ctx, subscriptionID, price, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			s.skip(JobSetPrice, subscriptionID)
			return nil
		}
		return fmt.Errorf("update price: %w", err)
	}
	return nil
}

func (s *RecomputeService) SetComment(ctx context.Context, subscriptionID uint64) error {
	in, err := s.repo.FindPricingInput(ctx, subscriptionID)
	if err != nil {
		return fmt.Errorf("load pricing input: %w", err)
	}
	if in == nil {
		s.skip(JobSetComment, subscriptionID)
		return nil
	}

	if err := s.repo.UpdateComment(ctx, subscriptionID, pricing.Comment(in), time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			s.skip(JobSetComment, subscriptionID)
			return nil
		}
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// RecomputeAll enqueues both jobs for every subscription and returns how many
// subscriptions were scheduled.
func (s *RecomputeService) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	var errs []error
	scheduled := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if err := submitRecompute(ctx, s.enqueuer, id); err != nil {
			errs = append(errs, err)
			continue
		}
		scheduled++
	}

	return scheduled, errors.Join(errs...)
}

func (s *RecomputeService) skip(job string, subscriptionID uint64) {
	s.logger.WithFields(logrus.Fields{
		"job":             job,
		"subscription_id": subscriptionID,
	}).Info("Subscription no longer exists, skipping")
}

func submitRecompute(ctx context.Context, enqueuer queue.Enqueuer, subscriptionID uint64) error {
	if err := enqueuer.Submit(ctx, JobSetPrice, subscriptionID); err != nil {
		return fmt.Errorf("submit %s for subscription %d: %w", JobSetPrice, subscriptionID, err)
	}
	if err := enqueuer.Submit(ctx, JobSetComment, subscriptionID); err != nil {
		return fmt.Errorf("submit %s for subscription %d: %w", JobSetComment, subscriptionID, err)
	}
	return nil
}
