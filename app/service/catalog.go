package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-services/app/entity"
	"github.com/vibast-solutions/ms-go-services/app/events"
	"github.com/vibast-solutions/ms-go-services/app/factory"
	"github.com/vibast-solutions/ms-go-services/app/pricing"
	"github.com/vibast-solutions/ms-go-services/app/repository"
)

type createServiceRequest interface {
	GetName() string
	GetFullPrice() int64
}

type updateServiceRequest interface {
	GetId() uint64
	GetHasName() bool
	GetName() string
	GetHasFullPrice() bool
	GetFullPrice() int64
}

type createPlanRequest interface {
	GetPlanType() string
	GetDiscountPercent() int32
}

type updatePlanRequest interface {
	GetId() uint64
	GetHasPlanType() bool
	GetPlanType() string
	GetHasDiscountPercent() bool
	GetDiscountPercent() int32
}

type serviceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	Update(ctx context.Context, service *entity.Service) error
	FindByID(ctx context.Context, id uint64) (*entity.Service, error)
	List(ctx context.Context) ([]*entity.Service, error)
	Delete(ctx context.Context, id uint64) error
}

type planRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	Update(ctx context.Context, plan *entity.Plan) error
	FindByID(ctx context.Context, id uint64) (*entity.Plan, error)
	List(ctx context.Context, planType string) ([]*entity.Plan, error)
	Delete(ctx context.Context, id uint64) error
}

type eventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// CatalogService manages services and plans. Updates that change a pricing input
// publish events.PricingInputChanged once the new row is stored.
type CatalogService struct {
	serviceRepo serviceRepository
	planRepo    planRepository
	publisher   eventPublisher
	logger      logrus.FieldLogger
}

func NewCatalogService(serviceRepo serviceRepository, planRepo planRepository, publisher eventPublisher) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		planRepo:    planRepo,
		publisher:   publisher,
		logger:      factory.NewModuleLogger("catalog-service"),
	}
}

func (s *CatalogService) CreateService(ctx context.Context, req createServiceRequest) (*entity.Service, error) {
	now := time.Now().UTC()
	item := &entity.Service{
		Name:      strings.TrimSpace(req.GetName()),
		FullPrice: req.GetFullPrice(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validateService(item); err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrServiceAlreadyExists) {
			return nil, ErrServiceAlreadyExists
		}
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) GetService(ctx context.Context, id uint64) (*entity.Service, error) {
	item, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrServiceNotFound
	}
	return item, nil
}

func (s *CatalogService) ListServices(ctx context.Context) ([]*entity.Service, error) {
	return s.serviceRepo.List(ctx)
}

func (s *CatalogService) UpdateService(ctx context.Context, req updateServiceRequest) (*entity.Service, error) {
	if !req.GetHasName() && !req.GetHasFullPrice() {
		return nil, ErrNoFieldsToUpdate
	}

	before, err := s.GetService(ctx, req.GetId())
	if err != nil {
		return nil, err
	}

	after := *before
	if req.GetHasName() {
		after.Name = strings.TrimSpace(req.GetName())
	}
	if req.GetHasFullPrice() {
		after.FullPrice = req.GetFullPrice()
	}
	if err := validateService(&after); err != nil {
		return nil, err
	}

	after.UpdatedAt = time.Now().UTC()
	if err := s.serviceRepo.Update(ctx, &after); err != nil {
		switch {
		case errors.Is(err, repository.ErrServiceNotFound):
			return nil, ErrServiceNotFound
		case errors.Is(err, repository.ErrServiceAlreadyExists):
			return nil, ErrServiceAlreadyExists
		default:
			return nil, err
		}
	}

	if pricing.ServicePricingChanged(before, &after) {
		publish(ctx, s.publisher, s.logger, events.NewServicePriceChanged(after.ID))
	}
	return &after, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id uint64) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrServiceNotFound):
			return ErrServiceNotFound
		case errors.Is(err, repository.ErrReferenced):
			return ErrServiceInUse
		default:
			return err
		}
	}
	return nil
}

func (s *CatalogService) CreatePlan(ctx context.Context, req createPlanRequest) (*entity.Plan, error) {
	now := time.Now().UTC()
	item := &entity.Plan{
		PlanType:        normalizePlanType(req.GetPlanType()),
		DiscountPercent: req.GetDiscountPercent(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := validatePlan(item); err != nil {
		return nil, err
	}

	if err := s.planRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) GetPlan(ctx context.Context, id uint64) (*entity.Plan, error) {
	item, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrPlanNotFound
	}
	return item, nil
}

func (s *CatalogService) ListPlans(ctx context.Context, planType string) ([]*entity.Plan, error) {
	planType = normalizePlanType(planType)
	if planType != "" && !isPlanTypeAllowed(planType) {
		return nil, ErrInvalidPlanType
	}
	return s.planRepo.List(ctx, planType)
}

func (s *CatalogService) UpdatePlan(ctx context.Context, req updatePlanRequest) (*entity.Plan, error) {
	if !req.GetHasPlanType() && !req.GetHasDiscountPercent() {
		return nil, ErrNoFieldsToUpdate
	}

	before, err := s.GetPlan(ctx, req.GetId())
	if err != nil {
		return nil, err
	}

	after := *before
	if req.GetHasPlanType() {
		after.PlanType = normalizePlanType(req.GetPlanType())
	}
	if req.GetHasDiscountPercent() {
		after.DiscountPercent = req.GetDiscountPercent()
	}
	if err := validatePlan(&after); err != nil {
		return nil, err
	}

	after.UpdatedAt = time.Now().UTC()
	if err := s.planRepo.Update(ctx, &after); err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if pricing.PlanPricingChanged(before, &after) {
		publish(ctx, s.publisher, s.logger, events.NewPlanDiscountChanged(after.ID))
	}
	return &after, nil
}

func (s *CatalogService) DeletePlan(ctx context.Context, id uint64) error {
	if err := s.planRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrPlanNotFound):
			return ErrPlanNotFound
		case errors.Is(err, repository.ErrReferenced):
			return ErrPlanInUse
		default:
			return err
		}
	}
	return nil
}

func validateService(item *entity.Service) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	if utf8.RuneCountInString(item.Name) > entity.MaxServiceNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidRequest, entity.MaxServiceNameLength)
	}
	if item.FullPrice < 0 || item.FullPrice > entity.MaxFullPrice {
		return fmt.Errorf("%w: must be between 0 and %d", ErrInvalidPrice, entity.MaxFullPrice)
	}
	return nil
}

func validatePlan(item *entity.Plan) error {
	if !isPlanTypeAllowed(item.PlanType) {
		return fmt.Errorf("%w: %q", ErrInvalidPlanType, item.PlanType)
	}
	if item.DiscountPercent < 0 || item.DiscountPercent > entity.MaxDiscountPercent {
		return fmt.Errorf("%w: must be between 0 and %d", ErrInvalidDiscount, entity.MaxDiscountPercent)
	}
	return nil
}

func normalizePlanType(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isPlanTypeAllowed(planType string) bool {
	switch planType {
	case entity.PlanTypeFull, entity.PlanTypeStudents, entity.PlanTypeDiscount:
		return true
	default:
		return false
	}
}

// publish is used after a row has been committed. A failure cannot undo the
// write, so it is logged and the recompute sweep repairs what was missed.
func publish(ctx context.Context, publisher eventPublisher, logger logrus.FieldLogger, event events.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"event":        string(event.Type),
			"aggregate_id": event.AggregateID,
		}).Error("Publish event failed")
	}
}
