package controller

import (
	"context"
	"time"

	"github.com/vibast-solutions/ms-go-services/app/entity"
	"github.com/vibast-solutions/ms-go-services/app/events"
	"github.com/vibast-solutions/ms-go-services/app/repository"
)

type controllerServiceRepo struct {
	createFn   func(ctx context.Context, service *entity.Service) error
	updateFn   func(ctx context.Context, service *entity.Service) error
	findByIDFn func(ctx context.Context, id uint64) (*entity.Service, error)
	listFn     func(ctx context.Context) ([]*entity.Service, error)
	deleteFn   func(ctx context.Context, id uint64) error
}

func (r *controllerServiceRepo) Create(ctx context.Context, service *entity.Service) error {
	if r.createFn != nil {
		return r.createFn(ctx, service)
	}
	return nil
}

func (r *controllerServiceRepo) Update(ctx context.Context, service *entity.Service) error {
	if r.updateFn != nil {
		return r.updateFn(ctx, service)
	}
	return nil
}

func (r *controllerServiceRepo) FindByID(ctx context.Context, id uint64) (*entity.Service, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (r *controllerServiceRepo) List(ctx context.Context) ([]*entity.Service, error) {
	if r.listFn != nil {
		return r.listFn(ctx)
	}
	return nil, nil
}

func (r *controllerServiceRepo) Delete(ctx context.Context, id uint64) error {
	if r.deleteFn != nil {
		return r.deleteFn(ctx, id)
	}
	return nil
}

type controllerPlanRepo struct {
	findByIDFn func(ctx context.Context, id uint64) (*entity.Plan, error)
	deleteFn   func(ctx context.Context, id uint64) error
}

func (r *controllerPlanRepo) Create(_ context.Context, plan *entity.Plan) error {
	plan.ID = 1
	return nil
}

func (r *controllerPlanRepo) Update(context.Context, *entity.Plan) error {
	return nil
}

func (r *controllerPlanRepo) FindByID(ctx context.Context, id uint64) (*entity.Plan, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (r *controllerPlanRepo) List(context.Context, string) ([]*entity.Plan, error) {
	return []*entity.Plan{}, nil
}

func (r *controllerPlanRepo) Delete(ctx context.Context, id uint64) error {
	if r.deleteFn != nil {
		return r.deleteFn(ctx, id)
	}
	return nil
}

type controllerClientRepo struct {
	findByIDFn func(ctx context.Context, id uint64) (*entity.Client, error)
	deleteFn   func(ctx context.Context, id uint64) error
}

func (r *controllerClientRepo) Create(_ context.Context, client *entity.Client) error {
	client.ID = 1
	return nil
}

func (r *controllerClientRepo) FindByID(ctx context.Context, id uint64) (*entity.Client, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (r *controllerClientRepo) List(context.Context) ([]*entity.Client, error) {
	return nil, nil
}

func (r *controllerClientRepo) Delete(ctx context.Context, id uint64) error {
	if r.deleteFn != nil {
		return r.deleteFn(ctx, id)
	}
	return nil
}

type controllerSubRepo struct {
	createFn    func(ctx context.Context, subscription *entity.Subscription) error
	findByIDFn  func(ctx context.Context, id uint64) (*entity.Subscription, error)
	deleteFn    func(ctx context.Context, id uint64) error
	sumPricesFn func(ctx context.Context) (int64, error)
}

func (r *controllerSubRepo) Create(ctx context.Context, subscription *entity.Subscription) error {
	if r.createFn != nil {
		return r.createFn(ctx, subscription)
	}
	return nil
}

func (r *controllerSubRepo) FindByID(ctx context.Context, id uint64) (*entity.Subscription, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (r *controllerSubRepo) List(context.Context, repository.SubscriptionFilter) ([]*entity.Subscription, error) {
	return nil, nil
}

func (r *controllerSubRepo) Delete(ctx context.Context, id uint64) error {
	if r.deleteFn != nil {
		return r.deleteFn(ctx, id)
	}
	return nil
}

func (r *controllerSubRepo) SumPrices(ctx context.Context) (int64, error) {
	if r.sumPricesFn != nil {
		return r.sumPricesFn(ctx)
	}
	return 0, nil
}

type capturePublisher struct {
	published []events.Event
}

func (p *capturePublisher) Publish(_ context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

type noopCache struct{}

func (noopCache) GetInt64(context.Context, string) (int64, bool, error) {
	return 0, false, nil
}

func (noopCache) SetInt64(context.Context, string, int64, time.Duration) error {
	return nil
}

func (noopCache) Invalidate(context.Context, string) error {
	return nil
}
