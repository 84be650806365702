package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vibast-solutions/ms-go-services/app/entity"
	"github.com/vibast-solutions/ms-go-services/app/events"
	"github.com/vibast-solutions/ms-go-services/app/repository"
)

type submission struct {
	name           string
	subscriptionID uint64
}

type recordingEnqueuer struct {
	mu       sync.Mutex
	jobs     []submission
	submitFn func(ctx context.Context, name string, subscriptionID uint64) error
}

func (e *recordingEnqueuer) Submit(ctx context.Context, name string, subscriptionID uint64) error {
	if e.submitFn != nil {
		if err := e.submitFn(ctx, name, subscriptionID); err != nil {
			return err
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.jobs = append(e.jobs, submission{name: name, subscriptionID: subscriptionID})
	return nil
}

func (e *recordingEnqueuer) count(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, job := range e.jobs {
		if job.name == name {
			n++
		}
	}
	return n
}

func (e *recordingEnqueuer) drain() []submission {
	e.mu.Lock()
	defer e.mu.Unlock()
	jobs := e.jobs
	e.jobs = nil
	return jobs
}

type recordingInvalidator struct {
	keys []string
	err  error
}

func (i *recordingInvalidator) Invalidate(_ context.Context, key string) error {
	i.keys = append(i.keys, key)
	return i.err
}

type fakeStore struct {
	values map[string]int64
	getErr error
	setErr error
	sets   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[string]int64)}
}

func (s *fakeStore) GetInt64(_ context.Context, key string) (int64, bool, error) {
	if s.getErr != nil {
		return 0, false, s.getErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *fakeStore) SetInt64(_ context.Context, key string, value int64, _ time.Duration) error {
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *fakeStore) Invalidate(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

type recordingPublisher struct {
	published []events.Event
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return p.err
}

// memDB is an in-memory stand-in for the MySQL tables, shared by the typed
// repositories below so scenario tests can run the whole pipeline.
type memDB struct {
	mu            sync.Mutex
	nextID        uint64
	services      map[uint64]*entity.Service
	plans         map[uint64]*entity.Plan
	clients       map[uint64]*entity.Client
	subscriptions map[uint64]*entity.Subscription
}

func newMemDB() *memDB {
	return &memDB{
		services:      make(map[uint64]*entity.Service),
		plans:         make(map[uint64]*entity.Plan),
		clients:       make(map[uint64]*entity.Client),
		subscriptions: make(map[uint64]*entity.Subscription),
	}
}

func (db *memDB) id() uint64 {
	db.nextID++
	return db.nextID
}

type memServices struct{ db *memDB }

func (r memServices) Create(_ context.Context, item *entity.Service) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	item.ID = r.db.id()
	cp := *item
	r.db.services[item.ID] = &cp
	return nil
}

func (r memServices) Update(_ context.Context, item *entity.Service) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.services[item.ID]; !ok {
		return repository.ErrServiceNotFound
	}
	cp := *item
	r.db.services[item.ID] = &cp
	return nil
}

func (r memServices) FindByID(_ context.Context, id uint64) (*entity.Service, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	item, ok := r.db.services[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r memServices) List(context.Context) ([]*entity.Service, error) {
	return nil, nil
}

func (r memServices) Delete(_ context.Context, id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range r.db.subscriptions {
		if s.ServiceID == id {
			return repository.ErrReferenced
		}
	}
	if _, ok := r.db.services[id]; !ok {
		return repository.ErrServiceNotFound
	}
	delete(r.db.services, id)
	return nil
}

type memPlans struct{ db *memDB }

func (r memPlans) Create(_ context.Context, item *entity.Plan) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	item.ID = r.db.id()
	cp := *item
	r.db.plans[item.ID] = &cp
	return nil
}

func (r memPlans) Update(_ context.Context, item *entity.Plan) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.plans[item.ID]; !ok {
		return repository.ErrPlanNotFound
	}
	cp := *item
	r.db.plans[item.ID] = &cp
	return nil
}

func (r memPlans) FindByID(_ context.Context, id uint64) (*entity.Plan, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	item, ok := r.db.plans[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r memPlans) List(context.Context, string) ([]*entity.Plan, error) {
	return nil, nil
}

func (r memPlans) Delete(_ context.Context, id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.plans[id]; !ok {
		return repository.ErrPlanNotFound
	}
	delete(r.db.plans, id)
	return nil
}

type memClients struct{ db *memDB }

func (r memClients) FindByID(_ context.Context, id uint64) (*entity.Client, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	item, ok := r.db.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r memClients) add(name string) *entity.Client {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	item := &entity.Client{ID: r.db.id(), CompanyName: name}
	r.db.clients[item.ID] = item
	return item
}

type memSubscriptions struct{ db *memDB }

func (r memSubscriptions) Create(_ context.Context, item *entity.Subscription) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	item.ID = r.db.id()
	cp := *item
	r.db.subscriptions[item.ID] = &cp
	return nil
}

func (r memSubscriptions) FindByID(_ context.Context, id uint64) (*entity.Subscription, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	item, ok := r.db.subscriptions[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r memSubscriptions) List(context.Context, repository.SubscriptionFilter) ([]*entity.Subscription, error) {
	return nil, nil
}

func (r memSubscriptions) Delete(_ context.Context, id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.subscriptions[id]; !ok {
		return repository.ErrSubscriptionNotFound
	}
	delete(r.db.subscriptions, id)
	return nil
}

func (r memSubscriptions) SumPrices(context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var total int64
	for _, s := range r.db.subscriptions {
		total += s.Price
	}
	return total, nil
}

func (r memSubscriptions) ListIDsByServiceID(_ context.Context, serviceID uint64) ([]uint64, error) {
	return r.ids(func(s *entity.Subscription) bool { return s.ServiceID == serviceID }), nil
}

func (r memSubscriptions) ListIDsByPlanID(_ context.Context, planID uint64) ([]uint64, error) {
	return r.ids(func(s *entity.Subscription) bool { return s.PlanID == planID }), nil
}

func (r memSubscriptions) ListIDs(context.Context) ([]uint64, error) {
	return r.ids(func(*entity.Subscription) bool { return true }), nil
}

func (r memSubscriptions) FindPricingInput(_ context.Context, id uint64) (*entity.PricingInput, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.subscriptions[id]
	if !ok {
		return nil, nil
	}
	svc := r.db.services[s.ServiceID]
	plan := r.db.plans[s.PlanID]
	return &entity.PricingInput{
		SubscriptionID:  s.ID,
		ServiceName:     svc.Name,
		FullPrice:       svc.FullPrice,
		PlanType:        plan.PlanType,
		DiscountPercent: plan.DiscountPercent,
	}, nil
}

func (r memSubscriptions) UpdatePrice(_ context.Context, id uint64, price int64, updatedAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.subscriptions[id]
	if !ok {
		return repository.ErrSubscriptionNotFound
	}
	s.Price = price
	s.UpdatedAt = updatedAt
	return nil
}

func (r memSubscriptions) UpdateComment(_ context.Context, id uint64, comment string, updatedAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.subscriptions[id]
	if !ok {
		return repository.ErrSubscriptionNotFound
	}
	s.Comment = comment
	s.UpdatedAt = updatedAt
	return nil
}

func (r memSubscriptions) ids(match func(*entity.Subscription) bool) []uint64 {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ids := make([]uint64, 0)
	for id, s := range r.db.subscriptions {
		if match(s) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
