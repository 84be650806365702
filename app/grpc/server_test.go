package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibast-solutions/ms-go-services/app/entity"
	"github.com/vibast-solutions/ms-go-services/app/events"
	"github.com/vibast-solutions/ms-go-services/app/repository"
	"github.com/vibast-solutions/ms-go-services/app/service"
	"github.com/vibast-solutions/ms-go-services/app/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type stubServiceRepo struct {
	items map[uint64]*entity.Service
}

func (r *stubServiceRepo) Create(context.Context, *entity.Service) error { return nil }
func (r *stubServiceRepo) Update(context.Context, *entity.Service) error { return nil }
func (r *stubServiceRepo) Delete(context.Context, uint64) error          { return nil }

func (r *stubServiceRepo) FindByID(_ context.Context, id uint64) (*entity.Service, error) {
	return r.items[id], nil
}

func (r *stubServiceRepo) List(context.Context) ([]*entity.Service, error) {
	return nil, nil
}

type stubPlanRepo struct {
	items map[uint64]*entity.Plan
}

func (r *stubPlanRepo) Create(context.Context, *entity.Plan) error { return nil }
func (r *stubPlanRepo) Update(context.Context, *entity.Plan) error { return nil }
func (r *stubPlanRepo) Delete(context.Context, uint64) error       { return nil }

func (r *stubPlanRepo) FindByID(_ context.Context, id uint64) (*entity.Plan, error) {
	return r.items[id], nil
}

func (r *stubPlanRepo) List(context.Context, string) ([]*entity.Plan, error) {
	return nil, nil
}

type stubClientRepo struct{}

func (stubClientRepo) FindByID(_ context.Context, id uint64) (*entity.Client, error) {
	return &entity.Client{ID: id, CompanyName: "Acme"}, nil
}

type stubSubscriptionRepo struct {
	items  map[uint64]*entity.Subscription
	sumErr error
}

func (r *stubSubscriptionRepo) Create(context.Context, *entity.Subscription) error { return nil }
func (r *stubSubscriptionRepo) Delete(context.Context, uint64) error               { return nil }

func (r *stubSubscriptionRepo) FindByID(_ context.Context, id uint64) (*entity.Subscription, error) {
	return r.items[id], nil
}

func (r *stubSubscriptionRepo) List(_ context.Context, filter repository.SubscriptionFilter) ([]*entity.Subscription, error) {
	out := make([]*entity.Subscription, 0)
	for _, item := range r.items {
		if filter.ClientID != 0 && item.ClientID != filter.ClientID {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *stubSubscriptionRepo) SumPrices(context.Context) (int64, error) {
	if r.sumErr != nil {
		return 0, r.sumErr
	}
	var total int64
	for _, item := range r.items {
		total += item.Price
	}
	return total, nil
}

type stubPublisher struct {
	published []events.Event
	err       error
}

func (p *stubPublisher) Publish(_ context.Context, event events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

type noCache struct{}

func (noCache) GetInt64(context.Context, string) (int64, bool, error) { return 0, false, nil }
func (noCache) SetInt64(context.Context, string, int64, time.Duration) error {
	return nil
}
func (noCache) Invalidate(context.Context, string) error { return nil }

type testEnv struct {
	client    *BillingServiceClient
	subs      *stubSubscriptionRepo
	publisher *stubPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	services := &stubServiceRepo{items: map[uint64]*entity.Service{
		1: {ID: 1, Name: "Gym", FullPrice: 100},
	}}
	plans := &stubPlanRepo{items: map[uint64]*entity.Plan{
		2: {ID: 2, PlanType: entity.PlanTypeDiscount, DiscountPercent: 20},
	}}
	subs := &stubSubscriptionRepo{items: map[uint64]*entity.Subscription{
		7: {ID: 7, ClientID: 3, ServiceID: 1, PlanID: 2, Price: 80, Comment: "Gym, discount plan (-20%): 80"},
		8: {ID: 8, ClientID: 4, ServiceID: 1, PlanID: 2, Price: 80, Comment: "Gym, discount plan (-20%): 80"},
	}}
	publisher := &stubPublisher{}

	catalog := service.NewCatalogService(services, plans, publisher)
	subscriptions := service.NewSubscriptionService(subs, services, plans, stubClientRepo{}, noCache{}, publisher, time.Minute)

	listener := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(RecoveryInterceptor(), RequestIDInterceptor(), LoggingInterceptor()))
	RegisterBillingServiceServer(srv, NewServer(catalog, subscriptions))
	go func() {
		_ = srv.Serve(listener)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	return &testEnv{client: NewBillingServiceClient(conn), subs: subs, publisher: publisher}
}

func TestGRPCGetService(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.client.GetService(context.Background(), &types.IDRequest{Id: 1})
	require.NoError(t, err)
	require.NotNil(t, resp.Service)
	assert.Equal(t, "Gym", resp.Service.Name)
	assert.Equal(t, int64(100), resp.Service.FullPrice)
}

func TestGRPCGetServiceNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.client.GetService(context.Background(), &types.IDRequest{Id: 99})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestGRPCGetPlan(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.client.GetPlan(context.Background(), &types.IDRequest{Id: 2})
	require.NoError(t, err)
	assert.Equal(t, "discount", resp.Plan.PlanType)
	assert.Equal(t, int32(20), resp.Plan.DiscountPercent)
}

func TestGRPCGetSubscription(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.client.GetSubscription(context.Background(), &types.IDRequest{Id: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(80), resp.Subscription.Price)
	assert.Equal(t, "Gym, discount plan (-20%): 80", resp.Subscription.Comment)
}

func TestGRPCInvalidID(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.client.GetSubscription(context.Background(), &types.IDRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPCListSubscriptionsFiltersByClient(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.client.ListSubscriptions(context.Background(), &types.ListSubscriptionsRequest{ClientId: 4})
	require.NoError(t, err)
	require.Len(t, resp.Subscriptions, 1)
	assert.Equal(t, uint64(8), resp.Subscriptions[0].Id)
}

func TestGRPCGetTotalSum(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.client.GetTotalSum(context.Background(), &types.TotalSumRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(160), resp.TotalSum)
}

func TestGRPCGetTotalSumInternalError(t *testing.T) {
	env := newTestEnv(t)
	env.subs.sumErr = errors.New("db down")

	_, err := env.client.GetTotalSum(context.Background(), &types.TotalSumRequest{})
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Equal(t, "internal server error", status.Convert(err).Message())
}

func TestGRPCRecomputeSubscription(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.client.RecomputeSubscription(context.Background(), &types.IDRequest{Id: 7})
	require.NoError(t, err)
	assert.Equal(t, "Recompute scheduled", resp.Message)
	require.Len(t, env.publisher.published, 1)
	assert.Equal(t, events.SubscriptionRecomputeRequest, env.publisher.published[0].Type)
	assert.Equal(t, uint64(7), env.publisher.published[0].AggregateID)
}

func TestGRPCRecomputeMissingSubscription(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.client.RecomputeSubscription(context.Background(), &types.IDRequest{Id: 42})
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Empty(t, env.publisher.published)
}

func TestToStatusErrorMapping(t *testing.T) {
	l := loggerWithContext(context.Background())
	cases := []struct {
		err  error
		code codes.Code
	}{
		{service.ErrInvalidDiscount, codes.InvalidArgument},
		{service.ErrPlanNotFound, codes.NotFound},
		{service.ErrServiceInUse, codes.FailedPrecondition},
		{service.ErrServiceAlreadyExists, codes.AlreadyExists},
		{errors.New("boom"), codes.Internal},
	}
	for _, tc := range cases {
		if got := status.Code(toStatusError(l, tc.err, "test")); got != tc.code {
			t.Fatalf("%v: expected %v, got %v", tc.err, tc.code, got)
		}
	}
}
