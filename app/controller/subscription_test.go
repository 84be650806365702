package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-services/app/entity"
	"github.com/vibast-solutions/ms-go-services/app/events"
	"github.com/vibast-solutions/ms-go-services/app/repository"
	"github.com/vibast-solutions/ms-go-services/app/service"
	"github.com/vibast-solutions/ms-go-services/app/types"
)

func newSubscriptionEcho(subRepo *controllerSubRepo, clientRepo *controllerClientRepo, publisher *capturePublisher) *echo.Echo {
	svc := service.NewSubscriptionService(
		subRepo,
		&controllerServiceRepo{findByIDFn: func(_ context.Context, id uint64) (*entity.Service, error) {
			return &entity.Service{ID: id, Name: "Gym", FullPrice: 100}, nil
		}},
		&controllerPlanRepo{findByIDFn: func(_ context.Context, id uint64) (*entity.Plan, error) {
			return &entity.Plan{ID: id, PlanType: "discount", DiscountPercent: 20}, nil
		}},
		clientRepo,
		noopCache{},
		publisher,
		time.Minute,
	)
	c := NewSubscriptionController(svc)
	cc := NewClientController(service.NewClientService(clientRepo))

	e := echo.New()
	e.GET("/health", c.Health)
	e.POST("/subscriptions", c.CreateSubscription)
	e.GET("/subscriptions", c.ListSubscriptions)
	e.GET("/subscriptions/total", c.TotalSum)
	e.GET("/subscriptions/:id", c.GetSubscription)
	e.DELETE("/subscriptions/:id", c.DeleteSubscription)
	e.POST("/subscriptions/:id/recompute", c.RecomputeSubscription)
	e.POST("/clients", cc.CreateClient)
	e.GET("/clients/:id", cc.GetClient)
	e.DELETE("/clients/:id", cc.DeleteClient)
	return e
}

func knownClient() *controllerClientRepo {
	return &controllerClientRepo{findByIDFn: func(_ context.Context, id uint64) (*entity.Client, error) {
		return &entity.Client{ID: id, CompanyName: "Acme"}, nil
	}}
}

func TestHealth(t *testing.T) {
	e := newSubscriptionEcho(&controllerSubRepo{}, knownClient(), &capturePublisher{})

	rec := doJSON(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCreateSubscriptionEndpoint(t *testing.T) {
	publisher := &capturePublisher{}
	e := newSubscriptionEcho(&controllerSubRepo{createFn: func(_ context.Context, subscription *entity.Subscription) error {
		subscription.ID = 12
		return nil
	}}, knownClient(), publisher)

	rec := doJSON(e, http.MethodPost, "/subscriptions", `{"client_id":1,"service_id":2,"plan_id":3}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp types.SubscriptionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Subscription.Id != 12 || resp.Subscription.Price != 0 {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
	if len(publisher.published) != 1 || publisher.published[0].Type != events.SubscriptionCreated {
		t.Fatalf("unexpected events: %+v", publisher.published)
	}
}

func TestCreateSubscriptionEndpointUnknownClient(t *testing.T) {
	e := newSubscriptionEcho(&controllerSubRepo{}, &controllerClientRepo{}, &capturePublisher{})

	rec := doJSON(e, http.MethodPost, "/subscriptions", `{"client_id":1,"service_id":2,"plan_id":3}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateSubscriptionEndpointValidation(t *testing.T) {
	e := newSubscriptionEcho(&controllerSubRepo{}, knownClient(), &capturePublisher{})

	if rec := doJSON(e, http.MethodPost, "/subscriptions", `{"client_id":1}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteSubscriptionEndpoint(t *testing.T) {
	publisher := &capturePublisher{}
	e := newSubscriptionEcho(&controllerSubRepo{}, knownClient(), publisher)

	if rec := doJSON(e, http.MethodDelete, "/subscriptions/4", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(publisher.published) != 1 || publisher.published[0].Type != events.SubscriptionDeleted {
		t.Fatalf("unexpected events: %+v", publisher.published)
	}
}

func TestDeleteSubscriptionEndpointNotFound(t *testing.T) {
	e := newSubscriptionEcho(&controllerSubRepo{deleteFn: func(context.Context, uint64) error {
		return repository.ErrSubscriptionNotFound
	}}, knownClient(), &capturePublisher{})

	if rec := doJSON(e, http.MethodDelete, "/subscriptions/4", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTotalSumEndpoint(t *testing.T) {
	e := newSubscriptionEcho(&controllerSubRepo{sumPricesFn: func(context.Context) (int64, error) {
		return 240, nil
	}}, knownClient(), &capturePublisher{})

	rec := doJSON(e, http.MethodGet, "/subscriptions/total", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp types.TotalSumResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.TotalSum != 240 {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRecomputeSubscriptionEndpoint(t *testing.T) {
	publisher := &capturePublisher{}
	e := newSubscriptionEcho(&controllerSubRepo{findByIDFn: func(_ context.Context, id uint64) (*entity.Subscription, error) {
		if id == 4 {
			return &entity.Subscription{ID: 4}, nil
		}
		return nil, nil
	}}, knownClient(), publisher)

	if rec := doJSON(e, http.MethodPost, "/subscriptions/4/recompute", ""); rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(publisher.published) != 1 || publisher.published[0].Type != events.SubscriptionRecomputeRequest {
		t.Fatalf("unexpected events: %+v", publisher.published)
	}
	if rec := doJSON(e, http.MethodPost, "/subscriptions/5/recompute", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestClientEndpoints(t *testing.T) {
	e := newSubscriptionEcho(&controllerSubRepo{}, &controllerClientRepo{deleteFn: func(context.Context, uint64) error {
		return repository.ErrReferenced
	}}, &capturePublisher{})

	if rec := doJSON(e, http.MethodPost, "/clients", `{"company_name":"Acme"}`); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodPost, "/clients", `{"company_name":""}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodGet, "/clients/3", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodDelete, "/clients/3", ""); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
