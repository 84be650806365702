package grpc

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-services/app/mapper"
	"github.com/vibast-solutions/ms-go-services/app/service"
	"github.com/vibast-solutions/ms-go-services/app/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Server struct {
	catalogService      *service.CatalogService
	subscriptionService *service.SubscriptionService
}

func NewServer(catalogService *service.CatalogService, subscriptionService *service.SubscriptionService) *Server {
	return &Server{
		catalogService:      catalogService,
		subscriptionService: subscriptionService,
	}
}

func (s *Server) GetService(ctx context.Context, req *types.IDRequest) (*types.ServiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, err := s.catalogService.GetService(ctx, req.GetId())
	if err != nil {
		return nil, toStatusError(loggerWithContext(ctx), err, "Get service")
	}
	return &types.ServiceResponse{Service: mapper.ServiceToMessage(item)}, nil
}

func (s *Server) GetPlan(ctx context.Context, req *types.IDRequest) (*types.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, err := s.catalogService.GetPlan(ctx, req.GetId())
	if err != nil {
		return nil, toStatusError(loggerWithContext(ctx), err, "Get plan")
	}
	return &types.PlanResponse{Plan: mapper.PlanToMessage(item)}, nil
}

func (s *Server) GetSubscription(ctx context.Context, req *types.IDRequest) (*types.SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, err := s.subscriptionService.GetSubscription(ctx, req.GetId())
	if err != nil {
		return nil, toStatusError(loggerWithContext(ctx), err, "Get subscription")
	}
	return &types.SubscriptionResponse{Subscription: mapper.SubscriptionToMessage(item)}, nil
}

func (s *Server) ListSubscriptions(ctx context.Context, req *types.ListSubscriptionsRequest) (*types.ListSubscriptionsResponse, error) {
	items, err := s.subscriptionService.ListSubscriptions(ctx, req)
	if err != nil {
		return nil, toStatusError(loggerWithContext(ctx), err, "List subscriptions")
	}
	return &types.ListSubscriptionsResponse{Subscriptions: mapper.SubscriptionsToMessages(items)}, nil
}

func (s *Server) GetTotalSum(ctx context.Context, _ *types.TotalSumRequest) (*types.TotalSumResponse, error) {
	total, err := s.subscriptionService.TotalSum(ctx)
	if err != nil {
		return nil, toStatusError(loggerWithContext(ctx), err, "Total sum")
	}
	return &types.TotalSumResponse{TotalSum: total}, nil
}

func (s *Server) RecomputeSubscription(ctx context.Context, req *types.IDRequest) (*types.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := s.subscriptionService.RequestRecompute(ctx, req.GetId()); err != nil {
		return nil, toStatusError(loggerWithContext(ctx), err, "Recompute subscription")
	}
	return &types.MessageResponse{Message: "Recompute scheduled"}, nil
}

func toStatusError(l logrus.FieldLogger, err error, action string) error {
	switch {
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidDiscount),
		errors.Is(err, service.ErrInvalidPlanType),
		errors.Is(err, service.ErrNoFieldsToUpdate):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrServiceNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrSubscriptionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrServiceInUse),
		errors.Is(err, service.ErrPlanInUse),
		errors.Is(err, service.ErrClientInUse):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, service.ErrServiceAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	default:
		l.WithError(err).Error(action + " failed")
		return status.Error(codes.Internal, "internal server error")
	}
}
