package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-services/app/factory"
	"github.com/vibast-solutions/ms-go-services/app/mapper"
	"github.com/vibast-solutions/ms-go-services/app/service"
	"github.com/vibast-solutions/ms-go-services/app/types"
)

type SubscriptionController struct {
	subscriptionService *service.SubscriptionService
	logger              logrus.FieldLogger
}

func NewSubscriptionController(subscriptionService *service.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
		logger:              factory.NewModuleLogger("subscriptions-controller"),
	}
}

func (c *SubscriptionController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *SubscriptionController) CreateSubscription(ctx echo.Context) error {
	req, err := types.NewCreateSubscriptionRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.subscriptionService.CreateSubscription(ctx.Request().Context(), req)
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "Create subscription")
	}

	return ctx.JSON(http.StatusCreated, &types.SubscriptionResponse{Subscription: mapper.SubscriptionToMessage(item)})
}

func (c *SubscriptionController) ListSubscriptions(ctx echo.Context) error {
	req, err := types.NewListSubscriptionsRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid query params")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.subscriptionService.ListSubscriptions(ctx.Request().Context(), req)
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "List subscriptions")
	}

	return ctx.JSON(http.StatusOK, &types.ListSubscriptionsResponse{Subscriptions: mapper.SubscriptionsToMessages(items)})
}

func (c *SubscriptionController) GetSubscription(ctx echo.Context) error {
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.subscriptionService.GetSubscription(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "Get subscription")
	}

	return ctx.JSON(http.StatusOK, &types.SubscriptionResponse{Subscription: mapper.SubscriptionToMessage(item)})
}

func (c *SubscriptionController) DeleteSubscription(ctx echo.Context) error {
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if err := c.subscriptionService.DeleteSubscription(ctx.Request().Context(), req.GetId()); err != nil {
		return writeServiceError(ctx, c.logger, err, "Delete subscription")
	}

	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "Subscription deleted successfully"})
}

func (c *SubscriptionController) TotalSum(ctx echo.Context) error {
	total, err := c.subscriptionService.TotalSum(ctx.Request().Context())
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "Total sum")
	}

	return ctx.JSON(http.StatusOK, &types.TotalSumResponse{TotalSum: total})
}

func (c *SubscriptionController) RecomputeSubscription(ctx echo.Context) error {
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if err := c.subscriptionService.RequestRecompute(ctx.Request().Context(), req.GetId()); err != nil {
		return writeServiceError(ctx, c.logger, err, "Recompute subscription")
	}

	return ctx.JSON(http.StatusAccepted, &types.MessageResponse{Message: "Recompute scheduled"})
}
