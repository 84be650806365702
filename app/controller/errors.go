package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-services/app/factory"
	"github.com/vibast-solutions/ms-go-services/app/service"
	"github.com/vibast-solutions/ms-go-services/app/types"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidDiscount),
		errors.Is(err, service.ErrInvalidPlanType),
		errors.Is(err, service.ErrNoFieldsToUpdate):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrServiceNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrSubscriptionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrServiceInUse),
		errors.Is(err, service.ErrPlanInUse),
		errors.Is(err, service.ErrClientInUse),
		errors.Is(err, service.ErrServiceAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError maps a service error to its status code. Only unexpected
// errors are logged; their message is not exposed to the caller.
func writeServiceError(ctx echo.Context, logger logrus.FieldLogger, err error, action string) error {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		factory.LoggerWithContext(logger, ctx).WithError(err).Error(action + " failed")
		return writeError(ctx, status, "internal server error")
	}
	return writeError(ctx, status, err.Error())
}

func writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
