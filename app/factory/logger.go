package factory

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func NewModuleLogger(module string) logrus.FieldLogger {
	return logrus.WithField("module", module)
}

// LoggerWithContext tags logger with the request id. A generated id only
// exists on the response header.
func LoggerWithContext(logger logrus.FieldLogger, ctx echo.Context) logrus.FieldLogger {
	requestID := ctx.Request().Header.Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = ctx.Response().Header().Get(echo.HeaderXRequestID)
	}
	return logger.WithField("request_id", requestID)
}
