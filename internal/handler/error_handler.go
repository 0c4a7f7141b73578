package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "portfolio/internal/errors"
)

// ErrorHandler renders every error returned by a handler or middleware.
// Application errors are mapped by kind; echo's own errors keep their status.
// Server-side failures are logged with their cause and answered with the
// generic message only.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.Error(err),
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Warn("write error response", zap.Error(writeErr))
		}
	}
}

func render(err error) (int, apperrors.ErrorResponse) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		httpErr := apperrors.MapErrorToHTTP(appErr)
		return httpErr.StatusCode, httpErr.ToErrorResponse()
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, apperrors.ErrorResponse{Error: "Internal server error", Code: "INTERNAL_ERROR"}
		}
		msg, ok := he.Message.(string)
		if !ok {
			msg = fmt.Sprint(he.Message)
		}
		return he.Code, apperrors.ErrorResponse{Error: msg, Code: statusCode(he.Code)}
	}

	httpErr := apperrors.MapErrorToHTTP(err)
	return httpErr.StatusCode, httpErr.ToErrorResponse()
}

// statusCode turns 404 into NOT_FOUND.
func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
