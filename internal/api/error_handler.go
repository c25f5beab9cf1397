package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/softsolution/lending-api/internal/api/handler"
	"github.com/softsolution/lending-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "message": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	var (
		he  *echo.HTTPError
		ve  *domain.ValidationError
		ce  *domain.ConflictError
		ae  *domain.AuthError
		ze  *domain.AuthzError
		nfe *domain.NotFoundError
	)

	switch {
	// Echo's own errors (bind failures, 404 from router, rate limiter, etc.)
	case errors.As(err, &he):
		return he.Code, failure(fmt.Sprintf("%v", he.Message))
	case errors.As(err, &ve):
		return http.StatusBadRequest, handler.ErrorResponse{Message: ve.Message, Errors: ve.Details}
	case errors.As(err, &ce):
		return http.StatusBadRequest, failure(ce.Message)
	case errors.As(err, &ae):
		return http.StatusUnauthorized, failure(ae.Error())
	case errors.As(err, &ze):
		return http.StatusForbidden, failure(ze.Error())
	case errors.As(err, &nfe):
		return http.StatusNotFound, failure(nfe.Error())
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, failure("Too many login attempts, please try again later")
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, failure("Internal server error")
}

func failure(msg string) handler.ErrorResponse {
	return handler.ErrorResponse{Message: msg}
}
