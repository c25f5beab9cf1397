package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/softsolution/lending-api/internal/api/middleware"
	"github.com/softsolution/lending-api/internal/core/domain"
)

// currentUser returns the identity attached by the identity middleware. Its
// absence means the route was mounted without it.
func currentUser(c echo.Context) (*domain.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, &domain.AuthError{Kind: domain.AuthMissingToken}
	}
	return u, nil
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("Invalid request payload")
	}
	return c.Validate(req)
}

// pageRequest reads the page and limit query parameters.
func pageRequest(c echo.Context) (domain.PageRequest, error) {
	var p domain.PageRequest
	err := echo.QueryParamsBinder(c).
		Int("page", &p.Page).
		Int("limit", &p.Limit).
		BindError()
	if err != nil {
		return p, echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}
	return p.Normalize(), nil
}
