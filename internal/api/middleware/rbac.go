package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/softsolution/lending-api/internal/api/metrics"
	"github.com/softsolution/lending-api/internal/core/domain"
)

// RequireRole permits the request only when the authenticated identity holds
// one of roles. It must be mounted after RequireAuthenticated.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				zerolog.Ctx(c.Request().Context()).Error().
					Str("method", c.Request().Method).
					Str("route", c.Path()).
					Msg("role gate reached without an authenticated identity")
				return &domain.AuthError{Kind: domain.AuthMissingToken}
			}

			if _, ok := allowed[user.Role]; !ok {
				metrics.AuthzDenialsTotal.WithLabelValues(string(user.Role)).Inc()
				return &domain.AuthzError{Required: roles, Actual: user.Role}
			}
			return next(c)
		}
	}
}
