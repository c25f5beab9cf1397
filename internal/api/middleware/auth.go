package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/softsolution/lending-api/internal/api/metrics"
	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

// userKey is the echo context key holding the authenticated *domain.User.
const userKey = "user"

type userCtxKey struct{}

// RequireAuthenticated verifies the bearer token, resolves the identity it
// names and attaches the public user to the request. Rejections are
// *domain.AuthError.
func RequireAuthenticated(verifier ports.TokenVerifier, users ports.UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return reject(&domain.AuthError{Kind: domain.AuthMissingToken})
			}

			id, err := verifier.Verify(raw)
			if err != nil {
				ae := &domain.AuthError{Kind: domain.AuthInvalidToken, Reason: domain.TokenMalformed}
				var te *domain.TokenError
				if errors.As(err, &te) {
					ae.Reason = te.Reason
				}
				return reject(ae)
			}

			user, err := users.FindByID(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return reject(&domain.AuthError{Kind: domain.AuthIdentityNotFound})
				}
				return fmt.Errorf("resolve identity: %w", err)
			}

			SetUser(c, user.Public())
			return next(c)
		}
	}
}

// SetUser attaches u to both the echo context and the request context.
func SetUser(c echo.Context, u *domain.User) {
	c.Set(userKey, u)
	req := c.Request()
	c.SetRequest(req.WithContext(WithUser(req.Context(), u)))
}

// CurrentUser returns the identity attached by RequireAuthenticated.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(userKey).(*domain.User)
	return u, ok && u != nil
}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the identity stored by WithUser.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(*domain.User)
	return u, ok && u != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func reject(err *domain.AuthError) error {
	metrics.AuthRejectionsTotal.WithLabelValues(string(err.Kind), string(err.Reason)).Inc()
	return err
}
