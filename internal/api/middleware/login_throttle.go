package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/softsolution/lending-api/internal/api/metrics"
	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

const maxLoginBody = 64 << 10

// LoginThrottle limits login attempts per client IP and email. The request
// body is restored for the handler. Limiter errors let the request through;
// a successful login clears the counter.
func LoginThrottle(limiter ports.LoginLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			body, err := io.ReadAll(io.LimitReader(req.Body, maxLoginBody))
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			var peek struct {
				Email string `json:"email"`
			}
			_ = json.Unmarshal(body, &peek)
			key := c.RealIP() + ":" + domain.NormalizeEmail(peek.Email)

			ctx := req.Context()
			log := zerolog.Ctx(ctx)
			allowed, err := limiter.Hit(ctx, key)
			if err != nil {
				log.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
				return next(c)
			}
			if !allowed {
				metrics.LoginsTotal.WithLabelValues("throttled").Inc()
				return domain.ErrTooManyAttempts
			}

			if err := next(c); err != nil {
				return err
			}
			if c.Response().Status == http.StatusOK && strings.TrimSpace(peek.Email) != "" {
				if err := limiter.Reset(ctx, key); err != nil {
					log.Warn().Err(err).Msg("failed to reset login attempts")
				}
			}
			return nil
		}
	}
}
