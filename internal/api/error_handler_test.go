package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/softsolution/lending-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", domain.NewValidationError("email is required", "email is required", "phone is required"), http.StatusBadRequest, "email is required"},
		{"conflict", domain.NewConflictError("User already exists with this email or phone number", domain.ErrUserExists), http.StatusBadRequest, "User already exists with this email or phone number"},
		{"missing token", &domain.AuthError{Kind: domain.AuthMissingToken}, http.StatusUnauthorized, "Not authorized, no token"},
		{"expired token", &domain.AuthError{Kind: domain.AuthInvalidToken, Reason: domain.TokenExpired}, http.StatusUnauthorized, "Not authorized, token expired"},
		{"invalid credentials", &domain.AuthError{Kind: domain.AuthInvalidCredentials}, http.StatusUnauthorized, "Invalid credentials"},
		{"forbidden", &domain.AuthzError{Required: []domain.Role{domain.RoleAdmin}, Actual: domain.RoleCustomer}, http.StatusForbidden, "User role customer is not authorized to access this route (requires admin)"},
		{"not found", domain.ErrLoanUnavailable, http.StatusNotFound, "Loan is not available"},
		{"wrapped not found", fmt.Errorf("get: %w", domain.ErrApplicationNotFound), http.StatusNotFound, "Application not found"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts, please try again later"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.New(&logs))(tt.err, c)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["success"] != false || body["message"] != tt.msg {
				t.Fatalf("unexpected body: %v", body)
			}
			if tt.code == http.StatusInternalServerError {
				if logs.Len() == 0 {
					t.Fatal("unexpected errors must be logged")
				}
				if bytes.Contains(rec.Body.Bytes(), []byte("connection reset")) {
					t.Fatal("internal details leaked to the client")
				}
			} else if logs.Len() != 0 {
				t.Fatalf("expected no log output, got %s", logs.String())
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/register", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(domain.NewValidationError("email is required", "email is required", "phone is required"), c)

	var body struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %v", body.Errors)
	}
}
