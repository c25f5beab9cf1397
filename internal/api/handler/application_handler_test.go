package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/softsolution/lending-api/internal/api/middleware"
	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

type stubApplicationService struct {
	ports.ApplicationService
	submittedBy string
	submitted   domain.Application
	status      string
}

func (s *stubApplicationService) Submit(_ context.Context, userID string, app domain.Application) (*domain.Application, error) {
	s.submittedBy, s.submitted = userID, app
	app.ID, app.UserID, app.Status = "a1", userID, domain.ApplicationPending
	return &app, nil
}

func (s *stubApplicationService) UpdateStatus(_ context.Context, id, status string) (*domain.Application, error) {
	if status != string(domain.ApplicationApproved) {
		return nil, domain.NewValidationError("status must be one of: pending, approved, rejected")
	}
	s.status = status
	return &domain.Application{ID: id, Status: domain.ApplicationStatus(status)}, nil
}

func (s *stubApplicationService) Dashboard(context.Context) (*domain.Dashboard, error) {
	return &domain.Dashboard{TotalUsers: 3, TotalLoans: 2, TotalApplications: 5, TotalApproved: 1, TotalPending: 4}, nil
}

const validApplication = `{"loanAmount":250000,"loanType":"Home Loan","tenureYears":10,"monthlyIncome":8000,
"fullName":"Jane Doe","phone":"+15551234567","email":"jane@x.com","dob":"1990-04-12",
"address":{"city":"Springfield","pincode":"12345"}}`

func TestApplicationHandler_Submit(t *testing.T) {
	stub := &stubApplicationService{}
	h := NewApplicationHandler(stub)

	c, rec := newContext(http.MethodPost, "/applications", validApplication)
	middleware.SetUser(c, &domain.User{ID: "u1", Role: domain.RoleCustomer})
	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.submittedBy != "u1" {
		t.Fatalf("application must be owned by the caller, got %q", stub.submittedBy)
	}
	want := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	if !stub.submitted.DOB.Equal(want) || stub.submitted.Address.City != "Springfield" {
		t.Fatalf("unexpected application: %+v", stub.submitted)
	}
	data, _ := decode(t, rec)["data"].(map[string]any)
	if data["status"] != "pending" {
		t.Fatalf("unexpected response data: %v", data)
	}
}

func TestApplicationHandler_Submit_RequiresIdentity(t *testing.T) {
	h := NewApplicationHandler(&stubApplicationService{})
	c, _ := newContext(http.MethodPost, "/applications", validApplication)

	var ae *domain.AuthError
	if err := h.Submit(c); !errors.As(err, &ae) || ae.Kind != domain.AuthMissingToken {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestApplicationHandler_Submit_Validation(t *testing.T) {
	h := NewApplicationHandler(&stubApplicationService{})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero amount", `{"loanAmount":0,"loanType":"Home","tenureYears":5,"fullName":"J","phone":"+1555","email":"j@x.com","dob":"1990-01-01"}`, "loanAmount must be greater than 0"},
		{"missing dob", `{"loanAmount":10,"loanType":"Home","tenureYears":5,"fullName":"J","phone":"+1555","email":"j@x.com"}`, "dob is required"},
		{"bad dob", `{"loanAmount":10,"loanType":"Home","tenureYears":5,"fullName":"J","phone":"+1555","email":"j@x.com","dob":"12/04/1990"}`, "Invalid request payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/applications", tt.body)
			middleware.SetUser(c, &domain.User{ID: "u1", Role: domain.RoleCustomer})

			var ve *domain.ValidationError
			if err := h.Submit(c); !errors.As(err, &ve) || ve.Message != tt.want {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}
		})
	}
}

func TestApplicationHandler_UpdateStatus(t *testing.T) {
	stub := &stubApplicationService{}
	h := NewApplicationHandler(stub)

	c, rec := newContext(http.MethodPut, "/applications/a1", `{"status":"approved"}`)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.status != "approved" || decode(t, rec)["message"] != "Application status updated successfully" {
		t.Fatalf("unexpected result: %s", rec.Body.String())
	}

	c, _ = newContext(http.MethodPut, "/applications/a1", `{}`)
	var ve *domain.ValidationError
	if err := h.UpdateStatus(c); !errors.As(err, &ve) || ve.Message != "status is required" {
		t.Fatalf("expected status is required, got %v", err)
	}
}

func TestApplicationHandler_Dashboard(t *testing.T) {
	h := NewApplicationHandler(&stubApplicationService{})
	c, rec := newContext(http.MethodGet, "/applications/admin/dashboard", "")
	if err := h.Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	data, _ := decode(t, rec)["data"].(map[string]any)
	if data["totalApplications"] != float64(5) || data["totalPending"] != float64(4) {
		t.Fatalf("unexpected dashboard: %v", data)
	}
}
