package handler

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/softsolution/lending-api/internal/core/domain"
)

func TestValidator_Phone(t *testing.T) {
	v := NewValidator()
	type req struct {
		Phone string `json:"phone" validate:"phone"`
	}

	for _, p := range []string{"+15551234567", "5551234567", "+919876543210"} {
		if err := v.Validate(&req{Phone: p}); err != nil {
			t.Errorf("%q should be valid: %v", p, err)
		}
	}
	for _, p := range []string{"", "+0123", "555-123-4567", "+1234567890123456789", "phone"} {
		if err := v.Validate(&req{Phone: p}); err == nil {
			t.Errorf("%q should be rejected", p)
		}
	}
}

func TestValidator_CollectsEveryField(t *testing.T) {
	err := NewValidator().Validate(&registerRequest{Email: "bad"})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Details) != 4 {
		t.Fatalf("expected 4 field errors, got %v", ve.Details)
	}
	if ve.Details[1] != "email must be a valid email" {
		t.Fatalf("expected json field names in messages, got %v", ve.Details)
	}
}

func TestDate_Unmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		err  bool
	}{
		{`"1990-04-12"`, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), false},
		{`"1990-04-12T10:00:00+02:00"`, time.Date(1990, 4, 12, 8, 0, 0, 0, time.UTC), false},
		{`null`, time.Time{}, false},
		{`""`, time.Time{}, false},
		{`"12/04/1990"`, time.Time{}, true},
		{`19900412`, time.Time{}, true},
	}
	for _, tt := range tests {
		var d date
		err := json.Unmarshal([]byte(tt.in), &d)
		if (err != nil) != tt.err {
			t.Fatalf("%s: unexpected error state %v", tt.in, err)
		}
		if !d.Time.Equal(tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.in, tt.want, d.Time)
		}
	}

	var unset *date
	if unset.ptr() != nil {
		t.Fatal("nil date must yield a nil pointer")
	}
}
