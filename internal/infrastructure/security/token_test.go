package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/softsolution/lending-api/internal/core/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func reasonOf(t *testing.T, err error) domain.TokenFailure {
	t.Helper()
	var te *domain.TokenError
	if !errors.As(err, &te) {
		t.Fatalf("expected *domain.TokenError, got %T (%v)", err, err)
	}
	return te.Reason
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc, err := NewTokenService(testSecret, "lending-api", time.Hour)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}

	token, exp, err := svc.Issue("665f1c2e9b1d4a0012345678", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(exp) <= 59*time.Minute {
		t.Fatalf("unexpected expiry %v", exp)
	}

	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != "665f1c2e9b1d4a0012345678" {
		t.Fatalf("expected identity id round trip, got %q", id)
	}
}

func TestTokenService_EmbedsRoleAndExpiry(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc, _ := NewTokenService(testSecret, "lending-api", 0, WithClock(fixedClock(now)))

	token, _, err := svc.Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		t.Fatalf("parse unverified: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %q", claims.Role)
	}
	if !claims.ExpiresAt.Time.Equal(now.Add(DefaultTokenTTL)) {
		t.Fatalf("expected default ttl expiry, got %v", claims.ExpiresAt.Time)
	}
	if claims.ID == "" {
		t.Fatalf("expected jti to be set")
	}
}

func TestTokenService_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer, _ := NewTokenService(testSecret, "lending-api", time.Hour, WithClock(fixedClock(issuedAt)))
	token, _, _ := issuer.Issue("user-1", domain.RoleCustomer)

	later, _ := NewTokenService(testSecret, "lending-api", time.Hour, WithClock(fixedClock(issuedAt.Add(2*time.Hour))))
	_, err := later.Verify(token)
	if got := reasonOf(t, err); got != domain.TokenExpired {
		t.Fatalf("expected expired, got %s", got)
	}
}

func TestTokenService_ExpiredWithForeignSignature(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	forger, _ := NewTokenService(strings.Repeat("z", 32), "lending-api", time.Minute, WithClock(fixedClock(issuedAt)))
	token, _, _ := forger.Issue("user-1", domain.RoleAdmin)

	svc, _ := NewTokenService(testSecret, "lending-api", time.Hour)
	_, err := svc.Verify(token)
	if got := reasonOf(t, err); got != domain.TokenExpired {
		t.Fatalf("expected expired regardless of signature, got %s", got)
	}
}

func TestTokenService_SignatureMismatch(t *testing.T) {
	forger, _ := NewTokenService(strings.Repeat("z", 32), "lending-api", time.Hour)
	token, _, _ := forger.Issue("user-1", domain.RoleAdmin)

	svc, _ := NewTokenService(testSecret, "lending-api", time.Hour)
	_, err := svc.Verify(token)
	if got := reasonOf(t, err); got != domain.TokenSignatureMismatch {
		t.Fatalf("expected signature_mismatch, got %s", got)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "lending-api",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	svc, _ := NewTokenService(testSecret, "lending-api", time.Hour)
	_, err = svc.Verify(token)
	if got := reasonOf(t, err); got != domain.TokenSignatureMismatch {
		t.Fatalf("expected signature_mismatch for HS512 token, got %s", got)
	}
}

func TestTokenService_RequiresExpiry(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: "lending-api"}}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))

	svc, _ := NewTokenService(testSecret, "lending-api", time.Hour)
	if _, err := svc.Verify(token); err == nil {
		t.Fatalf("expected token without exp to be rejected")
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc, _ := NewTokenService(testSecret, "lending-api", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(raw)
		if got := reasonOf(t, err); got != domain.TokenMalformed {
			t.Fatalf("expected malformed for %q, got %s", raw, got)
		}
	}
}

func TestNewTokenService_ShortSecret(t *testing.T) {
	if _, err := NewTokenService("short", "lending-api", time.Hour); err == nil {
		t.Fatalf("expected error for short secret")
	}
}
