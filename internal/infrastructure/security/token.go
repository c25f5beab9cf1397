package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/softsolution/lending-api/internal/core/domain"
)

const (
	// DefaultTokenTTL bounds token lifetime when none is configured.
	DefaultTokenTTL = 7 * 24 * time.Hour
	// MinSecretLength is the shortest HS256 secret accepted.
	MinSecretLength = 32
)

// Claims is the signed payload of an identity token.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewTokenService builds a TokenService. ttl <= 0 selects DefaultTokenTTL.
func NewTokenService(secret, issuer string, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(issuer))
	}
	s.parser = jwt.NewParser(parserOpts...)
	return s, nil
}

// TTL is the validity window applied to new tokens.
func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) Issue(identityID string, role domain.Role) (string, time.Time, error) {
	if identityID == "" {
		return "", time.Time{}, errors.New("issue token: empty identity id")
	}
	now := s.now().UTC()
	exp := now.Add(s.ttl)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identityID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature, algorithm, issuer and expiry. An expired token is
// reported as expired even when its signature does not match.
func (s *TokenService) Verify(raw string) (string, error) {
	var claims Claims
	tkn, err := s.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err == nil && tkn.Valid {
		if claims.Subject == "" {
			return "", &domain.TokenError{Reason: domain.TokenMalformed, Err: errors.New("missing subject")}
		}
		return claims.Subject, nil
	}

	// ParseWithClaims decodes the payload before checking the signature, so
	// claims holds the unverified expiry for any well-formed token.
	if claims.ExpiresAt != nil && !s.now().Before(claims.ExpiresAt.Time) {
		return "", &domain.TokenError{Reason: domain.TokenExpired, Err: err}
	}
	return "", &domain.TokenError{Reason: classify(err), Err: err}
}

func classify(err error) domain.TokenFailure {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.TokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.TokenSignatureMismatch
	default:
		return domain.TokenMalformed
	}
}
