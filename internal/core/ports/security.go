package ports

import (
	"context"
	"time"

	"github.com/softsolution/lending-api/internal/core/domain"
)

// PasswordHasher is the one-way credential hashing unit.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. A mismatch is false,
	// never an error.
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(identityID string, role domain.Role) (token string, expiresAt time.Time, err error)
}

// TokenVerifier checks a token and returns the identity id it was issued
// for. Failures are *domain.TokenError.
type TokenVerifier interface {
	Verify(token string) (identityID string, err error)
}

// LoginLimiter throttles repeated login attempts for a key.
type LoginLimiter interface {
	// Hit records an attempt and reports whether it is still within budget.
	Hit(ctx context.Context, key string) (allowed bool, err error)
	// Reset clears the attempt counter, typically after a successful login.
	Reset(ctx context.Context, key string) error
}
