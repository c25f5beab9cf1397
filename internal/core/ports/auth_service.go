package ports

import (
	"context"
	"time"

	"github.com/softsolution/lending-api/internal/core/domain"
)

// RegisterInput is the raw registration payload.
type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Role     string
}

// AuthResult is returned by successful registration and login.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// UserService manages the caller's own profile.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error)
}
