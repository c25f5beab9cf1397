package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

// AdminSeed holds the credentials of the first administrator.
type AdminSeed struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

// EnsureAdmin creates one administrator from seed when the store has none.
// It never touches an existing admin and must finish before the server
// accepts traffic. It reports whether an account was created.
func EnsureAdmin(ctx context.Context, users ports.UserRepository, hasher ports.PasswordHasher, seed AdminSeed, log zerolog.Logger) (bool, error) {
	exists, err := users.ExistsByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	if exists {
		log.Debug().Msg("admin account present, skipping bootstrap")
		return false, nil
	}

	if strings.TrimSpace(seed.Email) == "" || seed.Password == "" {
		return false, domain.ErrBootstrapCredentials
	}
	if n := len(seed.Password); n < minPasswordLength || n > maxPasswordLength {
		return false, fmt.Errorf("bootstrap admin: password must be between %d and %d characters", minPasswordLength, maxPasswordLength)
	}

	hash, err := hasher.Hash(seed.Password)
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	admin, err := users.Create(ctx, &domain.User{
		FullName:     seed.FullName,
		Email:        domain.NormalizeEmail(seed.Email),
		Phone:        seed.Phone,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrUserExists) {
			return false, fmt.Errorf("create admin: %w", err)
		}
		// Another instance may have won the race; that only counts if the
		// colliding record is an admin.
		exists, checkErr := users.ExistsByRole(ctx, domain.RoleAdmin)
		if checkErr != nil {
			return false, fmt.Errorf("check admin: %w", checkErr)
		}
		if !exists {
			return false, fmt.Errorf("bootstrap admin: email or phone already used by a non-admin account: %w", err)
		}
		log.Info().Msg("admin account created concurrently, skipping bootstrap")
		return false, nil
	}

	log.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("admin account created")
	return true, nil
}
