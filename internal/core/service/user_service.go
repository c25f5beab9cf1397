package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile applies upd to the caller's record. Role and password are
// not reachable from here.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(upd.FullName); v != "" {
		user.FullName = v
	}
	if v := domain.NormalizeEmail(upd.Email); v != "" {
		user.Email = v
	}
	if v := strings.TrimSpace(upd.Phone); v != "" {
		user.Phone = v
	}
	if upd.DOB != nil {
		user.DOB = upd.DOB
	}
	if upd.Address != nil {
		var current domain.Address
		if user.Address != nil {
			current = *user.Address
		}
		merged := current.Merge(*upd.Address)
		user.Address = &merged
	}

	taken, err := s.users.ExistsByEmailOrPhone(ctx, user.Email, user.Phone, user.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if taken {
		return nil, profileConflict(domain.ErrUserExists)
	}

	updated, err := s.users.UpdateProfile(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, profileConflict(err)
		}
		return nil, err
	}
	s.log.Info().Str("user_id", updated.ID).Msg("profile updated")
	return updated, nil
}

func profileConflict(cause error) error {
	return domain.NewConflictError("Email or phone number already exists", cause)
}
