package ports

import (
	"context"

	"github.com/softsolution/lending-api/internal/core/domain"
)

// UserFinder resolves identities by id. It is all the identity middleware
// needs from the credential store.
type UserFinder interface {
	// FindByID returns the public projection of the user (no password hash)
	// or domain.ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// UserRepository is the credential store accessor.
type UserRepository interface {
	UserFinder

	// Create inserts a user. A unique-index violation on email or phone is
	// reported as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail looks a user up by normalized email. The password hash is
	// populated only when withPassword is true.
	FindByEmail(ctx context.Context, email string, withPassword bool) (*domain.User, error)
	// ExistsByEmailOrPhone reports whether another record (id != excludeID)
	// already uses email or phone. An empty excludeID checks all records.
	ExistsByEmailOrPhone(ctx context.Context, email, phone, excludeID string) (bool, error)
	// ExistsByRole reports whether at least one user carries role.
	ExistsByRole(ctx context.Context, role domain.Role) (bool, error)
	// UpdateProfile persists the profile fields of user and returns the
	// stored record.
	UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByIDs returns the public projections of the given users, keyed by id.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
