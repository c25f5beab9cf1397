package ports

import (
	"context"

	"github.com/softsolution/lending-api/internal/core/domain"
)

type ContactFilter struct {
	Search string // partial match on fullName, email or message
	Page   domain.PageRequest
}

type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	List(ctx context.Context, filter ContactFilter) ([]*domain.Contact, int64, error)
	Delete(ctx context.Context, id string) error
}

type ContactService interface {
	Submit(ctx context.Context, c domain.Contact) (*domain.Contact, error)
	List(ctx context.Context, filter ContactFilter) (domain.Page[*domain.Contact], error)
	Delete(ctx context.Context, id string) error
}
