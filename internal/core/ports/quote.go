package ports

import (
	"context"

	"github.com/softsolution/lending-api/internal/core/domain"
)

type QuoteFilter struct {
	Search string // partial match on name, phone or loanType
	Status string
	Page   domain.PageRequest
}

type QuoteRepository interface {
	Create(ctx context.Context, q *domain.Quote) (*domain.Quote, error)
	List(ctx context.Context, filter QuoteFilter) ([]*domain.Quote, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus) (*domain.Quote, error)
}

type QuoteService interface {
	Submit(ctx context.Context, q domain.Quote) (*domain.Quote, error)
	List(ctx context.Context, filter QuoteFilter) (domain.Page[*domain.Quote], error)
	UpdateStatus(ctx context.Context, id string, status string) (*domain.Quote, error)
}
