package ports

import (
	"context"

	"github.com/softsolution/lending-api/internal/core/domain"
)

// LoanFilter selects catalog entries.
type LoanFilter struct {
	ActiveOnly bool
	Search     string // partial match on title or description
	Type       string // partial match on title
	Page       domain.PageRequest
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	FindByID(ctx context.Context, id string) (*domain.Loan, error)
	List(ctx context.Context, filter LoanFilter) ([]*domain.Loan, int64, error)
	Update(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type LoanService interface {
	List(ctx context.Context, filter LoanFilter) (domain.Page[*domain.Loan], error)
	// Get returns an active loan; inactive loans are reported as not found.
	Get(ctx context.Context, id string) (*domain.Loan, error)
	Create(ctx context.Context, loan domain.Loan) (*domain.Loan, error)
	Update(ctx context.Context, id string, patch domain.LoanPatch) (*domain.Loan, error)
	Delete(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string) (*domain.Loan, error)
}
