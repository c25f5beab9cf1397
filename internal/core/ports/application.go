package ports

import (
	"context"

	"github.com/softsolution/lending-api/internal/core/domain"
)

// ApplicationFilter selects loan applications. UserID scopes the result to a
// single applicant.
type ApplicationFilter struct {
	UserID   string
	Search   string // partial match on fullName, phone, email or loanType
	Status   string
	LoanType string
	Page     domain.PageRequest
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]*domain.Application, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
	Delete(ctx context.Context, id string) error
	// Count returns the number of applications in status, or all of them
	// when status is empty.
	Count(ctx context.Context, status domain.ApplicationStatus) (int64, error)
}

type ApplicationService interface {
	Submit(ctx context.Context, userID string, app domain.Application) (*domain.Application, error)
	ListMine(ctx context.Context, userID string, page domain.PageRequest) (domain.Page[*domain.Application], error)
	List(ctx context.Context, filter ApplicationFilter) (domain.Page[*domain.Application], error)
	Get(ctx context.Context, id string) (*domain.Application, error)
	UpdateStatus(ctx context.Context, id string, status string) (*domain.Application, error)
	Delete(ctx context.Context, id string) error
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
}
