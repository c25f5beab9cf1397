package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

type LoanService struct {
	loans ports.LoanRepository
	log   zerolog.Logger
}

func NewLoanService(loans ports.LoanRepository, log zerolog.Logger) *LoanService {
	return &LoanService{loans: loans, log: log}
}

func (s *LoanService) List(ctx context.Context, f ports.LoanFilter) (domain.Page[*domain.Loan], error) {
	f.Page = f.Page.Normalize()
	items, total, err := s.loans.List(ctx, f)
	if err != nil {
		return domain.Page[*domain.Loan]{}, err
	}
	return domain.NewPage(items, total, f.Page), nil
}

func (s *LoanService) Get(ctx context.Context, id string) (*domain.Loan, error) {
	loan, err := s.loans.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return nil, domain.ErrLoanUnavailable
		}
		return nil, err
	}
	if !loan.IsActive {
		return nil, domain.ErrLoanUnavailable
	}
	return loan, nil
}

func (s *LoanService) Create(ctx context.Context, loan domain.Loan) (*domain.Loan, error) {
	loan.Title = strings.TrimSpace(loan.Title)
	loan.Description = strings.TrimSpace(loan.Description)
	if err := loan.Validate(); err != nil {
		return nil, err
	}
	if err := setSlug(&loan); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	loan.CreatedAt, loan.UpdatedAt = now, now

	created, err := s.loans.Create(ctx, &loan)
	if err != nil {
		return nil, slugConflict(err)
	}
	s.log.Info().Str("loan_id", created.ID).Str("slug", created.Slug).Msg("loan created")
	return created, nil
}

func (s *LoanService) Update(ctx context.Context, id string, patch domain.LoanPatch) (*domain.Loan, error) {
	loan, err := s.loans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		patch.Title = &t
	}
	if patch.Description != nil {
		d := strings.TrimSpace(*patch.Description)
		patch.Description = &d
	}
	if patch.Apply(loan) {
		if err := setSlug(loan); err != nil {
			return nil, err
		}
	}
	if err := loan.Validate(); err != nil {
		return nil, err
	}
	return s.save(ctx, loan)
}

func (s *LoanService) Delete(ctx context.Context, id string) error {
	if err := s.loans.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("loan_id", id).Msg("loan deleted")
	return nil
}

// ToggleActive flips the loan's visibility in the public catalog.
func (s *LoanService) ToggleActive(ctx context.Context, id string) (*domain.Loan, error) {
	loan, err := s.loans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	loan.IsActive = !loan.IsActive
	return s.save(ctx, loan)
}

func (s *LoanService) save(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	loan.UpdatedAt = time.Now().UTC()
	updated, err := s.loans.Update(ctx, loan)
	if err != nil {
		return nil, slugConflict(err)
	}
	s.log.Info().Str("loan_id", updated.ID).Bool("active", updated.IsActive).Msg("loan updated")
	return updated, nil
}

func setSlug(loan *domain.Loan) error {
	loan.Slug = slug.Make(loan.Title)
	if loan.Slug == "" {
		return domain.NewValidationError("Loan title must contain letters or digits")
	}
	return nil
}

func slugConflict(err error) error {
	if errors.Is(err, domain.ErrDuplicateSlug) {
		return domain.NewConflictError("A loan with this title already exists", err)
	}
	return err
}
