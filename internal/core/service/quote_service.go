package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

type QuoteService struct {
	quotes ports.QuoteRepository
	log    zerolog.Logger
}

func NewQuoteService(quotes ports.QuoteRepository, log zerolog.Logger) *QuoteService {
	return &QuoteService{quotes: quotes, log: log}
}

func (s *QuoteService) Submit(ctx context.Context, q domain.Quote) (*domain.Quote, error) {
	q.Name = strings.TrimSpace(q.Name)
	q.Phone = strings.TrimSpace(q.Phone)
	q.LoanType = strings.TrimSpace(q.LoanType)
	switch {
	case q.Name == "" || q.Phone == "" || q.LoanType == "":
		return nil, domain.NewValidationError("Please provide all required fields")
	case q.LoanAmount < 0:
		return nil, domain.NewValidationError("Loan amount cannot be negative")
	}

	now := time.Now().UTC()
	q.ID = ""
	q.Status = domain.QuotePending
	q.CreatedAt, q.UpdatedAt = now, now

	created, err := s.quotes.Create(ctx, &q)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("quote_id", created.ID).Str("loan_type", created.LoanType).Msg("quote requested")
	return created, nil
}

func (s *QuoteService) List(ctx context.Context, f ports.QuoteFilter) (domain.Page[*domain.Quote], error) {
	f.Page = f.Page.Normalize()
	items, total, err := s.quotes.List(ctx, f)
	if err != nil {
		return domain.Page[*domain.Quote]{}, err
	}
	return domain.NewPage(items, total, f.Page), nil
}

func (s *QuoteService) UpdateStatus(ctx context.Context, id string, status string) (*domain.Quote, error) {
	st := domain.QuoteStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return nil, domain.NewValidationError("Status must be one of: pending, contacted, approved, rejected")
	}
	return s.quotes.UpdateStatus(ctx, id, st)
}
