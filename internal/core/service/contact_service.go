package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

type ContactService struct {
	contacts ports.ContactRepository
	log      zerolog.Logger
}

func NewContactService(contacts ports.ContactRepository, log zerolog.Logger) *ContactService {
	return &ContactService{contacts: contacts, log: log}
}

func (s *ContactService) Submit(ctx context.Context, c domain.Contact) (*domain.Contact, error) {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Email = domain.NormalizeEmail(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Message = strings.TrimSpace(c.Message)
	if c.FullName == "" || c.Email == "" || c.Phone == "" || c.Message == "" {
		return nil, domain.NewValidationError("Please provide all required fields")
	}

	now := time.Now().UTC()
	c.ID = ""
	c.CreatedAt, c.UpdatedAt = now, now

	created, err := s.contacts.Create(ctx, &c)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("contact_id", created.ID).Msg("contact message received")
	return created, nil
}

func (s *ContactService) List(ctx context.Context, f ports.ContactFilter) (domain.Page[*domain.Contact], error) {
	f.Page = f.Page.Normalize()
	items, total, err := s.contacts.List(ctx, f)
	if err != nil {
		return domain.Page[*domain.Contact]{}, err
	}
	return domain.NewPage(items, total, f.Page), nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.contacts.Delete(ctx, id)
}
