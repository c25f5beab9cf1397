package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

type ApplicationService struct {
	apps  ports.ApplicationRepository
	users ports.UserRepository
	loans ports.LoanRepository
	log   zerolog.Logger
}

func NewApplicationService(apps ports.ApplicationRepository, users ports.UserRepository, loans ports.LoanRepository, log zerolog.Logger) *ApplicationService {
	return &ApplicationService{apps: apps, users: users, loans: loans, log: log}
}

// Submit records a new application owned by userID in pending state.
func (s *ApplicationService) Submit(ctx context.Context, userID string, app domain.Application) (*domain.Application, error) {
	app.LoanType = strings.TrimSpace(app.LoanType)
	app.FullName = strings.TrimSpace(app.FullName)
	app.Phone = strings.TrimSpace(app.Phone)
	app.Email = domain.NormalizeEmail(app.Email)

	switch {
	case app.LoanAmount <= 0:
		return nil, domain.NewValidationError("Loan amount must be greater than zero")
	case app.LoanType == "":
		return nil, domain.NewValidationError("Loan type is required")
	case app.TenureYears <= 0:
		return nil, domain.NewValidationError("Tenure must be greater than zero")
	case app.MonthlyIncome < 0:
		return nil, domain.NewValidationError("Monthly income cannot be negative")
	case app.FullName == "" || app.Phone == "" || app.Email == "":
		return nil, domain.NewValidationError("Please provide all required fields")
	case app.DOB.IsZero():
		return nil, domain.NewValidationError("Date of birth is required")
	}

	now := time.Now().UTC()
	app.ID = ""
	app.UserID = userID
	app.User = nil
	app.Status = domain.ApplicationPending
	app.CreatedAt, app.UpdatedAt = now, now

	created, err := s.apps.Create(ctx, &app)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("application_id", created.ID).Str("user_id", userID).Msg("application submitted")
	return created, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, userID string, page domain.PageRequest) (domain.Page[*domain.Application], error) {
	page = page.Normalize()
	items, total, err := s.apps.List(ctx, ports.ApplicationFilter{UserID: userID, Page: page})
	if err != nil {
		return domain.Page[*domain.Application]{}, err
	}
	return domain.NewPage(items, total, page), nil
}

// List returns applications for review with the applicant attached.
func (s *ApplicationService) List(ctx context.Context, f ports.ApplicationFilter) (domain.Page[*domain.Application], error) {
	f.Page = f.Page.Normalize()
	items, total, err := s.apps.List(ctx, f)
	if err != nil {
		return domain.Page[*domain.Application]{}, err
	}
	if err := s.attachApplicants(ctx, items...); err != nil {
		return domain.Page[*domain.Application]{}, err
	}
	return domain.NewPage(items, total, f.Page), nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*domain.Application, error) {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachApplicants(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status string) (*domain.Application, error) {
	st := domain.ApplicationStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return nil, domain.NewValidationError("Status must be one of: pending, approved, rejected, under-review")
	}
	app, err := s.apps.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("application_id", app.ID).Str("status", string(st)).Msg("application status updated")
	return app, nil
}

func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	if err := s.apps.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("application_id", id).Msg("application deleted")
	return nil
}

// Dashboard gathers the admin overview counters concurrently.
func (s *ApplicationService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var d domain.Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.TotalUsers, err = s.users.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.TotalLoans, err = s.loans.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.TotalApplications, err = s.apps.Count(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		d.TotalApproved, err = s.apps.Count(ctx, domain.ApplicationApproved)
		return err
	})
	g.Go(func() (err error) {
		d.TotalPending, err = s.apps.Count(ctx, domain.ApplicationPending)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return &d, nil
}

func (s *ApplicationService) attachApplicants(ctx context.Context, apps ...*domain.Application) error {
	if len(apps) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(apps))
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		if _, ok := seen[a.UserID]; !ok {
			seen[a.UserID] = struct{}{}
			ids = append(ids, a.UserID)
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load applicants: %w", err)
	}
	for _, a := range apps {
		if u, ok := users[a.UserID]; ok {
			a.User = &domain.ApplicantRef{ID: u.ID, FullName: u.FullName, Email: u.Email}
		}
	}
	return nil
}
