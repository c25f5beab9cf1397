package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

var nopLog = zerolog.Nop()

// stubUserRepo is an in-memory credential store enforcing email and phone
// uniqueness the way the unique indexes do.
type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
	// createErr, when set, is returned by Create instead of inserting.
	createErr error
	// existsErr, when set, is returned by ExistsByEmailOrPhone.
	existsErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) conflicts(u *domain.User) bool {
	for id, existing := range r.users {
		if id == u.ID {
			continue
		}
		if existing.Email == u.Email || existing.Phone == u.Phone {
			return true
		}
	}
	return false
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	if !user.Role.Valid() {
		return nil, domain.NewValidationError("invalid role")
	}
	c := cloneUser(user)
	c.Email = domain.NormalizeEmail(c.Email)
	if r.conflicts(c) {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	c.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[c.ID] = c
	return c.Public(), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Public(), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string, withPassword bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == domain.NormalizeEmail(email) {
			if withPassword {
				return cloneUser(u), nil
			}
			return u.Public(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByEmailOrPhone(_ context.Context, email, phone, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	return r.conflicts(&domain.User{ID: excludeID, Email: domain.NormalizeEmail(email), Phone: phone}), nil
}

func (r *stubUserRepo) ExistsByRole(_ context.Context, role domain.Role) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := cloneUser(user)
	if r.conflicts(c) {
		return nil, domain.ErrUserExists
	}
	c.PasswordHash = existing.PasswordHash
	c.Role = existing.Role
	r.users[c.ID] = c
	return c.Public(), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u.Public()
		}
	}
	return out, nil
}

func (r *stubUserRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) countRole(role domain.Role) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n
}

// stubHasher is a reversible hasher for fast tests.
type stubHasher struct{ err error }

func (h stubHasher) Hash(p string) (string, error) {
	if h.err != nil {
		return "", &domain.HashingError{Err: h.err}
	}
	return "hashed:" + p, nil
}

func (h stubHasher) Verify(p, hash string) bool { return hash == "hashed:"+p }

type stubLoanRepo struct {
	loans    map[string]*domain.Loan
	nextID   int
	countErr error
}

func newStubLoanRepo() *stubLoanRepo {
	return &stubLoanRepo{loans: make(map[string]*domain.Loan)}
}

func (r *stubLoanRepo) slugTaken(l *domain.Loan) bool {
	for id, other := range r.loans {
		if id != l.ID && other.Slug == l.Slug {
			return true
		}
	}
	return false
}

func (r *stubLoanRepo) Create(_ context.Context, l *domain.Loan) (*domain.Loan, error) {
	c := *l
	if r.slugTaken(&c) {
		return nil, domain.ErrDuplicateSlug
	}
	r.nextID++
	c.ID = fmt.Sprintf("l%d", r.nextID)
	r.loans[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubLoanRepo) FindByID(_ context.Context, id string) (*domain.Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	c := *l
	return &c, nil
}

func (r *stubLoanRepo) List(_ context.Context, f ports.LoanFilter) ([]*domain.Loan, int64, error) {
	var out []*domain.Loan
	for _, l := range r.loans {
		if f.ActiveOnly && !l.IsActive {
			continue
		}
		c := *l
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubLoanRepo) Update(_ context.Context, l *domain.Loan) (*domain.Loan, error) {
	if _, ok := r.loans[l.ID]; !ok {
		return nil, domain.ErrLoanNotFound
	}
	if r.slugTaken(l) {
		return nil, domain.ErrDuplicateSlug
	}
	c := *l
	r.loans[l.ID] = &c
	out := c
	return &out, nil
}

func (r *stubLoanRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.loans[id]; !ok {
		return domain.ErrLoanNotFound
	}
	delete(r.loans, id)
	return nil
}

func (r *stubLoanRepo) Count(context.Context) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return int64(len(r.loans)), nil
}

type stubApplicationRepo struct {
	mu     sync.Mutex
	apps   map[string]*domain.Application
	nextID int
}

func newStubApplicationRepo() *stubApplicationRepo {
	return &stubApplicationRepo{apps: make(map[string]*domain.Application)}
}

func (r *stubApplicationRepo) Create(_ context.Context, a *domain.Application) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *a
	r.nextID++
	c.ID = fmt.Sprintf("a%d", r.nextID)
	r.apps[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubApplicationRepo) FindByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	c := *a
	return &c, nil
}

func (r *stubApplicationRepo) List(_ context.Context, f ports.ApplicationFilter) ([]*domain.Application, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Application
	for _, a := range r.apps {
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubApplicationRepo) UpdateStatus(_ context.Context, id string, st domain.ApplicationStatus) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	a.Status = st
	c := *a
	return &c, nil
}

func (r *stubApplicationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return domain.ErrApplicationNotFound
	}
	delete(r.apps, id)
	return nil
}

func (r *stubApplicationRepo) Count(_ context.Context, st domain.ApplicationStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.apps {
		if st == "" || a.Status == st {
			n++
		}
	}
	return n, nil
}

var errStore = errors.New("store unavailable")
