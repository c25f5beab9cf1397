package service

import (
	"context"
	"errors"
	"testing"

	"github.com/softsolution/lending-api/internal/core/domain"
)

func adminSeed() AdminSeed {
	return AdminSeed{
		Email:    "Admin@Lending.example",
		Password: "sup3r-secret",
		FullName: "Admin User",
		Phone:    "+1234567890",
	}
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	ctx := context.Background()

	created, err := EnsureAdmin(ctx, repo, stubHasher{}, adminSeed(), nopLog)
	if err != nil || !created {
		t.Fatalf("first run: created=%v err=%v", created, err)
	}
	created, err = EnsureAdmin(ctx, repo, stubHasher{}, adminSeed(), nopLog)
	if err != nil || created {
		t.Fatalf("second run: created=%v err=%v", created, err)
	}

	if n := repo.countRole(domain.RoleAdmin); n != 1 {
		t.Fatalf("expected exactly one admin, got %d", n)
	}
	admin, err := repo.FindByEmail(ctx, "admin@lending.example", true)
	if err != nil {
		t.Fatalf("admin not stored under normalized email: %v", err)
	}
	if admin.PasswordHash != "hashed:sup3r-secret" {
		t.Fatalf("unexpected hash %q", admin.PasswordHash)
	}
}

func TestEnsureAdmin_ExistingAdminUntouched(t *testing.T) {
	repo := newStubUserRepo()
	ctx := context.Background()
	_, _ = repo.Create(ctx, &domain.User{
		FullName: "Ops", Email: "ops@example.com", Phone: "+15550001111",
		PasswordHash: "hashed:original", Role: domain.RoleAdmin,
	})

	// Credentials are irrelevant when an admin exists.
	created, err := EnsureAdmin(ctx, repo, stubHasher{}, AdminSeed{}, nopLog)
	if err != nil || created {
		t.Fatalf("created=%v err=%v", created, err)
	}
	ops, _ := repo.FindByEmail(ctx, "ops@example.com", true)
	if ops.PasswordHash != "hashed:original" {
		t.Fatal("existing admin was modified")
	}
}

func TestEnsureAdmin_MissingCredentials(t *testing.T) {
	repo := newStubUserRepo()
	seed := adminSeed()
	seed.Password = ""

	_, err := EnsureAdmin(context.Background(), repo, stubHasher{}, seed, nopLog)
	if !errors.Is(err, domain.ErrBootstrapCredentials) {
		t.Fatalf("expected ErrBootstrapCredentials, got %v", err)
	}
	if n, _ := repo.Count(context.Background()); n != 0 {
		t.Fatalf("no user should be created, got %d", n)
	}
}

func TestEnsureAdmin_EmailTakenByCustomer(t *testing.T) {
	repo := newStubUserRepo()
	ctx := context.Background()
	_, _ = repo.Create(ctx, &domain.User{
		FullName: "Jane", Email: "admin@lending.example", Phone: "+15550002222",
		PasswordHash: "hashed:x", Role: domain.RoleCustomer,
	})

	_, err := EnsureAdmin(ctx, repo, stubHasher{}, adminSeed(), nopLog)
	if err == nil || !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected failure wrapping ErrUserExists, got %v", err)
	}
	if n := repo.countRole(domain.RoleAdmin); n != 0 {
		t.Fatalf("customer must not be promoted, admins=%d", n)
	}
}

// racingRepo simulates another instance creating the admin between the
// existence check and the insert.
type racingRepo struct {
	*stubUserRepo
	checks int
}

func (r *racingRepo) ExistsByRole(ctx context.Context, role domain.Role) (bool, error) {
	r.checks++
	return r.checks > 1, nil
}

func (r *racingRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, domain.ErrUserExists
}

func TestEnsureAdmin_LostRaceIsSuccess(t *testing.T) {
	repo := &racingRepo{stubUserRepo: newStubUserRepo()}

	created, err := EnsureAdmin(context.Background(), repo, stubHasher{}, adminSeed(), nopLog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("losing the race must not report creation")
	}
}
