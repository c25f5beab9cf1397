package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/softsolution/lending-api/internal/core/domain"
)

func newUser() *domain.User {
	now := time.Now()
	return &domain.User{
		FullName:     "Jane Doe",
		Email:        "Jane@Example.com",
		Phone:        "+15551234567",
		PasswordHash: "$2a$12$abcdefghijklmnopqrstuv",
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success returns public user", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		got, err := repo.Create(context.Background(), newUser())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.PasswordHash != "" {
			t.Fatal("password hash must not be returned")
		}
		if got.Email != "jane@example.com" {
			t.Fatalf("expected normalized email, got %q", got.Email)
		}
		if got.ID == "" {
			t.Fatal("expected generated id")
		}
	})

	mt.Run("duplicate key maps to ErrUserExists", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		_, err := repo.Create(context.Background(), newUser())
		if !errors.Is(err, domain.ErrUserExists) {
			t.Fatalf("expected ErrUserExists, got %v", err)
		}
	})

	mt.Run("invalid role is rejected before write", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		u := newUser()
		u.Role = "superuser"

		_, err := repo.Create(context.Background(), u)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("with password", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "lending.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "full_name", Value: "Jane Doe"},
			{Key: "email", Value: "jane@example.com"},
			{Key: "phone", Value: "+15551234567"},
			{Key: "password_hash", Value: "hash"},
			{Key: "role", Value: "customer"},
		}))

		got, err := repo.FindByEmail(context.Background(), "JANE@example.com", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != oid.Hex() || got.PasswordHash != "hash" || got.Role != domain.RoleCustomer {
			t.Fatalf("unexpected user: %+v", got)
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "lending.users", mtest.FirstBatch))

		_, err := repo.FindByEmail(context.Background(), "ghost@example.com", false)
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserRepository_FindByID_InvalidHex(t *testing.T) {
	repo := &UserRepository{}
	_, err := repo.FindByID(context.Background(), "not-an-id")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_ExistsByRole(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("admin present", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "lending.users", mtest.FirstBatch, bson.D{
			{Key: "n", Value: int32(1)},
		}))

		ok, err := repo.ExistsByRole(context.Background(), domain.RoleAdmin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("expected admin to exist")
		}
	})

	mt.Run("no admin", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "lending.users", mtest.FirstBatch))

		ok, err := repo.ExistsByRole(context.Background(), domain.RoleAdmin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Fatal("expected no admin")
		}
	})
}

func TestContainsAnyEscapesInput(t *testing.T) {
	or := containsAny("a.b*", "title", "description")
	if len(or) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(or))
	}
	rx := or[0].(bson.M)["title"].(primitive.Regex)
	if rx.Pattern != `a\.b\*` || rx.Options != "i" {
		t.Fatalf("unexpected regex: %+v", rx)
	}
}
