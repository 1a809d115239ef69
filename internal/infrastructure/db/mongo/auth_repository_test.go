package mongo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/99minutos/admin-auth/internal/core/domain"
)

const testNS = "admin_auth.admins"

func adminDoc(id primitive.ObjectID, email string) bson.D {
	ts := primitive.NewDateTimeFromTime(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Root"},
		{Key: "email", Value: email},
		{Key: "password", Value: "$2a$04$hash"},
		{Key: "image", Value: domain.DefaultAdminImage},
		{Key: "token", Value: "old-token"},
		{Key: "isActive", Value: true},
		{Key: "isDeleted", Value: false},
		{Key: "createdAt", Value: ts},
		{Key: "updatedAt", Value: ts},
	}
}

func TestAdminRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		admin := &domain.Admin{ID: primitive.NewObjectID().Hex(), Name: "Root", Email: "root@example.com", IsActive: true}
		if err := repo.Create(context.Background(), admin); err != nil {
			t.Fatalf("create: %v", err)
		}
		if admin.CreatedAt.IsZero() || !admin.CreatedAt.Equal(admin.UpdatedAt) {
			t.Fatalf("expected timestamps to be set: %+v", admin)
		}
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: `E11000 duplicate key error collection: admin_auth.admins index: email_1 dup key: { email: "root@example.com" }`,
		}))

		err := repo.Create(context.Background(), &domain.Admin{ID: primitive.NewObjectID().Hex(), Email: "root@example.com"})
		var dup *domain.DuplicateKeyError
		if !errors.As(err, &dup) {
			t.Fatalf("expected DuplicateKeyError, got %v", err)
		}
		if dup.Field != "email" {
			t.Fatalf("expected field email, got %q", dup.Field)
		}
	})

	mt.Run("storage failure", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))

		err := repo.Create(context.Background(), &domain.Admin{ID: primitive.NewObjectID().Hex(), Email: "root@example.com"})
		var se *domain.StorageError
		if !errors.As(err, &se) {
			t.Fatalf("expected StorageError, got %v", err)
		}
	})

	mt.Run("invalid id keeps the issued id", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)

		admin := &domain.Admin{ID: "not-an-object-id", Email: "root@example.com"}
		err := repo.Create(context.Background(), admin)
		var se *domain.StorageError
		if !errors.As(err, &se) {
			t.Fatalf("expected StorageError, got %v", err)
		}
		if admin.ID != "not-an-object-id" {
			t.Fatalf("id must not be replaced, got %q", admin.ID)
		}
		if ev := mt.GetStartedEvent(); ev != nil {
			t.Fatalf("expected no command to be sent, got %s", ev.CommandName)
		}
	})
}

func TestAdminRepository_FindActiveByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch, adminDoc(id, "root@example.com")))

		admin, err := repo.FindActiveByEmail(context.Background(), "root@example.com")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if admin.ID != id.Hex() || admin.Email != "root@example.com" || admin.PasswordHash != "$2a$04$hash" {
			t.Fatalf("unexpected admin: %+v", admin)
		}
		if !admin.CanAuthenticate() {
			t.Fatalf("expected active admin")
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))

		if _, err := repo.FindActiveByEmail(context.Background(), "ghost@example.com"); err != domain.ErrAdminNotFound {
			t.Fatalf("expected ErrAdminNotFound, got %v", err)
		}
	})
}

func TestAdminRepository_FindActiveByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch, adminDoc(id, "root@example.com")))

		admin, err := repo.FindActiveByID(context.Background(), id.Hex())
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if admin.ID != id.Hex() || admin.Name != "Root" {
			t.Fatalf("unexpected admin: %+v", admin)
		}
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)

		if _, err := repo.FindActiveByID(context.Background(), "not-an-object-id"); err != domain.ErrAdminNotFound {
			t.Fatalf("expected ErrAdminNotFound, got %v", err)
		}
	})
}

func TestAdminRepository_UpdateToken(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("matched", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		if err := repo.UpdateToken(context.Background(), primitive.NewObjectID().Hex(), "new-token"); err != nil {
			t.Fatalf("update: %v", err)
		}
	})

	mt.Run("no match", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		if err := repo.UpdateToken(context.Background(), primitive.NewObjectID().Hex(), "new-token"); err != domain.ErrAdminNotFound {
			t.Fatalf("expected ErrAdminNotFound, got %v", err)
		}
	})
}

func TestDuplicateField(t *testing.T) {
	cases := []struct {
		msg  string
		want string
	}{
		{`E11000 duplicate key error collection: db.admins index: email_1 dup key: { email: "a@b.co" }`, "email"},
		{`E11000 duplicate key error collection: db.admins index: email_1 dup key: { : "a@b.co" }`, "email"},
		{`E11000 duplicate key error`, "unknown"},
	}
	for _, tc := range cases {
		if got := duplicateField(errors.New(tc.msg)); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.msg, tc.want, got)
		}
	}
}

func TestAdminRepository_EnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates indexes", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		if err := repo.EnsureIndexes(context.Background()); err != nil {
			t.Fatalf("ensure indexes: %v", err)
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "createIndexes" {
			t.Fatalf("expected createIndexes command, got %+v", started)
		}
		raw := started.Command.Lookup("indexes").Array().String()
		for _, want := range []string{"email_1", "unique", "partialFilterExpression", "isDeleted", "isActive"} {
			if !strings.Contains(raw, want) {
				t.Fatalf("expected %s in %s", want, raw)
			}
		}
	})

	mt.Run("command error", func(mt *mtest.T) {
		repo := NewAdminRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "index already exists with different options",
		}))

		if err := repo.EnsureIndexes(context.Background()); err == nil {
			t.Fatal("expected error")
		}
	})
}
