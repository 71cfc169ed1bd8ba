package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/user-service/internal/domain"
	"github.com/example/user-service/internal/usecase"
	pkglog "github.com/example/user-service/pkg/log"
)

func newTestUserService(t *testing.T) (usecase.UserService, *testDeps) {
	t.Helper()
	users := newMockUserRepo()
	events := &recordingEvents{}
	svc := usecase.NewUserService(pkglog.New("test"), users, events)
	return svc, &testDeps{users: users, events: events}
}

func seedUser(t *testing.T, users *mockUserRepo, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, FirstName: "Jane", LastName: "Doe", IsActive: true}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestListUsers(t *testing.T) {
	svc, deps := newTestUserService(t)
	seedUser(t, deps.users, "a@example.com")
	seedUser(t, deps.users, "b@example.com")

	users, err := svc.List(context.Background(), "trace")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestGetUser(t *testing.T) {
	svc, deps := newTestUserService(t)
	seeded := seedUser(t, deps.users, "jane@example.com")

	user, err := svc.Get(context.Background(), "trace", seeded.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Get(context.Background(), "trace", 999); !errors.Is(err, usecase.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	svc, deps := newTestUserService(t)
	seeded := seedUser(t, deps.users, "jane@example.com")

	first := "Janet"
	active := false
	user, err := svc.Update(context.Background(), "trace", seeded.ID, usecase.UpdateUserRequest{
		FirstName: &first,
		IsActive:  &active,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.FirstName != "Janet" || user.IsActive {
		t.Fatalf("update not applied: %+v", user)
	}
	// untouched fields keep their values
	if user.Email != "jane@example.com" || user.LastName != "Doe" {
		t.Fatalf("unrelated fields changed: %+v", user)
	}
}

func TestUpdateUserEmailConflict(t *testing.T) {
	svc, deps := newTestUserService(t)
	seedUser(t, deps.users, "taken@example.com")
	seeded := seedUser(t, deps.users, "jane@example.com")

	email := "Taken@Example.com"
	_, err := svc.Update(context.Background(), "trace", seeded.ID, usecase.UpdateUserRequest{Email: &email})
	if !errors.Is(err, usecase.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestUpdateUserKeepOwnEmail(t *testing.T) {
	svc, deps := newTestUserService(t)
	seeded := seedUser(t, deps.users, "jane@example.com")

	// re-submitting the current address is not a conflict
	email := "Jane@Example.com"
	user, err := svc.Update(context.Background(), "trace", seeded.ID, usecase.UpdateUserRequest{Email: &email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Fatalf("unexpected email: %s", user.Email)
	}
}

func TestUpdateUserValidation(t *testing.T) {
	svc, deps := newTestUserService(t)
	seeded := seedUser(t, deps.users, "jane@example.com")

	bad := "J"
	_, err := svc.Update(context.Background(), "trace", seeded.ID, usecase.UpdateUserRequest{FirstName: &bad})
	if !errors.Is(err, usecase.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	svc, deps := newTestUserService(t)
	seeded := seedUser(t, deps.users, "jane@example.com")

	if err := svc.Delete(context.Background(), "trace", seeded.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := deps.users.FindByID(context.Background(), seeded.ID); err == nil {
		t.Fatalf("user still present after delete")
	}
	if len(deps.events.deleted) != 1 || deps.events.deleted[0] != seeded.ID {
		t.Fatalf("user deleted event not published: %+v", deps.events.deleted)
	}

	if err := svc.Delete(context.Background(), "trace", seeded.ID); !errors.Is(err, usecase.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
