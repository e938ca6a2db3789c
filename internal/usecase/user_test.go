package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
	testhelpers "github.com/cartcloud/backend/internal/test"
)

func newUserUC() (*UserUseCase, *testhelpers.UserRepositoryStub) {
	users := testhelpers.NewUserRepositoryStub()
	uc := NewUserUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{})
	return uc, users
}

func TestUserCreateDefaultsToCustomer(t *testing.T) {
	uc, _ := newUserUC()

	user, token, err := uc.Create(context.Background(), model.CreateUserInput{
		Name:     "Buyer",
		Email:    "Buyer@Example.com",
		Password: "secret",
	}, "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.Role != model.RoleCustomer {
		t.Fatalf("expected customer role, got %s", user.Role)
	}
	if user.Email != "buyer@example.com" {
		t.Fatalf("email must be normalized, got %q", user.Email)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
}

func TestUserCreateDemotesAdminRequest(t *testing.T) {
	uc, _ := newUserUC()

	user, _, err := uc.Create(context.Background(), model.CreateUserInput{
		Name:     "Sneaky",
		Email:    "sneaky@example.com",
		Password: "secret",
		Role:     model.RoleAdmin,
	}, model.RoleCustomer)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.Role != model.RoleCustomer {
		t.Fatalf("non-admin caller must not mint admins, got %s", user.Role)
	}
}

func TestUserCreateAdminByAdmin(t *testing.T) {
	uc, _ := newUserUC()

	user, _, err := uc.Create(context.Background(), model.CreateUserInput{
		Name:     "Root",
		Email:    "root@example.com",
		Password: "secret",
		Role:     model.RoleAdmin,
	}, model.RoleAdmin)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Fatalf("admin caller may create admins, got %s", user.Role)
	}
}

func TestUserCreateInvalidRole(t *testing.T) {
	uc, _ := newUserUC()

	_, _, err := uc.Create(context.Background(), model.CreateUserInput{
		Name:     "Odd",
		Email:    "odd@example.com",
		Password: "secret",
		Role:     "superuser",
	}, "")
	if !errors.Is(err, domainErrors.ErrInvalidRole) {
		t.Fatalf("expected invalid role, got %v", err)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	uc, users := newUserUC()
	users.Seed(&model.User{Role: model.RoleCustomer, Email: "taken@example.com"})

	_, _, err := uc.Create(context.Background(), model.CreateUserInput{
		Name:     "Copy",
		Email:    "taken@example.com",
		Password: "secret",
	}, "")
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestUserUpdateMergesFields(t *testing.T) {
	uc, users := newUserUC()
	users.Seed(&model.User{
		Role:    model.RoleVendor,
		Name:    "Ada",
		Email:   "ada@example.com",
		Address: model.Address{City: "Toronto"},
	})

	newName := "Ada L."
	updated, err := uc.Update(context.Background(), 1, model.UpdateUserInput{Name: &newName})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Ada L." {
		t.Fatalf("name not updated: %+v", updated)
	}
	if updated.Email != "ada@example.com" || updated.Address.City != "Toronto" {
		t.Fatalf("omitted fields must be kept: %+v", updated)
	}
}

func TestUserChangePassword(t *testing.T) {
	uc, users := newUserUC()
	users.Seed(&model.User{Role: model.RoleCustomer, Email: "buyer@example.com", PasswordHash: "hash:old"})

	if err := uc.ChangePassword(context.Background(), 1, "wrong", "new"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("wrong current password must fail, got %v", err)
	}
	if err := uc.ChangePassword(context.Background(), 1, "old", "new"); err != nil {
		t.Fatalf("change failed: %v", err)
	}
	user, _ := users.GetByID(context.Background(), 1)
	if user.PasswordHash != "hash:new" {
		t.Fatalf("hash not rotated: %q", user.PasswordHash)
	}
}
