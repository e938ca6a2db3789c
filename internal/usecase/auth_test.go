package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
	testhelpers "github.com/cartcloud/backend/internal/test"
)

func TestAuthenticateSuccess(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Seed(&model.User{Role: model.RoleVendor, Email: "ada@example.com", PasswordHash: "hash:secret"})

	issued := ""
	strategy := testhelpers.StrategyStub{IssueFn: func(userID int64, role model.Role) (string, error) {
		if role != model.RoleVendor {
			t.Fatalf("token must carry the user role, got %s", role)
		}
		issued = "token-for-vendor"
		return issued, nil
	}}
	uc := NewAuthUseCase(users, testhelpers.HasherStub{}, strategy)

	user, token, err := uc.Authenticate(context.Background(), "Ada@Example.com", "secret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user.Email != "ada@example.com" || token != issued {
		t.Fatalf("unexpected result: %+v %q", user, token)
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Seed(&model.User{Role: model.RoleCustomer, Email: "buyer@example.com", PasswordHash: "hash:secret"})
	uc := NewAuthUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{})

	if _, _, err := uc.Authenticate(context.Background(), "buyer@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password must fail, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "nobody@example.com", "secret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email must fail, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("blank credentials must fail, got %v", err)
	}
}
