package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
	"github.com/cartcloud/backend/internal/domain/repository"
	pkgAuth "github.com/cartcloud/backend/internal/pkg/auth"
)

// UserUseCase handles account lifecycle.
type UserUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *UserUseCase {
	return &UserUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Create registers an account and returns it with an auth token. Only an
// admin caller may create another admin; anyone else asking for the admin
// role is demoted to customer.
func (u *UserUseCase) Create(ctx context.Context, in model.CreateUserInput, callerRole model.Role) (*model.User, string, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	role := in.Role
	if role == "" {
		role = model.RoleCustomer
	}
	if !role.Valid() {
		return nil, "", domainErrors.ErrInvalidRole
	}
	if role == model.RoleAdmin && callerRole != model.RoleAdmin {
		role = model.RoleCustomer
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, &model.User{
		Role:          role,
		Name:          in.Name,
		Email:         in.Email,
		PasswordHash:  hash,
		Address:       in.Address,
		VendorProfile: in.VendorProfile,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID, usr.Role)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// GetByID fetches an account by identifier.
func (u *UserUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// List returns all accounts.
func (u *UserUseCase) List(ctx context.Context) ([]model.User, error) {
	return u.users.List(ctx)
}

// Update applies the provided profile changes on top of the stored account.
func (u *UserUseCase) Update(ctx context.Context, id int64, in model.UpdateUserInput) (*model.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		usr.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		usr.Email = strings.TrimSpace(strings.ToLower(*in.Email))
	}
	if in.Address != nil {
		usr.Address = *in.Address
	}
	if in.VendorProfile != nil {
		usr.VendorProfile = in.VendorProfile
	}

	return u.users.Update(ctx, usr)
}

// ChangePassword verifies the current password and stores a new hash.
func (u *UserUseCase) ChangePassword(ctx context.Context, id int64, current, next string) error {
	if next == "" {
		return domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.hasher.Compare(usr.PasswordHash, current); err != nil {
		return domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(next)
	if err != nil {
		return err
	}
	return u.users.UpdatePassword(ctx, id, hash)
}

// Delete removes the account.
func (u *UserUseCase) Delete(ctx context.Context, id int64) error {
	return u.users.Delete(ctx, id)
}
