package usecase

import (
	"context"

	"github.com/cartcloud/backend/internal/domain/model"
	"github.com/cartcloud/backend/internal/domain/repository"
)

// ProductUseCase handles catalog entries.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// Create stores a new catalog entry.
func (u *ProductUseCase) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	return u.products.Create(ctx, product)
}

// GetByID fetches a catalog entry.
func (u *ProductUseCase) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// List returns catalog entries, optionally filtered by a name substring.
func (u *ProductUseCase) List(ctx context.Context, nameQuery string) ([]model.Product, error) {
	return u.products.List(ctx, nameQuery)
}

// Update replaces a catalog entry.
func (u *ProductUseCase) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	return u.products.Update(ctx, product)
}

// Delete removes a catalog entry. Cart lines referencing it are healed
// lazily on the next cart read.
func (u *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return u.products.Delete(ctx, id)
}
