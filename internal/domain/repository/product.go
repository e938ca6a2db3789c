package repository

import (
	"context"

	"github.com/cartcloud/backend/internal/domain/model"
)

// ProductRepository describes persistence operations with catalog entries.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	// List returns products, optionally filtered by a case-insensitive
	// name substring.
	List(ctx context.Context, nameQuery string) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}
