package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
	"github.com/cartcloud/backend/internal/domain/repository"
)

// CartUseCase handles the per-user shopping cart.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products}
}

// Get returns the populated cart, creating an empty view when none exists.
// Lines whose product was deleted from the catalog are pruned on the way out.
func (u *CartUseCase) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
		}
		return nil, err
	}

	alive := make([]model.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.Product != nil {
			alive = append(alive, item)
		}
	}
	if len(alive) != len(cart.Items) {
		if err := u.carts.Prune(ctx, userID); err != nil {
			return nil, err
		}
		cart.Items = alive
	}
	return cart, nil
}

// Add puts quantity of a product into the cart, merging with an existing line.
func (u *CartUseCase) Add(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
	if productID <= 0 {
		return nil, domainErrors.ErrProductRequired
	}
	if quantity < 1 {
		return nil, domainErrors.ErrQuantityTooSmall
	}

	if _, err := u.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if err := u.carts.AddItem(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return u.Get(ctx, userID)
}

// UpdateQuantity replaces the quantity of an existing cart line.
func (u *CartUseCase) UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
	if productID <= 0 {
		return nil, domainErrors.ErrProductRequired
	}
	if quantity < 1 {
		return nil, domainErrors.ErrQuantityTooSmall
	}

	if err := u.carts.SetItemQuantity(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return u.Get(ctx, userID)
}

// Remove deletes one line from the cart.
func (u *CartUseCase) Remove(ctx context.Context, userID, productID int64) (*model.Cart, error) {
	if err := u.carts.RemoveItem(ctx, userID, productID); err != nil {
		return nil, err
	}
	return u.Get(ctx, userID)
}

// Clear empties the cart.
func (u *CartUseCase) Clear(ctx context.Context, userID int64) (*model.Cart, error) {
	if err := u.carts.Clear(ctx, userID); err != nil {
		return nil, err
	}
	return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
}
