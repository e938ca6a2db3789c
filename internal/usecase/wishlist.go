package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
	"github.com/cartcloud/backend/internal/domain/repository"
)

// WishlistUseCase handles the per-user wishlist.
type WishlistUseCase struct {
	wishlists repository.WishlistRepository
	products  repository.ProductRepository
}

// NewWishlistUseCase constructs WishlistUseCase.
func NewWishlistUseCase(wishlists repository.WishlistRepository, products repository.ProductRepository) *WishlistUseCase {
	return &WishlistUseCase{wishlists: wishlists, products: products}
}

// Get returns the populated wishlist, empty when none exists yet.
func (u *WishlistUseCase) Get(ctx context.Context, userID int64) (*model.Wishlist, error) {
	list, err := u.wishlists.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.Wishlist{UserID: userID, Items: []model.WishlistItem{}}, nil
		}
		return nil, err
	}
	return list, nil
}

// Add saves a product reference; adding the same product twice is a no-op.
func (u *WishlistUseCase) Add(ctx context.Context, userID, productID int64) (*model.Wishlist, error) {
	if productID <= 0 {
		return nil, domainErrors.ErrProductRequired
	}
	if _, err := u.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if _, err := u.wishlists.AddItem(ctx, userID, productID); err != nil {
		return nil, err
	}
	return u.Get(ctx, userID)
}

// Remove drops a product reference from the wishlist.
func (u *WishlistUseCase) Remove(ctx context.Context, userID, productID int64) (*model.Wishlist, error) {
	if err := u.wishlists.RemoveItem(ctx, userID, productID); err != nil {
		return nil, err
	}
	return u.Get(ctx, userID)
}
