package repository

import (
	"context"

	"github.com/cartcloud/backend/internal/domain/model"
)

// WishlistRepository manages the per-user wishlist.
type WishlistRepository interface {
	Get(ctx context.Context, userID int64) (*model.Wishlist, error)
	// AddItem is idempotent; added reports whether a new line was created.
	AddItem(ctx context.Context, userID, productID int64) (added bool, err error)
	RemoveItem(ctx context.Context, userID, productID int64) error
}
