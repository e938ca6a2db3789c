package repository

import (
	"context"

	"github.com/cartcloud/backend/internal/domain/model"
)

// CartRepository manages the per-user shopping cart.
type CartRepository interface {
	// Get returns the populated cart. Items whose product no longer
	// resolves carry a nil Product.
	Get(ctx context.Context, userID int64) (*model.Cart, error)
	// AddItem merges quantity into an existing line or appends a new one.
	AddItem(ctx context.Context, userID, productID int64, quantity int) error
	// SetItemQuantity replaces a line's quantity; ErrItemNotInCart when absent.
	SetItemQuantity(ctx context.Context, userID, productID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
	// Prune deletes lines whose product was removed from the catalog.
	Prune(ctx context.Context, userID int64) error
	// VendorInCartQuantity sums quantities of this vendor's products across
	// all current carts.
	VendorInCartQuantity(ctx context.Context, vendorID int64) (int, error)
}
