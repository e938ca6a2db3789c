package model

import "time"

// WishlistItem is a saved product reference.
type WishlistItem struct {
	ProductID int64
	AddedAt   time.Time

	Product *Product
}

// Wishlist is the per-user list of saved products.
type Wishlist struct {
	UserID    int64
	Items     []WishlistItem
	CreatedAt time.Time
	UpdatedAt time.Time
}
