package model

import "time"

// CartItem is a single line of a shopping cart.
type CartItem struct {
	ProductID int64
	Quantity  int

	// Product is the populated catalog entry; nil when it no longer resolves.
	Product *Product
}

// Cart is the per-user mutable list of items. It is rewritten on every
// mutation and emptied on successful checkout; it is not an audit record.
type Cart struct {
	UserID    int64
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}
