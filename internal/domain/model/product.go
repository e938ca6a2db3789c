package model

import "time"

// Product is a catalog entry owned by a vendor.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Stock       int
	ImageURL    string
	Category    string
	VendorID    int64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
