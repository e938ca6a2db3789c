package repository

import (
	"context"

	"github.com/cartcloud/backend/internal/domain/model"
)

// OrderRepository describes persistence operations with the order ledger.
type OrderRepository interface {
	// Create persists the order with its line items and vendor set in one
	// transaction and returns the stored record.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// ListByUser returns completed orders (not cart-like rows), newest first.
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	// GetOutstandingByIDs returns orders from the given set whose status
	// still counts towards the account balance.
	GetOutstandingByIDs(ctx context.Context, ids []int64) ([]model.Order, error)
	// Cancel persists the cancelled order and its item statuses.
	Cancel(ctx context.Context, order *model.Order) error
	MarkDelivered(ctx context.Context, orderID int64) error

	// MonthlyItemCounts counts a vendor's order line items per calendar
	// month (1..12) of order creation, across all years.
	MonthlyItemCounts(ctx context.Context, vendorID int64) (map[int]int, error)
	// VendorTotals sums a vendor's sold item quantities and revenue across
	// all orders regardless of status.
	VendorTotals(ctx context.Context, vendorID int64) (totalSales int, totalRevenue float64, err error)
}
