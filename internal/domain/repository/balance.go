package repository

import (
	"context"

	"github.com/cartcloud/backend/internal/domain/model"
)

// BalanceRepository manages the stored account-balance ledger. Credit and
// debit are incremental and not idempotent: each order must be applied
// exactly once, at creation time.
type BalanceRepository interface {
	// ApplyOrder credits per-vendor subtotals and the order total in one
	// transaction. vendorNames provides display-name snapshots for vendors
	// seen for the first time.
	ApplyOrder(ctx context.Context, userID int64, order *model.Order, vendorNames map[int64]string) error
	// RemoveOrder prunes the order from vendor order lists, drops entries
	// left with no orders, and subtracts the order total from totalOwed,
	// floored at zero. Vendor amounts are deliberately not recomputed; the
	// read path reconstructs them.
	RemoveOrder(ctx context.Context, userID, orderID int64, orderTotal float64) error
	// GetStored returns the persisted bookkeeping fields.
	GetStored(ctx context.Context, userID int64) (*model.AccountBalance, error)
}
