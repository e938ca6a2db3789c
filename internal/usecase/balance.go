package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
	"github.com/cartcloud/backend/internal/domain/repository"
)

// BalanceUseCase maintains the account-balance ledger: incremental credits
// and debits on the write path, full reconstruction on the read path.
type BalanceUseCase struct {
	balances repository.BalanceRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
}

// NewBalanceUseCase constructs BalanceUseCase.
func NewBalanceUseCase(balances repository.BalanceRepository, orders repository.OrderRepository, users repository.UserRepository) *BalanceUseCase {
	return &BalanceUseCase{balances: balances, orders: orders, users: users}
}

// Credit applies a freshly created order to the customer's stored balance,
// snapshotting vendor display names along the way.
func (u *BalanceUseCase) Credit(ctx context.Context, userID int64, order *model.Order) error {
	names := make(map[int64]string, len(order.Vendors))
	for _, vendorID := range order.Vendors {
		vendor, err := u.users.GetByID(ctx, vendorID)
		switch {
		case err == nil:
			names[vendorID] = vendor.DisplayVendorName()
		case errors.Is(err, domainErrors.ErrNotFound):
			names[vendorID] = "Unknown Vendor"
		default:
			return err
		}
	}
	return u.balances.ApplyOrder(ctx, userID, order, names)
}

// Debit removes a cancelled or delivered order from the stored balance.
func (u *BalanceUseCase) Debit(ctx context.Context, userID int64, order *model.Order) error {
	return u.balances.RemoveOrder(ctx, userID, order.ID, order.Total)
}

// AccountBalance reconstructs what the customer currently owes, per vendor,
// from the stored order references. Amounts come from the order ledger, not
// from the stored running totals, so cancelled and delivered orders fall out
// naturally. Vendors with nothing outstanding are omitted.
func (u *BalanceUseCase) AccountBalance(ctx context.Context, userID int64) (*model.AccountBalanceView, error) {
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	stored, err := u.balances.GetStored(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &model.AccountBalanceView{VendorBalances: []model.VendorBalanceView{}}
	for _, vb := range stored.VendorBalances {
		if len(vb.OrderIDs) == 0 {
			continue
		}
		outstanding, err := u.orders.GetOutstandingByIDs(ctx, vb.OrderIDs)
		if err != nil {
			return nil, err
		}

		var amount float64
		orders := make([]model.BalanceOrder, 0, len(outstanding))
		for _, o := range outstanding {
			amount += o.Total
			orders = append(orders, model.BalanceOrder{
				OrderID:       o.ID,
				OrderNumber:   o.OrderNumber,
				Amount:        o.Total,
				Date:          o.CreatedAt,
				Status:        o.Status,
				ItemCount:     len(o.Items),
				PaymentMethod: o.PaymentMethod,
			})
		}
		if amount <= 0 {
			continue
		}

		view.VendorBalances = append(view.VendorBalances, model.VendorBalanceView{
			VendorID:   vb.VendorID,
			VendorName: u.vendorName(ctx, vb),
			Amount:     amount,
			OrderCount: len(orders),
			Orders:     orders,
		})
		view.TotalOwed += amount
	}
	return view, nil
}

// vendorName prefers the vendor's current display name over the snapshot
// taken at credit time.
func (u *BalanceUseCase) vendorName(ctx context.Context, vb model.VendorBalance) string {
	vendor, err := u.users.GetByID(ctx, vb.VendorID)
	if err == nil {
		return vendor.DisplayVendorName()
	}
	if vb.VendorName != "" {
		return vb.VendorName
	}
	return "Unknown Vendor"
}
