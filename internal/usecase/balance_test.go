package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
	testhelpers "github.com/cartcloud/backend/internal/test"
)

func TestCreditSnapshotsVendorNames(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Seed(&model.User{ID: 2, Role: model.RoleVendor, Name: "Ada", Email: "ada@example.com", VendorProfile: &model.VendorProfile{StoreName: "Ada's Attic"}})
	balances := &testhelpers.BalanceRepositoryStub{}
	uc := NewBalanceUseCase(balances, &testhelpers.OrderRepositoryStub{}, users)

	order := &model.Order{ID: 1, Vendors: []int64{2, 99}}
	if err := uc.Credit(context.Background(), 7, order); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if len(balances.ApplyCalls) != 1 {
		t.Fatalf("expected one apply call, got %d", len(balances.ApplyCalls))
	}
	names := balances.ApplyCalls[0].VendorNames
	if names[2] != "Ada's Attic" {
		t.Fatalf("expected storefront name, got %q", names[2])
	}
	if names[99] != "Unknown Vendor" {
		t.Fatalf("expected fallback for missing vendor, got %q", names[99])
	}
}

func TestDebitRemovesOrderTotal(t *testing.T) {
	balances := &testhelpers.BalanceRepositoryStub{}
	uc := NewBalanceUseCase(balances, &testhelpers.OrderRepositoryStub{}, testhelpers.NewUserRepositoryStub())

	if err := uc.Debit(context.Background(), 7, &model.Order{ID: 5, Total: 32.99}); err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if len(balances.RemoveCalls) != 1 {
		t.Fatalf("expected one remove call, got %d", len(balances.RemoveCalls))
	}
	call := balances.RemoveCalls[0]
	if call.UserID != 7 || call.OrderID != 5 || call.OrderTotal != 32.99 {
		t.Fatalf("unexpected remove call: %+v", call)
	}
}

func TestAccountBalanceReconstructsFromOrderLedger(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Seed(&model.User{ID: 7, Role: model.RoleCustomer, Email: "buyer@example.com", TotalOwed: 999})
	users.Seed(&model.User{ID: 2, Role: model.RoleVendor, Name: "Ada", Email: "ada@example.com"})

	balances := &testhelpers.BalanceRepositoryStub{Stored: &model.AccountBalance{
		TotalOwed: 999,
		VendorBalances: []model.VendorBalance{
			{VendorID: 2, VendorName: "stale name", Amount: 500, OrderIDs: []int64{1, 2}},
			{VendorID: 3, VendorName: "Ghost Goods", Amount: 100, OrderIDs: []int64{3}},
		},
	}}
	now := time.Now()
	orders := &testhelpers.OrderRepositoryStub{GetOutstandingByIDsFn: func(ctx context.Context, ids []int64) ([]model.Order, error) {
		if len(ids) == 2 {
			return []model.Order{
				{ID: 1, OrderNumber: "ORD-1-AAAAA", Total: 32.99, Status: model.OrderStatusConfirmed, CreatedAt: now, PaymentMethod: "credit_card", Items: []model.OrderItem{{}, {}}},
				{ID: 2, OrderNumber: "ORD-2-BBBBB", Total: 10, Status: model.OrderStatusShipped, CreatedAt: now},
			}, nil
		}
		// vendor 3's only order is no longer outstanding
		return nil, nil
	}}

	uc := NewBalanceUseCase(balances, orders, users)
	view, err := uc.AccountBalance(context.Background(), 7)
	if err != nil {
		t.Fatalf("account balance failed: %v", err)
	}

	if len(view.VendorBalances) != 1 {
		t.Fatalf("vendors with nothing outstanding must be dropped, got %+v", view.VendorBalances)
	}
	vb := view.VendorBalances[0]
	if vb.VendorID != 2 || vb.Amount != 42.99 || vb.OrderCount != 2 {
		t.Fatalf("unexpected vendor balance: %+v", vb)
	}
	if vb.VendorName != "Ada" {
		t.Fatalf("expected live vendor name, got %q", vb.VendorName)
	}
	if vb.Orders[0].ItemCount != 2 || vb.Orders[0].PaymentMethod != "credit_card" {
		t.Fatalf("unexpected balance order: %+v", vb.Orders[0])
	}
	if view.TotalOwed != 42.99 {
		t.Fatalf("totalOwed must be recomputed, not the stored 999: got %v", view.TotalOwed)
	}
}

func TestAccountBalanceUnknownUser(t *testing.T) {
	uc := NewBalanceUseCase(&testhelpers.BalanceRepositoryStub{}, &testhelpers.OrderRepositoryStub{}, testhelpers.NewUserRepositoryStub())
	if _, err := uc.AccountBalance(context.Background(), 7); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
