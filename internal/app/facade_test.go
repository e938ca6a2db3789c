package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
	testhelpers "github.com/cartcloud/backend/internal/test"
	"github.com/cartcloud/backend/internal/usecase"
)

type facadeFixture struct {
	facade    *MarketFacade
	orders    *testhelpers.OrderRepositoryStub
	balances  *testhelpers.BalanceRepositoryStub
	reconcile *testhelpers.ReconcileRepositoryStub
}

func newFacadeFixture() *facadeFixture {
	users := testhelpers.NewUserRepositoryStub()
	products := &testhelpers.ProductRepositoryStub{}
	carts := &testhelpers.CartRepositoryStub{}
	wishlists := &testhelpers.WishlistRepositoryStub{}
	orders := &testhelpers.OrderRepositoryStub{}
	balances := &testhelpers.BalanceRepositoryStub{}
	reconcile := &testhelpers.ReconcileRepositoryStub{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	balance := usecase.NewBalanceUseCase(balances, orders, users)
	orderUC := usecase.NewOrderUseCase(orders, carts, reconcile, balance, &testhelpers.ProcessorStub{}, usecase.Pricing{}, logger)

	facade := NewMarketFacade(
		usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{}),
		usecase.NewUserUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{}),
		usecase.NewProductUseCase(products),
		usecase.NewCartUseCase(carts, products),
		usecase.NewWishlistUseCase(wishlists, products),
		orderUC,
		balance,
		usecase.NewAnalyticsUseCase(orders, carts, time.Minute),
		reconcile,
	)
	return &facadeFixture{facade: facade, orders: orders, balances: balances, reconcile: reconcile}
}

func TestApplyBalanceJobCredits(t *testing.T) {
	fx := newFacadeFixture()
	fx.orders.GetByIDFn = func(ctx context.Context, id int64) (*model.Order, error) {
		return &model.Order{ID: id, Total: 32.99, Vendors: []int64{2}}, nil
	}

	job := model.ReconcileJob{ID: 1, UserID: 7, OrderID: 10, Op: model.ReconcileOpApply}
	if err := fx.facade.ApplyBalanceJob(context.Background(), job); err != nil {
		t.Fatalf("apply job failed: %v", err)
	}
	if len(fx.balances.ApplyCalls) != 1 || fx.balances.ApplyCalls[0].Order.ID != 10 {
		t.Fatalf("expected one credit, got %+v", fx.balances.ApplyCalls)
	}
}

func TestApplyBalanceJobDebits(t *testing.T) {
	fx := newFacadeFixture()
	fx.orders.GetByIDFn = func(ctx context.Context, id int64) (*model.Order, error) {
		return &model.Order{ID: id, Total: 32.99}, nil
	}

	job := model.ReconcileJob{ID: 2, UserID: 7, OrderID: 10, Op: model.ReconcileOpRemove}
	if err := fx.facade.ApplyBalanceJob(context.Background(), job); err != nil {
		t.Fatalf("apply job failed: %v", err)
	}
	if len(fx.balances.RemoveCalls) != 1 || fx.balances.RemoveCalls[0].OrderTotal != 32.99 {
		t.Fatalf("expected one debit, got %+v", fx.balances.RemoveCalls)
	}
}

func TestApplyBalanceJobUnknownOp(t *testing.T) {
	fx := newFacadeFixture()
	fx.orders.GetByIDFn = func(ctx context.Context, id int64) (*model.Order, error) {
		return &model.Order{ID: id}, nil
	}

	job := model.ReconcileJob{ID: 3, UserID: 7, OrderID: 10, Op: "garbage"}
	if err := fx.facade.ApplyBalanceJob(context.Background(), job); err == nil {
		t.Fatal("unknown op must fail")
	}
}

func TestApplyBalanceJobMissingOrder(t *testing.T) {
	fx := newFacadeFixture()

	job := model.ReconcileJob{ID: 4, UserID: 7, OrderID: 99, Op: model.ReconcileOpApply}
	err := fx.facade.ApplyBalanceJob(context.Background(), job)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(fx.balances.ApplyCalls) != 0 {
		t.Fatalf("missing order must not touch the ledger: %+v", fx.balances.ApplyCalls)
	}
}

func TestBalanceJobQueuePassthrough(t *testing.T) {
	fx := newFacadeFixture()
	fx.reconcile.SelectBatchFn = func(ctx context.Context, limit int) ([]model.ReconcileJob, error) {
		if limit != 16 {
			t.Fatalf("limit must be forwarded, got %d", limit)
		}
		return []model.ReconcileJob{{ID: 1}}, nil
	}

	jobs, err := fx.facade.BalanceJobs(context.Background(), 16)
	if err != nil || len(jobs) != 1 {
		t.Fatalf("unexpected batch: %v %v", jobs, err)
	}

	if err := fx.facade.CompleteBalanceJob(context.Background(), 1); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if err := fx.facade.FailBalanceJob(context.Background(), 2, "boom"); err != nil {
		t.Fatalf("fail failed: %v", err)
	}
	if len(fx.reconcile.Completed) != 1 || len(fx.reconcile.Failed) != 1 {
		t.Fatalf("queue bookkeeping lost: %+v", fx.reconcile)
	}
}
