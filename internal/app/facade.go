package app

import (
	"context"
	"fmt"

	"github.com/cartcloud/backend/internal/domain/model"
	"github.com/cartcloud/backend/internal/domain/repository"
	"github.com/cartcloud/backend/internal/usecase"
)

// MarketFacade aggregates the use cases behind the HTTP handlers and the
// balance reconciler.
type MarketFacade struct {
	auth      *usecase.AuthUseCase
	users     *usecase.UserUseCase
	products  *usecase.ProductUseCase
	carts     *usecase.CartUseCase
	wishlists *usecase.WishlistUseCase
	orders    *usecase.OrderUseCase
	balance   *usecase.BalanceUseCase
	analytics *usecase.AnalyticsUseCase
	reconcile repository.ReconcileRepository
}

// NewMarketFacade constructs MarketFacade.
func NewMarketFacade(
	auth *usecase.AuthUseCase,
	users *usecase.UserUseCase,
	products *usecase.ProductUseCase,
	carts *usecase.CartUseCase,
	wishlists *usecase.WishlistUseCase,
	orders *usecase.OrderUseCase,
	balance *usecase.BalanceUseCase,
	analytics *usecase.AnalyticsUseCase,
	reconcile repository.ReconcileRepository,
) *MarketFacade {
	return &MarketFacade{
		auth:      auth,
		users:     users,
		products:  products,
		carts:     carts,
		wishlists: wishlists,
		orders:    orders,
		balance:   balance,
		analytics: analytics,
		reconcile: reconcile,
	}
}

func (f *MarketFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *MarketFacade) ParseToken(token string) (int64, model.Role, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketFacade) CreateUser(ctx context.Context, in model.CreateUserInput, callerRole model.Role) (*model.User, string, error) {
	return f.users.Create(ctx, in, callerRole)
}

func (f *MarketFacade) User(ctx context.Context, id int64) (*model.User, error) {
	return f.users.GetByID(ctx, id)
}

func (f *MarketFacade) Users(ctx context.Context) ([]model.User, error) {
	return f.users.List(ctx)
}

func (f *MarketFacade) UpdateUser(ctx context.Context, id int64, in model.UpdateUserInput) (*model.User, error) {
	return f.users.Update(ctx, id, in)
}

func (f *MarketFacade) ChangeUserPassword(ctx context.Context, id int64, current, next string) error {
	return f.users.ChangePassword(ctx, id, current, next)
}

func (f *MarketFacade) DeleteUser(ctx context.Context, id int64) error {
	return f.users.Delete(ctx, id)
}

func (f *MarketFacade) AccountBalance(ctx context.Context, userID int64) (*model.AccountBalanceView, error) {
	return f.balance.AccountBalance(ctx, userID)
}

func (f *MarketFacade) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return f.products.Create(ctx, product)
}

func (f *MarketFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.products.GetByID(ctx, id)
}

func (f *MarketFacade) Products(ctx context.Context, nameQuery string) ([]model.Product, error) {
	return f.products.List(ctx, nameQuery)
}

func (f *MarketFacade) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return f.products.Update(ctx, product)
}

func (f *MarketFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.products.Delete(ctx, id)
}

func (f *MarketFacade) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	return f.carts.Get(ctx, userID)
}

func (f *MarketFacade) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
	return f.carts.Add(ctx, userID, productID, quantity)
}

func (f *MarketFacade) UpdateCartItem(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
	return f.carts.UpdateQuantity(ctx, userID, productID, quantity)
}

func (f *MarketFacade) RemoveFromCart(ctx context.Context, userID, productID int64) (*model.Cart, error) {
	return f.carts.Remove(ctx, userID, productID)
}

func (f *MarketFacade) ClearCart(ctx context.Context, userID int64) (*model.Cart, error) {
	return f.carts.Clear(ctx, userID)
}

func (f *MarketFacade) Wishlist(ctx context.Context, userID int64) (*model.Wishlist, error) {
	return f.wishlists.Get(ctx, userID)
}

func (f *MarketFacade) AddToWishlist(ctx context.Context, userID, productID int64) (*model.Wishlist, error) {
	return f.wishlists.Add(ctx, userID, productID)
}

func (f *MarketFacade) RemoveFromWishlist(ctx context.Context, userID, productID int64) (*model.Wishlist, error) {
	return f.wishlists.Remove(ctx, userID, productID)
}

func (f *MarketFacade) Checkout(ctx context.Context, userID int64, in model.CheckoutInput) (*model.Order, error) {
	return f.orders.Checkout(ctx, userID, in)
}

func (f *MarketFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.GetByID(ctx, id)
}

func (f *MarketFacade) OrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *MarketFacade) CancelOrder(ctx context.Context, id int64, reason string) (*model.Order, error) {
	return f.orders.Cancel(ctx, id, reason)
}

func (f *MarketFacade) DeliverOrder(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.MarkDelivered(ctx, id)
}

func (f *MarketFacade) VendorAnalytics(ctx context.Context, vendorID int64) (*model.VendorAnalytics, error) {
	return f.analytics.Vendor(ctx, vendorID)
}

func (f *MarketFacade) BalanceJobs(ctx context.Context, limit int) ([]model.ReconcileJob, error) {
	return f.reconcile.SelectBatch(ctx, limit)
}

// ApplyBalanceJob replays a deferred ledger mutation against the current
// state of its order.
func (f *MarketFacade) ApplyBalanceJob(ctx context.Context, job model.ReconcileJob) error {
	order, err := f.orders.GetByID(ctx, job.OrderID)
	if err != nil {
		return err
	}
	switch job.Op {
	case model.ReconcileOpApply:
		return f.balance.Credit(ctx, job.UserID, order)
	case model.ReconcileOpRemove:
		return f.balance.Debit(ctx, job.UserID, order)
	default:
		return fmt.Errorf("unknown balance job op %q", job.Op)
	}
}

func (f *MarketFacade) CompleteBalanceJob(ctx context.Context, jobID int64) error {
	return f.reconcile.Complete(ctx, jobID)
}

func (f *MarketFacade) FailBalanceJob(ctx context.Context, jobID int64, cause string) error {
	return f.reconcile.Fail(ctx, jobID, cause)
}
