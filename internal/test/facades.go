package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (int64, model.Role, error)
}

// Authenticate returns a user and token for successful login scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Role: model.RoleCustomer, Email: email}, "token", nil
}

// ParseToken returns stored identity for the authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, model.Role, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, model.RoleCustomer, nil
}

// UserFacadeStub simulates account operations.
type UserFacadeStub struct {
	CreateFn         func(context.Context, model.CreateUserInput, model.Role) (*model.User, string, error)
	UserFn           func(context.Context, int64) (*model.User, error)
	UsersFn          func(context.Context) ([]model.User, error)
	UpdateFn         func(context.Context, int64, model.UpdateUserInput) (*model.User, error)
	ChangePasswordFn func(context.Context, int64, string, string) error
	DeleteFn         func(context.Context, int64) error
	BalanceFn        func(context.Context, int64) (*model.AccountBalanceView, error)
}

func (s UserFacadeStub) CreateUser(ctx context.Context, in model.CreateUserInput, callerRole model.Role) (*model.User, string, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, in, callerRole)
	}
	return &model.User{ID: 1, Role: model.RoleCustomer, Name: in.Name, Email: in.Email}, "token", nil
}

func (s UserFacadeStub) User(ctx context.Context, id int64) (*model.User, error) {
	if s.UserFn != nil {
		return s.UserFn(ctx, id)
	}
	return &model.User{ID: id, Role: model.RoleCustomer}, nil
}

func (s UserFacadeStub) Users(ctx context.Context) ([]model.User, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx)
	}
	return []model.User{{ID: 1, Role: model.RoleCustomer}}, nil
}

func (s UserFacadeStub) UpdateUser(ctx context.Context, id int64, in model.UpdateUserInput) (*model.User, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, in)
	}
	return &model.User{ID: id, Role: model.RoleCustomer}, nil
}

func (s UserFacadeStub) ChangeUserPassword(ctx context.Context, id int64, current, next string) error {
	if s.ChangePasswordFn != nil {
		return s.ChangePasswordFn(ctx, id, current, next)
	}
	return nil
}

func (s UserFacadeStub) DeleteUser(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

func (s UserFacadeStub) AccountBalance(ctx context.Context, userID int64) (*model.AccountBalanceView, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	return &model.AccountBalanceView{VendorBalances: []model.VendorBalanceView{}}, nil
}

// ProductFacadeStub simulates catalog operations.
type ProductFacadeStub struct {
	CreateFn func(context.Context, *model.Product) (*model.Product, error)
	GetFn    func(context.Context, int64) (*model.Product, error)
	ListFn   func(context.Context, string) ([]model.Product, error)
	UpdateFn func(context.Context, *model.Product) (*model.Product, error)
	DeleteFn func(context.Context, int64) error
}

func (s ProductFacadeStub) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, product)
	}
	stored := *product
	stored.ID = 1
	return &stored, nil
}

func (s ProductFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "widget", Price: 10, VendorID: 2, IsActive: true}, nil
}

func (s ProductFacadeStub) Products(ctx context.Context, nameQuery string) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, nameQuery)
	}
	return []model.Product{{ID: 1, Name: "widget", Price: 10, VendorID: 2, IsActive: true}}, nil
}

func (s ProductFacadeStub) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, product)
	}
	return product, nil
}

func (s ProductFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// CartFacadeStub simulates shopping-cart operations.
type CartFacadeStub struct {
	CartFn    func(context.Context, int64) (*model.Cart, error)
	AddFn     func(context.Context, int64, int64, int) (*model.Cart, error)
	UpdateFn  func(context.Context, int64, int64, int) (*model.Cart, error)
	RemoveFn  func(context.Context, int64, int64) (*model.Cart, error)
	ClearFn   func(context.Context, int64) (*model.Cart, error)
	EmptyCart bool
}

func (s CartFacadeStub) defaultCart(userID int64) *model.Cart {
	if s.EmptyCart {
		return &model.Cart{UserID: userID, Items: []model.CartItem{}}
	}
	return &model.Cart{UserID: userID, Items: []model.CartItem{{
		ProductID: 1,
		Quantity:  2,
		Product:   &model.Product{ID: 1, Name: "widget", Price: 10, VendorID: 2, IsActive: true},
	}}}
}

func (s CartFacadeStub) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return s.defaultCart(userID), nil
}

func (s CartFacadeStub) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, productID, quantity)
	}
	return s.defaultCart(userID), nil
}

func (s CartFacadeStub) UpdateCartItem(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, productID, quantity)
	}
	return s.defaultCart(userID), nil
}

func (s CartFacadeStub) RemoveFromCart(ctx context.Context, userID, productID int64) (*model.Cart, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, productID)
	}
	return s.defaultCart(userID), nil
}

func (s CartFacadeStub) ClearCart(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
}

// WishlistFacadeStub simulates wishlist operations.
type WishlistFacadeStub struct {
	GetFn    func(context.Context, int64) (*model.Wishlist, error)
	AddFn    func(context.Context, int64, int64) (*model.Wishlist, error)
	RemoveFn func(context.Context, int64, int64) (*model.Wishlist, error)
}

func (s WishlistFacadeStub) Wishlist(ctx context.Context, userID int64) (*model.Wishlist, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	return &model.Wishlist{UserID: userID, Items: []model.WishlistItem{}}, nil
}

func (s WishlistFacadeStub) AddToWishlist(ctx context.Context, userID, productID int64) (*model.Wishlist, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, productID)
	}
	return &model.Wishlist{UserID: userID, Items: []model.WishlistItem{{ProductID: productID, AddedAt: time.Unix(0, 0)}}}, nil
}

func (s WishlistFacadeStub) RemoveFromWishlist(ctx context.Context, userID, productID int64) (*model.Wishlist, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, productID)
	}
	return &model.Wishlist{UserID: userID, Items: []model.WishlistItem{}}, nil
}

// OrderFacadeStub simulates order lifecycle operations.
type OrderFacadeStub struct {
	CheckoutFn  func(context.Context, int64, model.CheckoutInput) (*model.Order, error)
	OrderFn     func(context.Context, int64) (*model.Order, error)
	ListFn      func(context.Context, int64) ([]model.Order, error)
	CancelFn    func(context.Context, int64, string) (*model.Order, error)
	DeliverFn   func(context.Context, int64) (*model.Order, error)
	AnalyticsFn func(context.Context, int64) (*model.VendorAnalytics, error)
}

func (s OrderFacadeStub) Checkout(ctx context.Context, userID int64, in model.CheckoutInput) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, in)
	}
	return &model.Order{ID: 1, OrderNumber: "ORD-1-AAAAA", UserID: userID, Status: model.OrderStatusConfirmed}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s OrderFacadeStub) OrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return nil, nil
}

func (s OrderFacadeStub) CancelOrder(ctx context.Context, id int64, reason string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, id, reason)
	}
	return &model.Order{ID: id, Status: model.OrderStatusCancelled}, nil
}

func (s OrderFacadeStub) DeliverOrder(ctx context.Context, id int64) (*model.Order, error) {
	if s.DeliverFn != nil {
		return s.DeliverFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusDelivered}, nil
}

func (s OrderFacadeStub) VendorAnalytics(ctx context.Context, vendorID int64) (*model.VendorAnalytics, error) {
	if s.AnalyticsFn != nil {
		return s.AnalyticsFn(ctx, vendorID)
	}
	monthly := make([]model.MonthlySales, len(model.MonthNames))
	for i, name := range model.MonthNames {
		monthly[i] = model.MonthlySales{Month: name}
	}
	return &model.VendorAnalytics{MonthlySales: monthly}, nil
}

// MarketFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketFacadeStub struct {
	AuthFacadeStub
	UserFacadeStub
	ProductFacadeStub
	CartFacadeStub
	WishlistFacadeStub
	OrderFacadeStub
}

// WorkerFacadeStub mimics reconciler interactions with the application facade.
type WorkerFacadeStub struct {
	Jobs    [][]model.ReconcileJob
	JobsFn  func(context.Context, int) ([]model.ReconcileJob, error)
	ApplyFn func(context.Context, model.ReconcileJob) error

	mu        sync.Mutex
	Applied   []model.ReconcileJob
	Completed []int64
	Failed    []int64
}

// BalanceJobs pops the next prepared batch.
func (s *WorkerFacadeStub) BalanceJobs(ctx context.Context, limit int) ([]model.ReconcileJob, error) {
	if s.JobsFn != nil {
		return s.JobsFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Jobs) == 0 {
		return nil, nil
	}
	batch := s.Jobs[0]
	s.Jobs = s.Jobs[1:]
	return batch, nil
}

// ApplyBalanceJob records the job, optionally delegating for failures.
func (s *WorkerFacadeStub) ApplyBalanceJob(ctx context.Context, job model.ReconcileJob) error {
	s.mu.Lock()
	s.Applied = append(s.Applied, job)
	s.mu.Unlock()
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, job)
	}
	return nil
}

// CompleteBalanceJob records completion.
func (s *WorkerFacadeStub) CompleteBalanceJob(ctx context.Context, jobID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Completed = append(s.Completed, jobID)
	return nil
}

// FailBalanceJob records failure bookkeeping.
func (s *WorkerFacadeStub) FailBalanceJob(ctx context.Context, jobID int64, cause string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed = append(s.Failed, jobID)
	return nil
}

// AppliedJobs returns a snapshot of recorded job applications.
func (s *WorkerFacadeStub) AppliedJobs() []model.ReconcileJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ReconcileJob(nil), s.Applied...)
}

// CompletedJobs returns a snapshot of recorded completions.
func (s *WorkerFacadeStub) CompletedJobs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.Completed...)
}

// FailedJobs returns a snapshot of recorded failures.
func (s *WorkerFacadeStub) FailedJobs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.Failed...)
}
