package test

import (
	"context"
	"strings"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

// Seed inserts a user directly, assigning the next identifier when unset.
func (s *UserRepositoryStub) Seed(user *model.User) *model.User {
	if user.ID == 0 {
		user.ID = s.Next
		s.Next++
	} else if user.ID >= s.Next {
		s.Next = user.ID + 1
	}
	s.ByEmail[strings.ToLower(user.Email)] = user
	s.ByID[user.ID] = user
	return user
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[strings.ToLower(user.Email)]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *user
	stored.ID = s.Next
	s.Next++
	s.ByEmail[strings.ToLower(stored.Email)] = &stored
	s.ByID[stored.ID] = &stored
	return &stored, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[strings.ToLower(email)]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored users.
func (s *UserRepositoryStub) List(ctx context.Context) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]model.User, 0, len(s.ByID))
	for _, user := range s.ByID {
		users = append(users, *user)
	}
	return users, nil
}

// Update replaces the stored user.
func (s *UserRepositoryStub) Update(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored, ok := s.ByID[user.ID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	delete(s.ByEmail, strings.ToLower(stored.Email))
	updated := *user
	s.ByID[updated.ID] = &updated
	s.ByEmail[strings.ToLower(updated.Email)] = &updated
	return &updated, nil
}

// UpdatePassword stores the new hash.
func (s *UserRepositoryStub) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// Delete removes the user.
func (s *UserRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.ByEmail, strings.ToLower(user.Email))
	delete(s.ByID, id)
	return nil
}

// ProductRepositoryStub serves products from a map with optional overrides.
type ProductRepositoryStub struct {
	Products map[int64]*model.Product
	CreateFn func(context.Context, *model.Product) (*model.Product, error)
	ListFn   func(context.Context, string) ([]model.Product, error)
	UpdateFn func(context.Context, *model.Product) (*model.Product, error)
	DeleteFn func(context.Context, int64) error
	Err      error
}

// Create delegates to override or stores the product.
func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, product)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Products == nil {
		s.Products = make(map[int64]*model.Product)
	}
	stored := *product
	stored.ID = int64(len(s.Products) + 1)
	s.Products[stored.ID] = &stored
	return &stored, nil
}

// GetByID fetches product from the map or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if product, ok := s.Products[id]; ok {
		return product, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns stored products or delegates to override.
func (s *ProductRepositoryStub) List(ctx context.Context, nameQuery string) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, nameQuery)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	products := make([]model.Product, 0, len(s.Products))
	for _, product := range s.Products {
		products = append(products, *product)
	}
	return products, nil
}

// Update delegates to override or replaces the stored product.
func (s *ProductRepositoryStub) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, product)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.Products[product.ID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	stored := *product
	s.Products[stored.ID] = &stored
	return &stored, nil
}

// Delete delegates to override or removes the stored product.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Products, id)
	return nil
}

// CartRepositoryStub allows tests to customize cart behaviour.
type CartRepositoryStub struct {
	GetFn                  func(context.Context, int64) (*model.Cart, error)
	AddItemFn              func(context.Context, int64, int64, int) error
	SetItemQuantityFn      func(context.Context, int64, int64, int) error
	RemoveItemFn           func(context.Context, int64, int64) error
	ClearFn                func(context.Context, int64) error
	PruneFn                func(context.Context, int64) error
	VendorInCartQuantityFn func(context.Context, int64) (int, error)

	Cleared int
	Pruned  int
}

func (s *CartRepositoryStub) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *CartRepositoryStub) AddItem(ctx context.Context, userID, productID int64, quantity int) error {
	if s.AddItemFn != nil {
		return s.AddItemFn(ctx, userID, productID, quantity)
	}
	return nil
}

func (s *CartRepositoryStub) SetItemQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if s.SetItemQuantityFn != nil {
		return s.SetItemQuantityFn(ctx, userID, productID, quantity)
	}
	return nil
}

func (s *CartRepositoryStub) RemoveItem(ctx context.Context, userID, productID int64) error {
	if s.RemoveItemFn != nil {
		return s.RemoveItemFn(ctx, userID, productID)
	}
	return nil
}

func (s *CartRepositoryStub) Clear(ctx context.Context, userID int64) error {
	s.Cleared++
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	return nil
}

func (s *CartRepositoryStub) Prune(ctx context.Context, userID int64) error {
	s.Pruned++
	if s.PruneFn != nil {
		return s.PruneFn(ctx, userID)
	}
	return nil
}

func (s *CartRepositoryStub) VendorInCartQuantity(ctx context.Context, vendorID int64) (int, error) {
	if s.VendorInCartQuantityFn != nil {
		return s.VendorInCartQuantityFn(ctx, vendorID)
	}
	return 0, nil
}

// WishlistRepositoryStub allows tests to customize wishlist behaviour.
type WishlistRepositoryStub struct {
	GetFn        func(context.Context, int64) (*model.Wishlist, error)
	AddItemFn    func(context.Context, int64, int64) (bool, error)
	RemoveItemFn func(context.Context, int64, int64) error
}

func (s *WishlistRepositoryStub) Get(ctx context.Context, userID int64) (*model.Wishlist, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *WishlistRepositoryStub) AddItem(ctx context.Context, userID, productID int64) (bool, error) {
	if s.AddItemFn != nil {
		return s.AddItemFn(ctx, userID, productID)
	}
	return true, nil
}

func (s *WishlistRepositoryStub) RemoveItem(ctx context.Context, userID, productID int64) error {
	if s.RemoveItemFn != nil {
		return s.RemoveItemFn(ctx, userID, productID)
	}
	return nil
}

// OrderRepositoryStub allows tests to customize order ledger behaviour.
type OrderRepositoryStub struct {
	CreateFn              func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn             func(context.Context, int64) (*model.Order, error)
	ListByUserFn          func(context.Context, int64) ([]model.Order, error)
	GetOutstandingByIDsFn func(context.Context, []int64) ([]model.Order, error)
	CancelFn              func(context.Context, *model.Order) error
	MarkDeliveredFn       func(context.Context, int64) error
	MonthlyItemCountsFn   func(context.Context, int64) (map[int]int, error)
	VendorTotalsFn        func(context.Context, int64) (int, float64, error)
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	stored := *order
	stored.ID = 1
	return &stored, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (s *OrderRepositoryStub) GetOutstandingByIDs(ctx context.Context, ids []int64) ([]model.Order, error) {
	if s.GetOutstandingByIDsFn != nil {
		return s.GetOutstandingByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (s *OrderRepositoryStub) Cancel(ctx context.Context, order *model.Order) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, order)
	}
	return nil
}

func (s *OrderRepositoryStub) MarkDelivered(ctx context.Context, orderID int64) error {
	if s.MarkDeliveredFn != nil {
		return s.MarkDeliveredFn(ctx, orderID)
	}
	return nil
}

func (s *OrderRepositoryStub) MonthlyItemCounts(ctx context.Context, vendorID int64) (map[int]int, error) {
	if s.MonthlyItemCountsFn != nil {
		return s.MonthlyItemCountsFn(ctx, vendorID)
	}
	return map[int]int{}, nil
}

func (s *OrderRepositoryStub) VendorTotals(ctx context.Context, vendorID int64) (int, float64, error) {
	if s.VendorTotalsFn != nil {
		return s.VendorTotalsFn(ctx, vendorID)
	}
	return 0, 0, nil
}

// BalanceApplyCall records an ApplyOrder invocation.
type BalanceApplyCall struct {
	UserID      int64
	Order       *model.Order
	VendorNames map[int64]string
}

// BalanceRemoveCall records a RemoveOrder invocation.
type BalanceRemoveCall struct {
	UserID     int64
	OrderID    int64
	OrderTotal float64
}

// BalanceRepositoryStub records ledger mutations and serves stored state.
type BalanceRepositoryStub struct {
	ApplyOrderFn  func(context.Context, int64, *model.Order, map[int64]string) error
	RemoveOrderFn func(context.Context, int64, int64, float64) error
	Stored        *model.AccountBalance

	ApplyCalls  []BalanceApplyCall
	RemoveCalls []BalanceRemoveCall
}

func (s *BalanceRepositoryStub) ApplyOrder(ctx context.Context, userID int64, order *model.Order, vendorNames map[int64]string) error {
	s.ApplyCalls = append(s.ApplyCalls, BalanceApplyCall{UserID: userID, Order: order, VendorNames: vendorNames})
	if s.ApplyOrderFn != nil {
		return s.ApplyOrderFn(ctx, userID, order, vendorNames)
	}
	return nil
}

func (s *BalanceRepositoryStub) RemoveOrder(ctx context.Context, userID, orderID int64, orderTotal float64) error {
	s.RemoveCalls = append(s.RemoveCalls, BalanceRemoveCall{UserID: userID, OrderID: orderID, OrderTotal: orderTotal})
	if s.RemoveOrderFn != nil {
		return s.RemoveOrderFn(ctx, userID, orderID, orderTotal)
	}
	return nil
}

func (s *BalanceRepositoryStub) GetStored(ctx context.Context, userID int64) (*model.AccountBalance, error) {
	if s.Stored != nil {
		return s.Stored, nil
	}
	return &model.AccountBalance{}, nil
}

// ReconcileEnqueueCall records an Enqueue invocation.
type ReconcileEnqueueCall struct {
	UserID  int64
	OrderID int64
	Op      model.ReconcileOp
}

// ReconcileRepositoryStub records queue operations for tests.
type ReconcileRepositoryStub struct {
	EnqueueFn     func(context.Context, int64, int64, model.ReconcileOp) error
	SelectBatchFn func(context.Context, int) ([]model.ReconcileJob, error)
	CompleteFn    func(context.Context, int64) error
	FailFn        func(context.Context, int64, string) error

	Enqueued  []ReconcileEnqueueCall
	Completed []int64
	Failed    []int64
}

func (s *ReconcileRepositoryStub) Enqueue(ctx context.Context, userID, orderID int64, op model.ReconcileOp) error {
	s.Enqueued = append(s.Enqueued, ReconcileEnqueueCall{UserID: userID, OrderID: orderID, Op: op})
	if s.EnqueueFn != nil {
		return s.EnqueueFn(ctx, userID, orderID, op)
	}
	return nil
}

func (s *ReconcileRepositoryStub) SelectBatch(ctx context.Context, limit int) ([]model.ReconcileJob, error) {
	if s.SelectBatchFn != nil {
		return s.SelectBatchFn(ctx, limit)
	}
	return nil, nil
}

func (s *ReconcileRepositoryStub) Complete(ctx context.Context, jobID int64) error {
	s.Completed = append(s.Completed, jobID)
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, jobID)
	}
	return nil
}

func (s *ReconcileRepositoryStub) Fail(ctx context.Context, jobID int64, cause string) error {
	s.Failed = append(s.Failed, jobID)
	if s.FailFn != nil {
		return s.FailFn(ctx, jobID, cause)
	}
	return nil
}
