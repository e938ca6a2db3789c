package handlers

import (
	"context"

	"github.com/cartcloud/backend/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (int64, model.Role, error)
}

// UserFacade encapsulates account operations exposed via HTTP.
type UserFacade interface {
	CreateUser(ctx context.Context, in model.CreateUserInput, callerRole model.Role) (*model.User, string, error)
	User(ctx context.Context, id int64) (*model.User, error)
	Users(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id int64, in model.UpdateUserInput) (*model.User, error)
	ChangeUserPassword(ctx context.Context, id int64, current, next string) error
	DeleteUser(ctx context.Context, id int64) error
	AccountBalance(ctx context.Context, userID int64) (*model.AccountBalanceView, error)
}

// ProductFacade encapsulates catalog operations exposed via HTTP.
type ProductFacade interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Products(ctx context.Context, nameQuery string) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// CartFacade encapsulates shopping-cart operations exposed via HTTP.
type CartFacade interface {
	Cart(ctx context.Context, userID int64) (*model.Cart, error)
	AddToCart(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error)
	UpdateCartItem(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error)
	RemoveFromCart(ctx context.Context, userID, productID int64) (*model.Cart, error)
	ClearCart(ctx context.Context, userID int64) (*model.Cart, error)
}

// WishlistFacade encapsulates wishlist operations exposed via HTTP.
type WishlistFacade interface {
	Wishlist(ctx context.Context, userID int64) (*model.Wishlist, error)
	AddToWishlist(ctx context.Context, userID, productID int64) (*model.Wishlist, error)
	RemoveFromWishlist(ctx context.Context, userID, productID int64) (*model.Wishlist, error)
}

// OrderFacade encapsulates order lifecycle and analytics operations.
type OrderFacade interface {
	Checkout(ctx context.Context, userID int64, in model.CheckoutInput) (*model.Order, error)
	Order(ctx context.Context, id int64) (*model.Order, error)
	OrdersByUser(ctx context.Context, userID int64) ([]model.Order, error)
	CancelOrder(ctx context.Context, id int64, reason string) (*model.Order, error)
	DeliverOrder(ctx context.Context, id int64) (*model.Order, error)
	VendorAnalytics(ctx context.Context, vendorID int64) (*model.VendorAnalytics, error)
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	AuthFacade
	UserFacade
	ProductFacade
	CartFacade
	WishlistFacade
	OrderFacade
}
