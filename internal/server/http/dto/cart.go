package dto

import (
	"time"

	"github.com/cartcloud/backend/internal/domain/model"
)

// AddCartItemRequest puts a product into the cart; quantity defaults to 1.
type AddCartItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// UpdateCartItemRequest replaces the quantity of an existing cart line.
type UpdateCartItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// CartItemResponse is one populated cart line.
type CartItemResponse struct {
	ProductID int64            `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// CartResponse is the populated cart view.
type CartResponse struct {
	UserID    int64              `json:"userId"`
	Items     []CartItemResponse `json:"items"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// NewCartResponse converts a domain cart.
func NewCartResponse(cart *model.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		line := CartItemResponse{ProductID: item.ProductID, Quantity: item.Quantity}
		if item.Product != nil {
			product := NewProductResponse(item.Product)
			line.Product = &product
		}
		items = append(items, line)
	}
	return CartResponse{UserID: cart.UserID, Items: items, UpdatedAt: cart.UpdatedAt}
}
