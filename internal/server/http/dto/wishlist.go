package dto

import (
	"time"

	"github.com/cartcloud/backend/internal/domain/model"
)

// AddWishlistItemRequest saves a product reference.
type AddWishlistItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
}

// WishlistItemResponse is one populated wishlist line.
type WishlistItemResponse struct {
	ProductID int64            `json:"productId"`
	AddedAt   time.Time        `json:"addedAt"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// WishlistResponse is the populated wishlist view.
type WishlistResponse struct {
	UserID int64                  `json:"userId"`
	Items  []WishlistItemResponse `json:"items"`
}

// NewWishlistResponse converts a domain wishlist.
func NewWishlistResponse(list *model.Wishlist) WishlistResponse {
	items := make([]WishlistItemResponse, 0, len(list.Items))
	for _, item := range list.Items {
		line := WishlistItemResponse{ProductID: item.ProductID, AddedAt: item.AddedAt}
		if item.Product != nil {
			product := NewProductResponse(item.Product)
			line.Product = &product
		}
		items = append(items, line)
	}
	return WishlistResponse{UserID: list.UserID, Items: items}
}
