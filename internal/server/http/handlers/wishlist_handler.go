package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/server/http/dto"
)

// WishlistHandler manages wishlist endpoints.
type WishlistHandler struct {
	facade WishlistFacade
}

// NewWishlistHandler constructs WishlistHandler.
func NewWishlistHandler(facade WishlistFacade) *WishlistHandler {
	return &WishlistHandler{facade: facade}
}

// Get handles GET /wishlists/:userId.
func (h *WishlistHandler) Get(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	list, err := h.facade.Wishlist(c.Request.Context(), userID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, dto.NewWishlistResponse(list))
}

// Add handles POST /wishlists/:userId.
func (h *WishlistHandler) Add(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	var req dto.AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Product ID is required")
		return
	}

	list, err := h.facade.AddToWishlist(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrProductRequired):
			writeError(c, http.StatusBadRequest, "Product ID is required")
		case errors.Is(err, domainErrors.ErrNotFound):
			writeError(c, http.StatusNotFound, "Product not found")
		default:
			writeError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewWishlistResponse(list))
}

// Remove handles DELETE /wishlists/:userId/:productId.
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	list, err := h.facade.RemoveFromWishlist(c.Request.Context(), userID, productID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			writeError(c, http.StatusNotFound, "Wishlist not found")
		default:
			writeError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewWishlistResponse(list))
}
