package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/server/http/dto"
)

// CartHandler manages shopping-cart endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /carts/:userId.
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	cart, err := h.facade.Cart(c.Request.Context(), userID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(cart))
}

// Add handles POST /carts/:userId.
func (h *CartHandler) Add(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Product ID is required")
		return
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	cart, err := h.facade.AddToCart(c.Request.Context(), userID, req.ProductID, quantity)
	if err != nil {
		h.writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(cart))
}

// UpdateItem handles PUT /carts/:userId.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Product ID and quantity are required")
		return
	}

	cart, err := h.facade.UpdateCartItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		h.writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(cart))
}

// RemoveItem handles DELETE /carts/:userId/:productId.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	cart, err := h.facade.RemoveFromCart(c.Request.Context(), userID, productID)
	if err != nil {
		h.writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(cart))
}

// Clear handles DELETE /carts/:userId.
func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	cart, err := h.facade.ClearCart(c.Request.Context(), userID)
	if err != nil {
		h.writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(cart))
}

func (h *CartHandler) writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrProductRequired):
		writeError(c, http.StatusBadRequest, "Product ID is required")
	case errors.Is(err, domainErrors.ErrQuantityTooSmall):
		writeError(c, http.StatusBadRequest, "Quantity must be at least 1")
	case errors.Is(err, domainErrors.ErrItemNotInCart):
		writeError(c, http.StatusNotFound, "Item not found in cart")
	case errors.Is(err, domainErrors.ErrNotFound):
		writeError(c, http.StatusNotFound, "Not found")
	default:
		writeError(c, http.StatusInternalServerError, err.Error())
	}
}
