package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
	"github.com/cartcloud/backend/internal/server/http/dto"
)

// OrderHandler manages order lifecycle and analytics endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /orders/user/:userId.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.facade.Checkout(c.Request.Context(), userID, model.CheckoutInput{
		ShippingAddress:      req.ShippingAddress.Address(),
		PaymentMethod:        req.PaymentMethod,
		PaymentTransactionID: req.PaymentTransactionID,
		PaymentStatus:        model.PaymentStatus(req.PaymentStatus),
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCart):
			writeError(c, http.StatusBadRequest, "Cart is empty")
		case errors.Is(err, domainErrors.ErrPaymentFailed):
			writeError(c, http.StatusBadRequest, "Payment processing failed")
		default:
			writeError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, dto.NewOrderResponse(order))
}

// Get handles GET /orders/:orderId.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			writeError(c, http.StatusNotFound, "Order not found")
		default:
			writeError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// ListByUser handles GET /orders/user/:userId.
func (h *OrderHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	orders, err := h.facade.OrdersByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, dto.NewOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel handles PATCH /orders/:orderId/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	var req dto.CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	order, err := h.facade.CancelOrder(c.Request.Context(), orderID, req.Reason)
	if err != nil {
		var notCancellable domainErrors.NotCancellableError
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			writeError(c, http.StatusNotFound, "Order not found")
		case errors.As(err, &notCancellable):
			writeError(c, http.StatusBadRequest, notCancellable.Error())
		default:
			writeError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	resp := dto.CancelOrderResponse{
		Message: "Order cancelled successfully",
		Order:   dto.NewOrderResponse(order),
	}
	if order.PaymentStatus == model.PaymentStatusRefunded {
		resp.RefundInfo = &dto.RefundInfo{
			Refunded:      true,
			Amount:        order.Total,
			TransactionID: order.PaymentTransactionID,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Deliver handles PATCH /orders/:orderId/deliver.
func (h *OrderHandler) Deliver(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}

	order, err := h.facade.DeliverOrder(c.Request.Context(), orderID)
	if err != nil {
		var notDeliverable domainErrors.NotDeliverableError
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			writeError(c, http.StatusNotFound, "Order not found")
		case errors.As(err, &notDeliverable):
			writeError(c, http.StatusBadRequest, notDeliverable.Error())
		default:
			writeError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, dto.DeliverOrderResponse{
		Message: "Order marked as delivered",
		Order:   dto.NewOrderResponse(order),
	})
}

// Analytics handles GET /orders/analytics/:vendorId.
func (h *OrderHandler) Analytics(c *gin.Context) {
	vendorID, ok := pathID(c, "vendorId")
	if !ok {
		return
	}

	analytics, err := h.facade.VendorAnalytics(c.Request.Context(), vendorID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, dto.NewAnalyticsResponse(analytics))
}
