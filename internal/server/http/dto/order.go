package dto

import (
	"time"

	"github.com/cartcloud/backend/internal/domain/model"
)

// CheckoutRequest describes the order placement payload. Client-computed
// totals are accepted for wire compatibility but recomputed server-side.
type CheckoutRequest struct {
	ShippingAddress      AddressPayload `json:"shippingAddress"`
	PaymentMethod        string         `json:"paymentMethod"`
	PaymentTransactionID string         `json:"paymentTransactionId"`
	PaymentStatus        string         `json:"paymentStatus"`
	Subtotal             float64        `json:"subtotal"`
	Tax                  float64        `json:"tax"`
	Shipping             float64        `json:"shipping"`
	Total                float64        `json:"total"`
}

// CancelOrderRequest carries the optional cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// OrderItemResponse is one snapshotted line item.
type OrderItemResponse struct {
	ProductID       int64   `json:"productId"`
	Name            string  `json:"name"`
	VendorID        int64   `json:"vendorId"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
	Status          string  `json:"status"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID                   int64               `json:"id"`
	OrderNumber          string              `json:"orderNumber"`
	UserID               int64               `json:"userId"`
	Items                []OrderItemResponse `json:"items"`
	ShippingAddress      AddressPayload      `json:"shippingAddress"`
	PaymentMethod        string              `json:"paymentMethod"`
	PaymentTransactionID string              `json:"paymentTransactionId"`
	PaymentStatus        string              `json:"paymentStatus"`
	Subtotal             float64             `json:"subtotal"`
	Tax                  float64             `json:"tax"`
	Shipping             float64             `json:"shipping"`
	Total                float64             `json:"total"`
	Status               string              `json:"status"`
	TrackingNumber       string              `json:"trackingNumber,omitempty"`
	Vendors              []int64             `json:"vendors"`
	CancellationReason   string              `json:"cancellationReason,omitempty"`
	CancelledAt          *time.Time          `json:"cancelledAt,omitempty"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

// RefundInfo reports the simulated refund issued on cancellation.
type RefundInfo struct {
	Refunded      bool    `json:"refunded"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transactionId"`
}

// CancelOrderResponse wraps the cancelled order with refund details.
type CancelOrderResponse struct {
	Message    string        `json:"message"`
	Order      OrderResponse `json:"order"`
	RefundInfo *RefundInfo   `json:"refundInfo,omitempty"`
}

// DeliverOrderResponse wraps the delivered order.
type DeliverOrderResponse struct {
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

// NewOrderResponse converts a domain order.
func NewOrderResponse(order *model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID:       item.ProductID,
			Name:            item.Name,
			VendorID:        item.VendorID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
			Status:          string(item.Status),
		})
	}
	return OrderResponse{
		ID:                   order.ID,
		OrderNumber:          order.OrderNumber,
		UserID:               order.UserID,
		Items:                items,
		ShippingAddress:      NewAddressPayload(order.ShippingAddress),
		PaymentMethod:        order.PaymentMethod,
		PaymentTransactionID: order.PaymentTransactionID,
		PaymentStatus:        string(order.PaymentStatus),
		Subtotal:             order.Subtotal,
		Tax:                  order.Tax,
		Shipping:             order.Shipping,
		Total:                order.Total,
		Status:               string(order.Status),
		TrackingNumber:       order.TrackingNumber,
		Vendors:              order.Vendors,
		CancellationReason:   order.CancellationReason,
		CancelledAt:          order.CancelledAt,
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
	}
}
