package model

import "time"

// OrderStatus describes the order lifecycle. Terminal states are
// delivered and cancelled.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Cancellable reports whether an order in this status may still be cancelled.
// Shipped orders are deliberately excluded.
func (s OrderStatus) Cancellable() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing:
		return true
	}
	return false
}

// Deliverable reports whether an order in this status may be marked delivered.
func (s OrderStatus) Deliverable() bool {
	switch s {
	case OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped:
		return true
	}
	return false
}

// Outstanding reports whether the order still counts towards the customer's
// account balance.
func (s OrderStatus) Outstanding() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped:
		return true
	}
	return false
}

// PaymentStatus tracks the payment side of an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// OrderItem is a line item snapshotted at checkout. Name and price are
// denormalized so deleting the product later cannot corrupt the order.
type OrderItem struct {
	ProductID       int64
	Name            string
	VendorID        int64
	Quantity        int
	PriceAtPurchase float64
	Status          OrderStatus
}

// Order is created exactly once per checkout. Line-item economics are
// immutable after creation; only status fields may change.
type Order struct {
	ID                   int64
	OrderNumber          string
	UserID               int64
	Items                []OrderItem
	ShippingAddress      Address
	PaymentMethod        string
	PaymentTransactionID string
	PaymentStatus        PaymentStatus
	Subtotal             float64
	Tax                  float64
	Shipping             float64
	Total                float64
	Status               OrderStatus
	TrackingNumber       string
	Vendors              []int64
	CancellationReason   string
	CancelledAt          *time.Time
	IsInCart             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// VendorSubtotals groups line items by vendor, summing priceAtPurchase*quantity.
func (o *Order) VendorSubtotals() map[int64]float64 {
	totals := make(map[int64]float64, len(o.Vendors))
	for _, item := range o.Items {
		totals[item.VendorID] += item.PriceAtPurchase * float64(item.Quantity)
	}
	return totals
}
