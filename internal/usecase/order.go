package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/cartcloud/backend/internal/adapter/payment"
	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
	"github.com/cartcloud/backend/internal/domain/repository"
)

// Ledger is the slice of BalanceUseCase the order lifecycle needs.
type Ledger interface {
	Credit(ctx context.Context, userID int64, order *model.Order) error
	Debit(ctx context.Context, userID int64, order *model.Order) error
}

// OrderUseCase drives the order lifecycle: checkout, cancellation, delivery.
type OrderUseCase struct {
	orders    repository.OrderRepository
	carts     repository.CartRepository
	reconcile repository.ReconcileRepository
	ledger    Ledger
	payments  payment.Processor
	pricing   Pricing
	logger    *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	reconcile repository.ReconcileRepository,
	ledger Ledger,
	payments payment.Processor,
	pricing Pricing,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		carts:     carts,
		reconcile: reconcile,
		ledger:    ledger,
		payments:  payments,
		pricing:   pricing,
		logger:    logger,
	}
}

// Checkout snapshots the customer's cart into an immutable order. Line
// items whose product no longer resolves are dropped silently; a cart left
// with no resolvable lines is an empty cart. Once the order is persisted the
// request cannot fail anymore: balance-credit and cart-clear failures are
// logged and queued for retry, never surfaced.
func (u *OrderUseCase) Checkout(ctx context.Context, userID int64, in model.CheckoutInput) (*model.Order, error) {
	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrEmptyCart
		}
		return nil, err
	}

	var (
		items    []model.OrderItem
		vendors  []int64
		seen     = map[int64]bool{}
		subtotal float64
	)
	for _, line := range cart.Items {
		if line.Product == nil {
			continue
		}
		items = append(items, model.OrderItem{
			ProductID:       line.ProductID,
			Name:            line.Product.Name,
			VendorID:        line.Product.VendorID,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.Product.Price,
			Status:          model.OrderStatusPending,
		})
		subtotal += line.Product.Price * float64(line.Quantity)
		if !seen[line.Product.VendorID] {
			seen[line.Product.VendorID] = true
			vendors = append(vendors, line.Product.VendorID)
		}
	}
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	tax, shipping, total := u.pricing.Quote(subtotal)
	number := newOrderNumber()

	txnID := in.PaymentTransactionID
	payStatus := in.PaymentStatus
	if txnID == "" {
		result, err := u.payments.Process(ctx, payment.Request{
			Method:      in.PaymentMethod,
			Amount:      total,
			OrderNumber: number,
		})
		if err != nil {
			u.logger.Error("payment gateway call failed", slog.String("error", err.Error()))
			return nil, domainErrors.ErrPaymentFailed
		}
		if !result.Success {
			return nil, domainErrors.ErrPaymentFailed
		}
		txnID = result.TransactionID
		payStatus = model.PaymentStatusPaid
	}
	if payStatus == "" {
		payStatus = model.PaymentStatusPaid
	}

	created, err := u.orders.Create(ctx, &model.Order{
		OrderNumber:          number,
		UserID:               userID,
		Items:                items,
		ShippingAddress:      in.ShippingAddress,
		PaymentMethod:        in.PaymentMethod,
		PaymentTransactionID: txnID,
		PaymentStatus:        payStatus,
		Subtotal:             subtotal,
		Tax:                  tax,
		Shipping:             shipping,
		Total:                total,
		Status:               model.OrderStatusConfirmed,
		Vendors:              vendors,
	})
	if err != nil {
		return nil, err
	}

	if err := u.ledger.Credit(ctx, userID, created); err != nil {
		u.deferBalance(ctx, created, model.ReconcileOpApply, err)
	}
	if err := u.carts.Clear(ctx, userID); err != nil {
		u.logger.Warn("cart clear after checkout failed",
			slog.Int64("user_id", userID),
			slog.String("order", created.OrderNumber),
			slog.String("error", err.Error()),
		)
	}

	return created, nil
}

// GetByID fetches a single order.
func (u *OrderUseCase) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// ListByUser returns the customer's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// Cancel moves a pending, confirmed or processing order to cancelled,
// cancels its open line items and flips a paid payment to refunded. The
// balance debit follows the same deferred-failure policy as checkout.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID int64, reason string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.Cancellable() {
		return nil, domainErrors.NotCancellableError{Status: string(order.Status)}
	}

	if reason == "" {
		reason = "Customer requested cancellation"
	}
	now := time.Now()
	order.Status = model.OrderStatusCancelled
	order.CancellationReason = reason
	order.CancelledAt = &now
	for i := range order.Items {
		if order.Items[i].Status.Cancellable() {
			order.Items[i].Status = model.OrderStatusCancelled
		}
	}
	if order.PaymentStatus == model.PaymentStatusPaid {
		order.PaymentStatus = model.PaymentStatusRefunded
	}

	if err := u.orders.Cancel(ctx, order); err != nil {
		return nil, err
	}

	if err := u.ledger.Debit(ctx, order.UserID, order); err != nil {
		u.deferBalance(ctx, order, model.ReconcileOpRemove, err)
	}
	return order, nil
}

// MarkDelivered closes out a confirmed, processing or shipped order and
// removes it from the customer's outstanding balance.
func (u *OrderUseCase) MarkDelivered(ctx context.Context, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.Deliverable() {
		return nil, domainErrors.NotDeliverableError{Status: string(order.Status)}
	}

	if err := u.orders.MarkDelivered(ctx, orderID); err != nil {
		return nil, err
	}
	order.Status = model.OrderStatusDelivered

	if err := u.ledger.Debit(ctx, order.UserID, order); err != nil {
		u.deferBalance(ctx, order, model.ReconcileOpRemove, err)
	}
	return order, nil
}

// deferBalance logs a failed balance update and queues it for the
// reconciler. An enqueue failure leaves only the log trail.
func (u *OrderUseCase) deferBalance(ctx context.Context, order *model.Order, op model.ReconcileOp, cause error) {
	u.logger.Error("balance update failed, queueing for retry",
		slog.Int64("user_id", order.UserID),
		slog.String("order", order.OrderNumber),
		slog.String("op", string(op)),
		slog.String("error", cause.Error()),
	)
	if err := u.reconcile.Enqueue(ctx, order.UserID, order.ID, op); err != nil {
		u.logger.Error("balance reconcile enqueue failed",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
}

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newOrderNumber builds a human-readable order number: millisecond epoch
// plus a short random base36 suffix. Uniqueness is enforced by the database.
func newOrderNumber() string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = orderNumberAlphabet[rand.IntN(len(orderNumberAlphabet))]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}
