package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductRequired    = errors.New("product id is required")
	ErrQuantityTooSmall   = errors.New("quantity must be at least 1")
	ErrItemNotInCart      = errors.New("product not in cart")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPaymentFailed      = errors.New("payment failed")
)

// NotCancellableError reports an order in a status outside the cancellable set.
type NotCancellableError struct {
	Status string
}

func (e NotCancellableError) Error() string {
	return fmt.Sprintf("orders with status '%s' cannot be cancelled. Only orders that are pending, confirmed, or processing can be cancelled", e.Status)
}

// NotDeliverableError reports an order that cannot be marked delivered.
type NotDeliverableError struct {
	Status string
}

func (e NotDeliverableError) Error() string {
	return fmt.Sprintf("orders with status '%s' cannot be marked as delivered", e.Status)
}
