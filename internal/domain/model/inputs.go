package model

// CreateUserInput carries signup fields.
type CreateUserInput struct {
	Name          string
	Email         string
	Password      string
	Role          Role
	Address       Address
	VendorProfile *VendorProfile
}

// UpdateUserInput carries optional profile changes; nil fields keep their
// stored values.
type UpdateUserInput struct {
	Name          *string
	Email         *string
	Address       *Address
	VendorProfile *VendorProfile
}

// CheckoutInput carries the customer-supplied checkout fields. When the
// payment was already captured upstream, TransactionID and Status carry the
// gateway outcome; otherwise the gateway is invoked during checkout.
type CheckoutInput struct {
	ShippingAddress      Address
	PaymentMethod        string
	PaymentTransactionID string
	PaymentStatus        PaymentStatus
}
