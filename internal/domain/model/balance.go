package model

import "time"

// VendorBalance is the stored per-vendor slice of a customer's account
// balance: a running amount plus the set of orders that produced it.
type VendorBalance struct {
	VendorID   int64
	VendorName string
	Amount     float64
	OrderIDs   []int64
}

// AccountBalance is the stored write-path bookkeeping for amounts a customer
// owes, broken down per vendor. Reads reconstruct amounts from the order
// ledger instead of trusting these fields.
type AccountBalance struct {
	TotalOwed      float64
	VendorBalances []VendorBalance
}

// BalanceOrder is one outstanding order contributing to a vendor balance,
// as surfaced by the account-balance read path.
type BalanceOrder struct {
	OrderID       int64
	OrderNumber   string
	Amount        float64
	Date          time.Time
	Status        OrderStatus
	ItemCount     int
	PaymentMethod string
}

// VendorBalanceView is the recomputed per-vendor balance returned to callers.
type VendorBalanceView struct {
	VendorID   int64
	VendorName string
	Amount     float64
	OrderCount int
	Orders     []BalanceOrder
}

// AccountBalanceView is the recomputed account balance: only vendors with a
// positive outstanding amount, with totalOwed as their sum.
type AccountBalanceView struct {
	TotalOwed      float64
	VendorBalances []VendorBalanceView
}
