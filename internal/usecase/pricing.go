package usecase

import "math"

// Pricing computes checkout economics from configured rates.
type Pricing struct {
	TaxRate               float64
	ShippingFee           float64
	FreeShippingThreshold float64
}

// Quote derives tax, shipping and grand total from an items subtotal.
// Shipping is waived when the subtotal exceeds the free-shipping threshold.
func (p Pricing) Quote(subtotal float64) (tax, shipping, total float64) {
	tax = roundCents(subtotal * p.TaxRate)
	shipping = p.ShippingFee
	if subtotal > p.FreeShippingThreshold {
		shipping = 0
	}
	total = roundCents(subtotal + tax + shipping)
	return tax, shipping, total
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
