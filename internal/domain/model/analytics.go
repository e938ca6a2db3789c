package model

// MonthlySales is a named calendar-month bucket of sold line items.
type MonthlySales struct {
	Month string
	Sales int
}

// VendorAnalytics aggregates a vendor's sales figures from the order ledger
// and the live carts.
type VendorAnalytics struct {
	MonthlySales []MonthlySales
	TotalSales   int
	TotalRevenue float64
	TotalInCart  int
}

// MonthNames lists calendar months in bucket order.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}
