package dto

import "github.com/cartcloud/backend/internal/domain/model"

// MonthlySalesResponse is one calendar-month bucket.
type MonthlySalesResponse struct {
	Month string `json:"month"`
	Sales int    `json:"sales"`
}

// AnalyticsResponse is the vendor sales dashboard payload.
type AnalyticsResponse struct {
	MonthlySales []MonthlySalesResponse `json:"monthlySales"`
	TotalSales   int                    `json:"totalSales"`
	TotalRevenue float64                `json:"totalRevenue"`
	TotalInCart  int                    `json:"totalInCart"`
}

// NewAnalyticsResponse converts the domain aggregates.
func NewAnalyticsResponse(a *model.VendorAnalytics) AnalyticsResponse {
	monthly := make([]MonthlySalesResponse, 0, len(a.MonthlySales))
	for _, m := range a.MonthlySales {
		monthly = append(monthly, MonthlySalesResponse{Month: m.Month, Sales: m.Sales})
	}
	return AnalyticsResponse{
		MonthlySales: monthly,
		TotalSales:   a.TotalSales,
		TotalRevenue: a.TotalRevenue,
		TotalInCart:  a.TotalInCart,
	}
}
