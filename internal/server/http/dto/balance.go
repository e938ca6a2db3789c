package dto

import (
	"time"

	"github.com/cartcloud/backend/internal/domain/model"
)

// BalanceOrderResponse is one outstanding order inside a vendor balance.
type BalanceOrderResponse struct {
	OrderID       int64     `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	ItemCount     int       `json:"itemCount"`
	PaymentMethod string    `json:"paymentMethod"`
}

// VendorBalanceResponse is the recomputed per-vendor amount owed.
type VendorBalanceResponse struct {
	VendorID   int64                  `json:"vendorId"`
	VendorName string                 `json:"vendorName"`
	Amount     float64                `json:"amount"`
	OrderCount int                    `json:"orderCount"`
	Orders     []BalanceOrderResponse `json:"orders"`
}

// AccountBalanceResponse is the reconstructed account balance.
type AccountBalanceResponse struct {
	TotalOwed      float64                 `json:"totalOwed"`
	VendorBalances []VendorBalanceResponse `json:"vendorBalances"`
}

// NewAccountBalanceResponse converts the domain view.
func NewAccountBalanceResponse(view *model.AccountBalanceView) AccountBalanceResponse {
	vendors := make([]VendorBalanceResponse, 0, len(view.VendorBalances))
	for _, vb := range view.VendorBalances {
		orders := make([]BalanceOrderResponse, 0, len(vb.Orders))
		for _, o := range vb.Orders {
			orders = append(orders, BalanceOrderResponse{
				OrderID:       o.OrderID,
				OrderNumber:   o.OrderNumber,
				Amount:        o.Amount,
				Date:          o.Date,
				Status:        string(o.Status),
				ItemCount:     o.ItemCount,
				PaymentMethod: o.PaymentMethod,
			})
		}
		vendors = append(vendors, VendorBalanceResponse{
			VendorID:   vb.VendorID,
			VendorName: vb.VendorName,
			Amount:     vb.Amount,
			OrderCount: vb.OrderCount,
			Orders:     orders,
		})
	}
	return AccountBalanceResponse{TotalOwed: view.TotalOwed, VendorBalances: vendors}
}
