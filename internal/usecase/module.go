package usecase

import (
	"go.uber.org/fx"

	"github.com/cartcloud/backend/internal/config"
	"github.com/cartcloud/backend/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewUserUseCase,
	NewProductUseCase,
	NewCartUseCase,
	NewWishlistUseCase,
	NewBalanceUseCase,
	NewOrderUseCase,
	newPricing,
	newAnalytics,
	func(b *BalanceUseCase) Ledger { return b },
)

func newPricing(cfg *config.Config) Pricing {
	return Pricing{
		TaxRate:               cfg.TaxRate,
		ShippingFee:           cfg.ShippingFee,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
	}
}

func newAnalytics(orders repository.OrderRepository, carts repository.CartRepository, cfg *config.Config) *AnalyticsUseCase {
	return NewAnalyticsUseCase(orders, carts, cfg.AnalyticsCacheTTL)
}
