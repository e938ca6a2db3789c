package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/cartcloud/backend/internal/domain/model"
	"github.com/cartcloud/backend/internal/domain/repository"
)

// AnalyticsUseCase aggregates vendor sales figures with a short-lived
// in-process cache, so dashboard polling does not hammer the order ledger.
type AnalyticsUseCase struct {
	orders repository.OrderRepository
	carts  repository.CartRepository
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	cache map[int64]analyticsEntry
}

type analyticsEntry struct {
	value   *model.VendorAnalytics
	expires time.Time
}

// NewAnalyticsUseCase constructs AnalyticsUseCase with the given cache TTL.
func NewAnalyticsUseCase(orders repository.OrderRepository, carts repository.CartRepository, ttl time.Duration) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		orders: orders,
		carts:  carts,
		ttl:    ttl,
		now:    time.Now,
		cache:  make(map[int64]analyticsEntry),
	}
}

// Vendor returns the vendor's sales aggregates, served from cache when a
// recent computation exists.
func (u *AnalyticsUseCase) Vendor(ctx context.Context, vendorID int64) (*model.VendorAnalytics, error) {
	u.mu.Lock()
	entry, ok := u.cache[vendorID]
	u.mu.Unlock()
	if ok && u.now().Before(entry.expires) {
		return entry.value, nil
	}

	counts, err := u.orders.MonthlyItemCounts(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	monthly := make([]model.MonthlySales, len(model.MonthNames))
	for i, name := range model.MonthNames {
		monthly[i] = model.MonthlySales{Month: name, Sales: counts[i+1]}
	}

	totalSales, totalRevenue, err := u.orders.VendorTotals(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	inCart, err := u.carts.VendorInCartQuantity(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	value := &model.VendorAnalytics{
		MonthlySales: monthly,
		TotalSales:   totalSales,
		TotalRevenue: totalRevenue,
		TotalInCart:  inCart,
	}

	u.mu.Lock()
	u.cache[vendorID] = analyticsEntry{value: value, expires: u.now().Add(u.ttl)}
	u.mu.Unlock()
	return value, nil
}
