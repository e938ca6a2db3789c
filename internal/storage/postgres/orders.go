package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
)

const orderColumns = `id, order_number, user_id,
       street, city, province, postal_code, country,
       payment_method, payment_transaction_id, payment_status,
       subtotal, tax, shipping, total, status, tracking_number,
       cancellation_reason, cancelled_at, is_in_cart, created_at, updated_at`

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o             model.Order
		status        string
		paymentStatus string
	)
	err := row.Scan(&o.ID, &o.OrderNumber, &o.UserID,
		&o.ShippingAddress.Street, &o.ShippingAddress.City, &o.ShippingAddress.Province,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country,
		&o.PaymentMethod, &o.PaymentTransactionID, &paymentStatus,
		&o.Subtotal, &o.Tax, &o.Shipping, &o.Total, &status, &o.TrackingNumber,
		&o.CancellationReason, &o.CancelledAt, &o.IsInCart, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Status = model.OrderStatus(status)
	o.PaymentStatus = model.PaymentStatus(paymentStatus)
	return &o, nil
}

func loadOrderItems(ctx context.Context, q querier, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT product_id, name, vendor_id, quantity, price_at_purchase, status
                   FROM order_items WHERE order_id=$1 ORDER BY position`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var (
			item   model.OrderItem
			status string
		)
		if err := rows.Scan(&item.ProductID, &item.Name, &item.VendorID, &item.Quantity, &item.PriceAtPurchase, &status); err != nil {
			return nil, err
		}
		item.Status = model.OrderStatus(status)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func loadOrderVendors(ctx context.Context, q querier, orderID int64) ([]int64, error) {
	const query = `SELECT vendor_id FROM order_vendors WHERE order_id=$1 ORDER BY vendor_id`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		vendors = append(vendors, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	stored := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (order_number, user_id, street, city, province, postal_code, country,
                                 payment_method, payment_transaction_id, payment_status,
                                 subtotal, tax, shipping, total, status, is_in_cart)
                             VALUES ($1, $2, $3, $4, $5, $6, COALESCE(NULLIF($7, ''), 'Canada'),
                                     $8, $9, $10, $11, $12, $13, $14, $15, $16)
                             RETURNING id, country, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.OrderNumber, order.UserID,
			order.ShippingAddress.Street, order.ShippingAddress.City, order.ShippingAddress.Province,
			order.ShippingAddress.PostalCode, order.ShippingAddress.Country,
			order.PaymentMethod, order.PaymentTransactionID, string(order.PaymentStatus),
			order.Subtotal, order.Tax, order.Shipping, order.Total, string(order.Status), order.IsInCart,
		).Scan(&stored.ID, &stored.ShippingAddress.Country, &stored.CreatedAt, &stored.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, position, product_id, name, vendor_id, quantity, price_at_purchase, status)
                            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		for i, item := range order.Items {
			if _, err := tx.Exec(ctx, insertItem, stored.ID, i+1,
				item.ProductID, item.Name, item.VendorID, item.Quantity, item.PriceAtPurchase, string(item.Status)); err != nil {
				return err
			}
		}

		const insertVendor = `INSERT INTO order_vendors (order_id, vendor_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
		for _, vendorID := range order.Vendors {
			if _, err := tx.Exec(ctx, insertVendor, stored.ID, vendorID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if order.Items, err = loadOrderItems(ctx, r.storage.pool, id); err != nil {
		return nil, err
	}
	if order.Vendors, err = loadOrderVendors(ctx, r.storage.pool, id); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + `
                   FROM orders WHERE user_id=$1 AND is_in_cart=FALSE
                   ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if result[i].Items, err = loadOrderItems(ctx, r.storage.pool, result[i].ID); err != nil {
			return nil, err
		}
		if result[i].Vendors, err = loadOrderVendors(ctx, r.storage.pool, result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *orderRepository) GetOutstandingByIDs(ctx context.Context, ids []int64) ([]model.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `SELECT ` + orderColumns + `
                   FROM orders
                   WHERE id = ANY($1) AND status IN ('pending', 'confirmed', 'processing', 'shipped')
                   ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if result[i].Items, err = loadOrderItems(ctx, r.storage.pool, result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *orderRepository) Cancel(ctx context.Context, order *model.Order) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateOrder = `UPDATE orders
                             SET status=$2, payment_status=$3, cancellation_reason=$4, cancelled_at=$5, updated_at=NOW()
                             WHERE id=$1`
		tag, err := tx.Exec(ctx, updateOrder, order.ID,
			string(order.Status), string(order.PaymentStatus), order.CancellationReason, order.CancelledAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		const updateItems = `UPDATE order_items SET status='cancelled'
                             WHERE order_id=$1 AND status IN ('pending', 'confirmed', 'processing')`
		_, err = tx.Exec(ctx, updateItems, order.ID)
		return err
	})
}

func (r *orderRepository) MarkDelivered(ctx context.Context, orderID int64) error {
	const query = `UPDATE orders SET status='delivered', updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) MonthlyItemCounts(ctx context.Context, vendorID int64) (map[int]int, error) {
	const query = `SELECT EXTRACT(MONTH FROM o.created_at)::int AS month, COUNT(*)
                   FROM order_items i
                   JOIN orders o ON o.id = i.order_id
                   WHERE i.vendor_id=$1
                   GROUP BY month
                   ORDER BY month`
	rows, err := r.storage.pool.Query(ctx, query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var month, count int
		if err := rows.Scan(&month, &count); err != nil {
			return nil, err
		}
		counts[month] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *orderRepository) VendorTotals(ctx context.Context, vendorID int64) (int, float64, error) {
	const query = `SELECT COALESCE(SUM(quantity), 0)::bigint,
                          COALESCE(SUM(quantity * price_at_purchase), 0)::double precision
                   FROM order_items WHERE vendor_id=$1`
	var (
		totalSales   int64
		totalRevenue float64
	)
	if err := r.storage.pool.QueryRow(ctx, query, vendorID).Scan(&totalSales, &totalRevenue); err != nil {
		return 0, 0, err
	}
	return int(totalSales), totalRevenue, nil
}
