package postgres

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
)

func (r *balanceRepository) ApplyOrder(ctx context.Context, userID int64, order *model.Order, vendorNames map[int64]string) error {
	subtotals := order.VendorSubtotals()

	// Deterministic vendor order keeps the statement sequence stable.
	vendorIDs := make([]int64, 0, len(subtotals))
	for vendorID := range subtotals {
		vendorIDs = append(vendorIDs, vendorID)
	}
	sort.Slice(vendorIDs, func(i, j int) bool { return vendorIDs[i] < vendorIDs[j] })

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const upsertBalance = `INSERT INTO vendor_balances (user_id, vendor_id, vendor_name, amount)
                               VALUES ($1, $2, $3, $4)
                               ON CONFLICT (user_id, vendor_id)
                               DO UPDATE SET amount = vendor_balances.amount + EXCLUDED.amount`
		const insertOrderRef = `INSERT INTO vendor_balance_orders (user_id, vendor_id, order_id)
                                VALUES ($1, $2, $3)
                                ON CONFLICT DO NOTHING`

		for _, vendorID := range vendorIDs {
			name := vendorNames[vendorID]
			if name == "" {
				name = "Unknown Vendor"
			}
			if _, err := tx.Exec(ctx, upsertBalance, userID, vendorID, name, subtotals[vendorID]); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, insertOrderRef, userID, vendorID, order.ID); err != nil {
				return err
			}
		}

		const updateTotal = `UPDATE users SET total_owed = total_owed + $2, updated_at=NOW() WHERE id=$1`
		tag, err := tx.Exec(ctx, updateTotal, userID, order.Total)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

func (r *balanceRepository) RemoveOrder(ctx context.Context, userID, orderID int64, orderTotal float64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM vendor_balance_orders WHERE user_id=$1 AND order_id=$2`, userID, orderID); err != nil {
			return err
		}

		// Vendor entries left with no orders disappear entirely.
		const dropEmpty = `DELETE FROM vendor_balances vb
                           WHERE vb.user_id=$1
                             AND NOT EXISTS (
                                 SELECT 1 FROM vendor_balance_orders o
                                 WHERE o.user_id = vb.user_id AND o.vendor_id = vb.vendor_id
                             )`
		if _, err := tx.Exec(ctx, dropEmpty, userID); err != nil {
			return err
		}

		const updateTotal = `UPDATE users SET total_owed = GREATEST(0, total_owed - $2), updated_at=NOW() WHERE id=$1`
		tag, err := tx.Exec(ctx, updateTotal, userID, orderTotal)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

func (r *balanceRepository) GetStored(ctx context.Context, userID int64) (*model.AccountBalance, error) {
	balance := &model.AccountBalance{}
	err := r.storage.pool.QueryRow(ctx, `SELECT total_owed FROM users WHERE id=$1`, userID).Scan(&balance.TotalOwed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const balancesQuery = `SELECT vendor_id, vendor_name, amount FROM vendor_balances WHERE user_id=$1 ORDER BY vendor_id`
	rows, err := r.storage.pool.Query(ctx, balancesQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[int64]int)
	for rows.Next() {
		var vb model.VendorBalance
		if err := rows.Scan(&vb.VendorID, &vb.VendorName, &vb.Amount); err != nil {
			return nil, err
		}
		index[vb.VendorID] = len(balance.VendorBalances)
		balance.VendorBalances = append(balance.VendorBalances, vb)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const ordersQuery = `SELECT vendor_id, order_id FROM vendor_balance_orders WHERE user_id=$1 ORDER BY vendor_id, order_id`
	orderRows, err := r.storage.pool.Query(ctx, ordersQuery, userID)
	if err != nil {
		return nil, err
	}
	defer orderRows.Close()

	for orderRows.Next() {
		var vendorID, orderID int64
		if err := orderRows.Scan(&vendorID, &orderID); err != nil {
			return nil, err
		}
		if i, ok := index[vendorID]; ok {
			balance.VendorBalances[i].OrderIDs = append(balance.VendorBalances[i].OrderIDs, orderID)
		}
	}
	if err := orderRows.Err(); err != nil {
		return nil, err
	}
	return balance, nil
}
