package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
)

func (r *cartRepository) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	const cartQuery = `SELECT created_at, updated_at FROM carts WHERE user_id=$1`
	cart := model.Cart{UserID: userID}
	err := r.storage.pool.QueryRow(ctx, cartQuery, userID).Scan(&cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `SELECT ci.product_id, ci.quantity,
                               p.id, p.name, p.description, p.price, p.stock, p.image_url,
                               p.category, p.vendor_id, p.is_active, p.created_at, p.updated_at
                        FROM cart_items ci
                        LEFT JOIN products p ON p.id = ci.product_id
                        WHERE ci.user_id=$1
                        ORDER BY ci.position`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item      model.CartItem
			pID       *int64
			pName     *string
			pDesc     *string
			pPrice    *float64
			pStock    *int
			pImage    *string
			pCategory *string
			pVendor   *int64
			pActive   *bool
			pCreated  *time.Time
			pUpdated  *time.Time
		)
		if err := rows.Scan(&item.ProductID, &item.Quantity,
			&pID, &pName, &pDesc, &pPrice, &pStock, &pImage,
			&pCategory, &pVendor, &pActive, &pCreated, &pUpdated); err != nil {
			return nil, err
		}
		if pID != nil {
			item.Product = &model.Product{
				ID:          *pID,
				Name:        *pName,
				Description: *pDesc,
				Price:       *pPrice,
				Stock:       *pStock,
				ImageURL:    *pImage,
				Category:    *pCategory,
				VendorID:    *pVendor,
				IsActive:    *pActive,
				CreatedAt:   *pCreated,
				UpdatedAt:   *pUpdated,
			}
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) AddItem(ctx context.Context, userID, productID int64, quantity int) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
			return err
		}
		const upsert = `INSERT INTO cart_items (user_id, product_id, quantity)
                        VALUES ($1, $2, $3)
                        ON CONFLICT (user_id, product_id)
                        DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`
		if _, err := tx.Exec(ctx, upsert, userID, productID, quantity); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `UPDATE carts SET updated_at=NOW() WHERE user_id=$1`, userID)
		return err
	})
}

func (r *cartRepository) SetItemQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := cartExists(ctx, tx, userID); err != nil {
			return err
		}
		const update = `UPDATE cart_items SET quantity=$3 WHERE user_id=$1 AND product_id=$2`
		tag, err := tx.Exec(ctx, update, userID, productID, quantity)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrItemNotInCart
		}
		_, err = tx.Exec(ctx, `UPDATE carts SET updated_at=NOW() WHERE user_id=$1`, userID)
		return err
	})
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID, productID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := cartExists(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2`, userID, productID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `UPDATE carts SET updated_at=NOW() WHERE user_id=$1`, userID)
		return err
	})
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := cartExists(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `UPDATE carts SET updated_at=NOW() WHERE user_id=$1`, userID)
		return err
	})
}

func (r *cartRepository) Prune(ctx context.Context, userID int64) error {
	const query = `DELETE FROM cart_items ci
                   WHERE ci.user_id=$1
                     AND NOT EXISTS (SELECT 1 FROM products p WHERE p.id = ci.product_id)`
	_, err := r.storage.pool.Exec(ctx, query, userID)
	return err
}

func (r *cartRepository) VendorInCartQuantity(ctx context.Context, vendorID int64) (int, error) {
	const query = `SELECT COALESCE(SUM(ci.quantity), 0)
                   FROM cart_items ci
                   JOIN products p ON p.id = ci.product_id
                   WHERE p.vendor_id=$1`
	var total int
	if err := r.storage.pool.QueryRow(ctx, query, vendorID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func cartExists(ctx context.Context, tx pgx.Tx, userID int64) error {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM carts WHERE user_id=$1)`, userID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domainErrors.ErrNotFound
	}
	return nil
}
