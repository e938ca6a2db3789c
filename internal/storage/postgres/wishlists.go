package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
)

func (r *wishlistRepository) Get(ctx context.Context, userID int64) (*model.Wishlist, error) {
	const wishlistQuery = `SELECT created_at, updated_at FROM wishlists WHERE user_id=$1`
	wishlist := model.Wishlist{UserID: userID}
	err := r.storage.pool.QueryRow(ctx, wishlistQuery, userID).Scan(&wishlist.CreatedAt, &wishlist.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `SELECT wi.product_id, wi.added_at,
                               p.id, p.name, p.description, p.price, p.stock, p.image_url,
                               p.category, p.vendor_id, p.is_active, p.created_at, p.updated_at
                        FROM wishlist_items wi
                        LEFT JOIN products p ON p.id = wi.product_id
                        WHERE wi.user_id=$1
                        ORDER BY wi.added_at`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item      model.WishlistItem
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
		if err := rows.Scan(&item.ProductID, &item.AddedAt,
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
		wishlist.Items = append(wishlist.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &wishlist, nil
}

func (r *wishlistRepository) AddItem(ctx context.Context, userID, productID int64) (bool, error) {
	var added bool
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO wishlists (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
			return err
		}
		const insert = `INSERT INTO wishlist_items (user_id, product_id)
                        VALUES ($1, $2)
                        ON CONFLICT (user_id, product_id) DO NOTHING`
		tag, err := tx.Exec(ctx, insert, userID, productID)
		if err != nil {
			return err
		}
		added = tag.RowsAffected() > 0
		if added {
			if _, err := tx.Exec(ctx, `UPDATE wishlists SET updated_at=NOW() WHERE user_id=$1`, userID); err != nil {
				return err
			}
		}
		return nil
	})
	return added, err
}

func (r *wishlistRepository) RemoveItem(ctx context.Context, userID, productID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wishlists WHERE user_id=$1)`, userID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domainErrors.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id=$1 AND product_id=$2`, userID, productID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `UPDATE wishlists SET updated_at=NOW() WHERE user_id=$1`, userID)
		return err
	})
}
