package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
)

const productColumns = `id, name, description, price, stock, image_url, category, vendor_id, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL,
		&p.Category, &p.VendorID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (name, description, price, stock, image_url, category, vendor_id, is_active)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING ` + productColumns
	stored, err := scanProduct(r.storage.pool.QueryRow(ctx, query,
		product.Name, product.Description, product.Price, product.Stock,
		product.ImageURL, product.Category, product.VendorID, product.IsActive))
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	product, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context, nameQuery string) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products
                   WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
                   ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, nameQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `UPDATE products
                   SET name=$2, description=$3, price=$4, stock=$5, image_url=$6, category=$7, is_active=$8, updated_at=NOW()
                   WHERE id=$1
                   RETURNING ` + productColumns
	updated, err := scanProduct(r.storage.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Stock,
		product.ImageURL, product.Category, product.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM products WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
