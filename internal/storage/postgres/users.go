package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
)

const userColumns = `id, role, name, email, password_hash,
       street, city, province, postal_code, country,
       store_name, store_slug, store_active, total_owed, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u           model.User
		role        string
		storeName   *string
		storeSlug   *string
		storeActive *bool
	)
	err := row.Scan(&u.ID, &role, &u.Name, &u.Email, &u.PasswordHash,
		&u.Address.Street, &u.Address.City, &u.Address.Province, &u.Address.PostalCode, &u.Address.Country,
		&storeName, &storeSlug, &storeActive, &u.TotalOwed, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	if storeName != nil || storeSlug != nil {
		profile := &model.VendorProfile{IsActive: true}
		if storeName != nil {
			profile.StoreName = *storeName
		}
		if storeSlug != nil {
			profile.StoreSlug = *storeSlug
		}
		if storeActive != nil {
			profile.IsActive = *storeActive
		}
		u.VendorProfile = profile
	}
	return &u, nil
}

func vendorProfileFields(u *model.User) (name, slug *string, active *bool) {
	if u.VendorProfile == nil {
		return nil, nil, nil
	}
	return &u.VendorProfile.StoreName, &u.VendorProfile.StoreSlug, &u.VendorProfile.IsActive
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (role, name, email, password_hash, street, city, province, postal_code, country, store_name, store_slug, store_active)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE(NULLIF($9, ''), 'Canada'), $10, $11, $12)
                   RETURNING id, total_owed, created_at, updated_at`
	storeName, storeSlug, storeActive := vendorProfileFields(user)
	stored := *user
	err := r.storage.pool.QueryRow(ctx, query,
		string(user.Role), user.Name, user.Email, user.PasswordHash,
		user.Address.Street, user.Address.City, user.Address.Province, user.Address.PostalCode, user.Address.Country,
		storeName, storeSlug, storeActive,
	).Scan(&stored.ID, &stored.TotalOwed, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	user, err := scanUser(r.storage.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	user, err := scanUser(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `UPDATE users
                   SET name=$2, email=$3, street=$4, city=$5, province=$6, postal_code=$7, country=$8,
                       store_name=$9, store_slug=$10, store_active=$11, updated_at=NOW()
                   WHERE id=$1
                   RETURNING ` + userColumns
	storeName, storeSlug, storeActive := vendorProfileFields(user)
	updated, err := scanUser(r.storage.pool.QueryRow(ctx, query,
		user.ID, user.Name, user.Email,
		user.Address.Street, user.Address.City, user.Address.Province, user.Address.PostalCode, user.Address.Country,
		storeName, storeSlug, storeActive,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return updated, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash=$2, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
