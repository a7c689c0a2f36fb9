package address

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const addressColumns = `id::text, user_id, full_name, phone, street, COALESCE(address_line2, ''), city, zip_code, country, created_at`

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	const q = `
SELECT ` + addressColumns + `
FROM addresses
WHERE user_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.Street, &a.AddressLine2, &a.City, &a.ZipCode, &a.Country, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, id string) (*domain.Address, error) {
	const q = `
SELECT ` + addressColumns + `
FROM addresses
WHERE user_id = $1 AND id = $2
`
	var a domain.Address
	err := r.pool.QueryRow(ctx, q, userID, id).Scan(&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.Street, &a.AddressLine2, &a.City, &a.ZipCode, &a.Country, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) Create(ctx context.Context, a domain.Address) (*domain.Address, error) {
	const q = `
INSERT INTO addresses (user_id, full_name, phone, street, address_line2, city, zip_code, country)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
RETURNING id::text, created_at
`
	res := a
	err := r.pool.QueryRow(ctx, q, a.UserID, a.FullName, a.Phone, a.Street, a.AddressLine2, a.City, a.ZipCode, a.Country).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
