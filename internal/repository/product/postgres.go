package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, name, COALESCE(description, ''), price, discount, stock_quantity, COALESCE(image_url, ''), created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.DiscountPct, &p.StockQuantity, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.DiscountPct, &p.StockQuantity, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Reserve(ctx context.Context, id string, quantity int) error {
	tag, err := r.pool.Exec(ctx, reserveQuery, id, quantity)
	if err != nil {
		r.logger.Printf("product repo: reserve id=%s qty=%d error=%v", id, quantity, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// reserveQuery evaluates the stock-sufficiency predicate and the decrement
// as one atomic step. A read-then-write in separate statements would race
// with concurrent checkouts and could oversell.
const reserveQuery = `
UPDATE products
SET stock_quantity = stock_quantity - $2
WHERE id = $1 AND stock_quantity >= $2
`

// ReserveInTx runs the same conditional decrement inside a caller-owned
// transaction, so the checkout engine can reserve as part of its atomic
// commit.
func ReserveInTx(ctx context.Context, tx pgx.Tx, id string, quantity int) error {
	tag, err := tx.Exec(ctx, reserveQuery, id, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, description, price, discount, stock_quantity, image_url)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''))
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    discount = EXCLUDED.discount,
    stock_quantity = EXCLUDED.stock_quantity,
    image_url = EXCLUDED.image_url
RETURNING id::text, created_at
`
	res := p
	err := r.pool.QueryRow(ctx, q, p.ID, p.Name, p.Description, p.Price, p.DiscountPct, p.StockQuantity, p.ImageURL).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert name=%s error=%v", p.Name, err)
		return nil, err
	}
	return &res, nil
}
