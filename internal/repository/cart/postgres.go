package cart

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error) {
	const q = `
SELECT id::text, user_id, product_id::text, quantity, created_at
FROM cart_items
WHERE user_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ID, &line.UserID, &line.ProductID, &line.Quantity, &line.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *postgresRepo) AddLine(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error) {
	const q = `
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, product_id) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING id::text, user_id, product_id::text, quantity, created_at
`
	var line domain.CartLine
	err := r.pool.QueryRow(ctx, q, userID, productID, quantity).Scan(
		&line.ID,
		&line.UserID,
		&line.ProductID,
		&line.Quantity,
		&line.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *postgresRepo) RemoveLine(ctx context.Context, userID, productID string) error {
	const q = `
DELETE FROM cart_items
WHERE user_id = $1 AND product_id = $2
`
	cmd, err := r.pool.Exec(ctx, q, userID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteByID(ctx context.Context, userID, lineID string) error {
	const q = `
DELETE FROM cart_items
WHERE user_id = $1 AND id = $2
`
	cmd, err := r.pool.Exec(ctx, q, userID, lineID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
