package order

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

const orderColumns = `id::text, user_id, status, total_amount, address_id::text, payment_method, created_at`

func (r *postgresRepo) GetByID(ctx context.Context, userID, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1 AND id = $2
`
	var o domain.Order
	var status string
	err := r.pool.QueryRow(ctx, q, userID, id).Scan(&o.ID, &o.UserID, &status, &o.TotalAmount, &o.AddressID, &o.PaymentMethod, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	o.Status, err = domain.ToOrderStatus(status)
	if err != nil {
		return nil, err
	}

	o.Items, err = r.fetchItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(&o.ID, &o.UserID, &status, &o.TotalAmount, &o.AddressID, &o.PaymentMethod, &o.CreatedAt); err != nil {
			return nil, err
		}
		if o.Status, err = domain.ToOrderStatus(status); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, userID, id string, from, to domain.OrderStatus) (domain.OrderStatus, error) {
	// The guard on the current status makes the transition atomic with
	// respect to concurrent lifecycle calls for the same order.
	const q = `
UPDATE orders
SET status = $4
WHERE user_id = $1 AND id = $2 AND status = $3
RETURNING status
`
	var status string
	err := r.pool.QueryRow(ctx, q, userID, id, string(from), string(to)).Scan(&status)
	if err == nil {
		return domain.ToOrderStatus(status)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Printf("order repo: update status id=%s %s->%s error=%v", id, from, to, err)
		return "", err
	}

	// Guard missed: either the order does not exist or it is no longer in
	// the expected status. Re-read to tell the two apart.
	const current = `
SELECT status
FROM orders
WHERE user_id = $1 AND id = $2
`
	if err := r.pool.QueryRow(ctx, current, userID, id).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return domain.ToOrderStatus(status)
}

func (r *postgresRepo) fetchItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT id::text, order_id::text, product_id::text, quantity, price_each
FROM order_items
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.PriceEach); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
