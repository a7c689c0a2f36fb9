package checkout

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
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

func (r *postgresRepo) Finalize(ctx context.Context, in FinalizeInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
INSERT INTO orders (user_id, status, total_amount, address_id, payment_method)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at
`
	order := domain.Order{
		UserID:        in.UserID,
		Status:        domain.OrderStatusPending,
		TotalAmount:   in.Total,
		AddressID:     in.AddressID,
		PaymentMethod: in.PaymentMethod,
	}
	if err := tx.QueryRow(ctx, insertOrder,
		in.UserID,
		string(domain.OrderStatusPending),
		in.Total,
		in.AddressID,
		in.PaymentMethod,
	).Scan(&order.ID, &order.CreatedAt); err != nil {
		return nil, err
	}

	committedTotal := decimal.Zero
	skipped := 0
	for _, line := range in.Lines {
		err := productrepo.ReserveInTx(ctx, tx, line.ProductID, line.Quantity)
		if errors.Is(err, domain.ErrInsufficientStock) {
			if in.AbortOnShortage {
				return nil, err
			}
			// Skip the line: no order item, the cart line stays, stock is
			// untouched. The conditional update already performed no write.
			r.logger.Printf("checkout repo: order=%s product=%s qty=%d skipped, insufficient stock", order.ID, line.ProductID, line.Quantity)
			skipped++
			continue
		}
		if err != nil {
			return nil, err
		}

		const insertItem = `
INSERT INTO order_items (order_id, product_id, quantity, price_each)
VALUES ($1, $2, $3, $4)
RETURNING id::text
`
		item := domain.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			PriceEach: line.PriceEach,
		}
		if err := tx.QueryRow(ctx, insertItem, order.ID, line.ProductID, line.Quantity, line.PriceEach).Scan(&item.ID); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)

		const deleteLine = `
DELETE FROM cart_items
WHERE user_id = $1 AND id = $2
`
		if _, err := tx.Exec(ctx, deleteLine, in.UserID, line.CartLineID); err != nil {
			return nil, err
		}

		committedTotal = committedTotal.Add(line.PriceEach.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	// Under partial fulfillment the order is charged only for what actually
	// committed, never for lines that were skipped.
	if skipped > 0 {
		const updateTotal = `
UPDATE orders
SET total_amount = $2
WHERE id = $1
`
		if _, err := tx.Exec(ctx, updateTotal, order.ID, committedTotal); err != nil {
			return nil, err
		}
		order.TotalAmount = committedTotal
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &order, nil
}
