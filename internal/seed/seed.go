package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

// DemoUserID is the trusted identity used by seeded demo data.
const DemoUserID = "demo-user"

type productSeed struct {
	ID            string
	Name          string
	Description   string
	Price         string
	DiscountPct   int
	StockQuantity int
}

// Apply inserts basic seed data for manual testing. It is idempotent: fixed
// product ids upsert, the demo address is only created once.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			ID:            "7d3f8a60-0b49-4f0e-9a2e-2f6f1b1a0001",
			Name:          "Canvas Tote",
			Description:   "Heavy cotton tote bag",
			Price:         "19.99",
			DiscountPct:   0,
			StockQuantity: 40,
		},
		{
			ID:            "7d3f8a60-0b49-4f0e-9a2e-2f6f1b1a0002",
			Name:          "Espresso Mug",
			Description:   "Ceramic double-walled mug",
			Price:         "12.50",
			DiscountPct:   10,
			StockQuantity: 25,
		},
		{
			ID:            "7d3f8a60-0b49-4f0e-9a2e-2f6f1b1a0003",
			Name:          "Desk Lamp",
			Description:   "Adjustable LED desk lamp",
			Price:         "45.00",
			DiscountPct:   25,
			StockQuantity: 3,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	if err := ensureDemoAddress(ctx, pool); err != nil {
		return fmt.Errorf("ensure demo address: %w", err)
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (id, name, description, price, discount, stock_quantity)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    discount = EXCLUDED.discount,
    stock_quantity = EXCLUDED.stock_quantity
`
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, q, p.ID, p.Name, p.Description, price, p.DiscountPct, p.StockQuantity)
	return err
}

func ensureDemoAddress(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM addresses WHERE user_id = $1`, DemoUserID).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	a := domain.Address{
		UserID:   DemoUserID,
		FullName: "Demo Shopper",
		Phone:    "+1-555-0100",
		Street:   "1 Market Street",
		City:     "Springfield",
		ZipCode:  "12345",
		Country:  "USA",
	}
	const q = `
INSERT INTO addresses (user_id, full_name, phone, street, city, zip_code, country)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := pool.Exec(ctx, q, a.UserID, a.FullName, a.Phone, a.Street, a.City, a.ZipCode, a.Country)
	return err
}
