package checkout

import (
	"context"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

// Line is one priced cart line entering the transaction. PriceEach is the
// discounted unit price locked in at checkout time.
type Line struct {
	CartLineID string
	ProductID  string
	Quantity   int
	PriceEach  decimal.Decimal
}

type FinalizeInput struct {
	UserID        string
	AddressID     string
	PaymentMethod string
	// Total is the cart total computed before any reservations. Under
	// partial fulfillment the persisted total is recomputed from the lines
	// that actually committed.
	Total decimal.Decimal
	Lines []Line
	// AbortOnShortage rolls back the whole transaction on the first line
	// that fails its stock reservation instead of skipping it.
	AbortOnShortage bool
}

// Repository materializes a checkout: one serializable transaction that
// reserves stock, creates the order with its items and clears the converted
// cart lines, all-or-nothing.
type Repository interface {
	Finalize(ctx context.Context, in FinalizeInput) (*domain.Order, error)
}
