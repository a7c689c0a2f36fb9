package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one (user, product) pairing while an order is being composed.
// Adding the same product again merges into the existing line.
type CartLine struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// PricedCartLine is a cart line joined to current product state with the
// discount already applied.
type PricedCartLine struct {
	Line                   CartLine        `json:"line"`
	ProductName            string          `json:"productName"`
	UnitPrice              decimal.Decimal `json:"unitPrice"`
	UnitPriceAfterDiscount decimal.Decimal `json:"unitPriceAfterDiscount"`
	LineTotal              decimal.Decimal `json:"lineTotal"`
}

// PricedCart is an advisory snapshot of a user's cart. It is computed from
// current catalog state and not locked; callers needing a second view reload.
type PricedCart struct {
	UserID string           `json:"-"`
	Lines  []PricedCartLine `json:"lines"`
	Total  decimal.Decimal  `json:"total"`
}

func (c PricedCart) Empty() bool {
	return len(c.Lines) == 0
}
