package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"-"`
	Status        OrderStatus     `json:"status"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AddressID     string          `json:"addressId"`
	PaymentMethod string          `json:"paymentMethod"`
	CreatedAt     time.Time       `json:"createdAt"`
	Items         []OrderItem     `json:"items,omitempty"`
}

// OrderItem records the locked-in unit price at the moment of purchase.
// Later catalog changes never touch it.
type OrderItem struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"orderId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	PriceEach decimal.Decimal `json:"priceEach"`
}
