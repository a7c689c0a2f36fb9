// Package pricing computes discounted line prices in fixed-point decimal.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// PriceLine applies discountPct to unitPrice and multiplies by quantity.
// Both results are rounded half-up to 2 fractional digits; all arithmetic is
// decimal, never binary floating point.
func PriceLine(unitPrice decimal.Decimal, quantity, discountPct int) (unitAfterDiscount, lineTotal decimal.Decimal, err error) {
	if quantity < 1 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: quantity %d, must be >= 1", domain.ErrInvalidInput, quantity)
	}
	if discountPct < 0 || discountPct > 100 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: discount %d%%, must be in [0,100]", domain.ErrInvalidInput, discountPct)
	}
	if unitPrice.IsNegative() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: unit price %s, must be >= 0", domain.ErrInvalidInput, unitPrice)
	}

	fraction := decimal.NewFromInt(int64(discountPct)).Div(hundred)
	unitAfterDiscount = unitPrice.Mul(decimal.NewFromInt(1).Sub(fraction)).Round(2)
	lineTotal = unitAfterDiscount.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	return unitAfterDiscount, lineTotal, nil
}
