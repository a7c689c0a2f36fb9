package cart

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error)

	// AddLine inserts a cart line, or merges the quantity into the existing
	// line for the same (user, product) pair.
	AddLine(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error)

	// RemoveLine deletes a line owned by userID. domain.ErrNotFound when the
	// user has no line for the product.
	RemoveLine(ctx context.Context, userID, productID string) error

	// DeleteByID removes a single line regardless of product state; used by
	// the aggregator's self-heal of dangling product references.
	DeleteByID(ctx context.Context, userID, lineID string) error
}
