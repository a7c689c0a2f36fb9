package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// GetByID loads an order with its items. Orders of other users are
	// reported as domain.ErrNotFound, not as a permission error.
	GetByID(ctx context.Context, userID, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)

	// UpdateStatus moves an order from one status to another as a single
	// guarded write. It returns the order's current status after the call;
	// when the guard does not match, nothing is written and the freshly read
	// status is returned so callers can decide whether the transition is an
	// idempotent no-op or a conflict.
	UpdateStatus(ctx context.Context, userID, id string, from, to domain.OrderStatus) (domain.OrderStatus, error)
}
