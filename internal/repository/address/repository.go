package address

import (
	"context"

	"storefront/internal/domain"
)

// Repository reads the user's address book. The core never edits addresses;
// Create exists for seeding and for the external address-book collaborator.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Address, error)
	Create(ctx context.Context, a domain.Address) (*domain.Address, error)
}
