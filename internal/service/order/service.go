package order

import (
	"context"

	"storefront/internal/domain"
)

type orderRepo interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, userID, id string, from, to domain.OrderStatus) (domain.OrderStatus, error)
}

type Service struct {
	repo orderRepo
}

func New(repo orderRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Advance moves an order one step along pending -> paid -> delivered.
// Terminal orders are left untouched and their status returned, so repeated
// calls are idempotent.
func (s *Service) Advance(ctx context.Context, userID, id string) (domain.OrderStatus, error) {
	o, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return "", err
	}
	if o.Status.Terminal() {
		return o.Status, nil
	}
	// A missed guard returns whatever status a concurrent transition left
	// behind, which is the correct answer for this caller too.
	return s.repo.UpdateStatus(ctx, userID, id, o.Status, o.Status.Next())
}

// Cancel moves an order to cancelled. Allowed from pending and paid;
// cancelling an already cancelled order is a no-op; a delivered order cannot
// be cancelled. Stock is not restored.
func (s *Service) Cancel(ctx context.Context, userID, id string) (domain.OrderStatus, error) {
	o, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return "", err
	}

	status := o.Status
	// Two attempts cover a single concurrent advance between the read and
	// the guarded write.
	for range 2 {
		if status == domain.OrderStatusCancelled {
			return status, nil
		}
		if !status.CanCancel() {
			return status, domain.ErrOrderDelivered
		}
		status, err = s.repo.UpdateStatus(ctx, userID, id, status, domain.OrderStatusCancelled)
		if err != nil {
			return "", err
		}
	}

	if status != domain.OrderStatusCancelled {
		return status, domain.ErrOrderDelivered
	}
	return status, nil
}
