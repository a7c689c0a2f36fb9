package product

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Reserve atomically checks and decrements stock for a single product.
	// It returns domain.ErrInsufficientStock, with no mutation, when the
	// decrement would drive stock below zero.
	Reserve(ctx context.Context, id string, quantity int) error

	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
