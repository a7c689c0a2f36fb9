package cart

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

type cartRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error)
	AddLine(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error)
	RemoveLine(ctx context.Context, userID, productID string) error
	DeleteByID(ctx context.Context, userID, lineID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	repo     cartRepo
	products productRepo
	logger   *log.Logger
}

func New(repo cartRepo, products productRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, products: products, logger: logger}
}

// Add puts quantity of a product into the user's cart, merging into the
// existing line for the same product.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error) {
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.AddLine(ctx, userID, productID, quantity)
}

func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	return s.repo.RemoveLine(ctx, userID, productID)
}

// LoadPricedCart joins the user's cart lines to current product state and
// prices each line. Lines whose product no longer exists are deleted as a
// side effect and excluded from the result. The returned snapshot is
// advisory; callers needing it twice must reload.
func (s *Service) LoadPricedCart(ctx context.Context, userID string) (domain.PricedCart, error) {
	cart := domain.PricedCart{UserID: userID}

	lines, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return cart, err
	}

	for _, line := range lines {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			if err := s.healOrphan(ctx, line); err != nil {
				return cart, err
			}
			continue
		}
		if err != nil {
			return cart, err
		}

		unitAfter, lineTotal, err := pricing.PriceLine(product.Price, line.Quantity, product.DiscountPct)
		if err != nil {
			return cart, err
		}

		cart.Lines = append(cart.Lines, domain.PricedCartLine{
			Line:                   line,
			ProductName:            product.Name,
			UnitPrice:              product.Price,
			UnitPriceAfterDiscount: unitAfter,
			LineTotal:              lineTotal,
		})
		cart.Total = cart.Total.Add(lineTotal)
	}

	return cart, nil
}

// healOrphan removes a cart line whose product reference dangles. A line
// deleted by a concurrent checkout is not an error.
func (s *Service) healOrphan(ctx context.Context, line domain.CartLine) error {
	s.logger.Printf("cart service: removing orphaned line id=%s product=%s", line.ID, line.ProductID)
	err := s.repo.DeleteByID(ctx, line.UserID, line.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}
