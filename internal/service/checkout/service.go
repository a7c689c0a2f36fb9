package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
	"storefront/internal/domain"
	checkoutrepo "storefront/internal/repository/checkout"
)

// Policy picks the behavior when a cart line fails its stock reservation.
type Policy string

const (
	// PolicyPartialFulfill skips short lines and charges only for the items
	// that committed.
	PolicyPartialFulfill Policy = "partial"
	// PolicyAbortOnShortage fails the whole checkout on the first short line.
	PolicyAbortOnShortage Policy = "abort"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyPartialFulfill, "":
		return PolicyPartialFulfill, nil
	case PolicyAbortOnShortage:
		return PolicyAbortOnShortage, nil
	}
	return "", fmt.Errorf("unknown stock shortage policy %q", s)
}

type addressRepo interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Address, error)
}

type cartLoader interface {
	LoadPricedCart(ctx context.Context, userID string) (domain.PricedCart, error)
}

type finalizer interface {
	Finalize(ctx context.Context, in checkoutrepo.FinalizeInput) (*domain.Order, error)
}

type Service struct {
	addresses addressRepo
	carts     cartLoader
	repo      finalizer
	policy    Policy
	logger    *log.Logger
}

func New(addresses addressRepo, carts cartLoader, repo finalizer, policy Policy, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{addresses: addresses, carts: carts, repo: repo, policy: policy, logger: logger}
}

// Checkout turns the user's cart into a priced, inventory-committed order.
// Preconditions are checked in order and short-circuit: a valid saved
// address, then a non-empty cart.
func (s *Service) Checkout(ctx context.Context, userID, addressID, paymentMethod string) (*domain.Order, error) {
	if strings.TrimSpace(paymentMethod) == "" {
		return nil, errors.New("payment method required")
	}

	if _, err := s.addresses.GetByID(ctx, userID, addressID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoAddress
		}
		return nil, err
	}

	order, err := s.finalizeOnce(ctx, userID, addressID, paymentMethod)
	if retryableTxError(err) {
		// Serialization failure or deadlock: retry exactly once against a
		// fresh read of cart and stock before surfacing the error.
		s.logger.Printf("checkout service: user=%s retrying after tx conflict: %v", userID, err)
		order, err = s.finalizeOnce(ctx, userID, addressID, paymentMethod)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Printf("checkout service: user=%s order=%s total=%s items=%d", userID, order.ID, order.TotalAmount, len(order.Items))
	return order, nil
}

func (s *Service) finalizeOnce(ctx context.Context, userID, addressID, paymentMethod string) (*domain.Order, error) {
	cart, err := s.carts.LoadPricedCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.Empty() {
		return nil, domain.ErrEmptyCart
	}

	lines := lo.Map(cart.Lines, func(l domain.PricedCartLine, _ int) checkoutrepo.Line {
		return checkoutrepo.Line{
			CartLineID: l.Line.ID,
			ProductID:  l.Line.ProductID,
			Quantity:   l.Line.Quantity,
			PriceEach:  l.UnitPriceAfterDiscount,
		}
	})

	return s.repo.Finalize(ctx, checkoutrepo.FinalizeInput{
		UserID:          userID,
		AddressID:       addressID,
		PaymentMethod:   paymentMethod,
		Total:           cart.Total,
		Lines:           lines,
		AbortOnShortage: s.policy == PolicyAbortOnShortage,
	})
}

func retryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// serialization_failure, deadlock_detected
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
