package checkout

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront/internal/domain"
	checkoutrepo "storefront/internal/repository/checkout"
)

type stubAddressRepo struct {
	address *domain.Address
	err     error
}

func (s *stubAddressRepo) GetByID(_ context.Context, _, _ string) (*domain.Address, error) {
	return s.address, s.err
}

type stubCartLoader struct {
	carts []domain.PricedCart
	err   error
	calls int
}

func (s *stubCartLoader) LoadPricedCart(_ context.Context, userID string) (domain.PricedCart, error) {
	if s.err != nil {
		return domain.PricedCart{}, s.err
	}
	idx := s.calls
	if idx >= len(s.carts) {
		idx = len(s.carts) - 1
	}
	s.calls++
	cart := s.carts[idx]
	cart.UserID = userID
	return cart, nil
}

type stubFinalizer struct {
	order  *domain.Order
	errs   []error
	inputs []checkoutrepo.FinalizeInput
}

func (s *stubFinalizer) Finalize(_ context.Context, in checkoutrepo.FinalizeInput) (*domain.Order, error) {
	s.inputs = append(s.inputs, in)
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return s.order, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricedCart(total string, lines ...domain.PricedCartLine) domain.PricedCart {
	return domain.PricedCart{Lines: lines, Total: dec(total)}
}

func pricedLine(lineID, productID string, qty int, priceEach string) domain.PricedCartLine {
	return domain.PricedCartLine{
		Line:                   domain.CartLine{ID: lineID, ProductID: productID, Quantity: qty},
		UnitPriceAfterDiscount: dec(priceEach),
		LineTotal:              dec(priceEach).Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestCheckoutPaymentMethodRequired(t *testing.T) {
	svc := New(&stubAddressRepo{}, &stubCartLoader{}, &stubFinalizer{}, PolicyPartialFulfill, nil)

	_, err := svc.Checkout(context.Background(), "u1", "a1", "  ")
	require.EqualError(t, err, "payment method required")
}

func TestCheckoutNoAddress(t *testing.T) {
	carts := &stubCartLoader{carts: []domain.PricedCart{pricedCart("10.00", pricedLine("l1", "p1", 1, "10.00"))}}
	fin := &stubFinalizer{}
	svc := New(&stubAddressRepo{err: domain.ErrNotFound}, carts, fin, PolicyPartialFulfill, nil)

	_, err := svc.Checkout(context.Background(), "u1", "a1", "cod")
	require.ErrorIs(t, err, domain.ErrNoAddress)
	// The address precondition short-circuits before the cart is even read.
	assert.Zero(t, carts.calls)
	assert.Empty(t, fin.inputs)
}

func TestCheckoutEmptyCart(t *testing.T) {
	fin := &stubFinalizer{}
	svc := New(
		&stubAddressRepo{address: &domain.Address{ID: "a1"}},
		&stubCartLoader{carts: []domain.PricedCart{{}}},
		fin,
		PolicyPartialFulfill,
		nil,
	)

	_, err := svc.Checkout(context.Background(), "u1", "a1", "cod")
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, fin.inputs)
}

func TestCheckoutHappyPath(t *testing.T) {
	cart := pricedCart("270",
		pricedLine("l1", "p1", 3, "90"),
	)
	want := &domain.Order{ID: "o1", Status: domain.OrderStatusPending, TotalAmount: dec("270")}
	fin := &stubFinalizer{order: want}
	svc := New(
		&stubAddressRepo{address: &domain.Address{ID: "a1"}},
		&stubCartLoader{carts: []domain.PricedCart{cart}},
		fin,
		PolicyPartialFulfill,
		nil,
	)

	order, err := svc.Checkout(context.Background(), "u1", "a1", "card")
	require.NoError(t, err)
	assert.Equal(t, want, order)

	require.Len(t, fin.inputs, 1)
	in := fin.inputs[0]
	assert.Equal(t, "u1", in.UserID)
	assert.Equal(t, "a1", in.AddressID)
	assert.Equal(t, "card", in.PaymentMethod)
	assert.False(t, in.AbortOnShortage)
	assert.True(t, dec("270").Equal(in.Total))
	require.Len(t, in.Lines, 1)
	line := in.Lines[0]
	assert.Equal(t, "l1", line.CartLineID)
	assert.Equal(t, "p1", line.ProductID)
	assert.Equal(t, 3, line.Quantity)
	// The discounted unit price is passed through as the locked-in price.
	assert.True(t, dec("90").Equal(line.PriceEach))
}

func TestCheckoutAbortPolicyFlag(t *testing.T) {
	fin := &stubFinalizer{order: &domain.Order{ID: "o1"}}
	svc := New(
		&stubAddressRepo{address: &domain.Address{ID: "a1"}},
		&stubCartLoader{carts: []domain.PricedCart{pricedCart("10.00", pricedLine("l1", "p1", 1, "10.00"))}},
		fin,
		PolicyAbortOnShortage,
		nil,
	)

	_, err := svc.Checkout(context.Background(), "u1", "a1", "cod")
	require.NoError(t, err)
	require.Len(t, fin.inputs, 1)
	assert.True(t, fin.inputs[0].AbortOnShortage)
}

// A serialization failure retries exactly once against a fresh cart read.
func TestCheckoutRetriesOnceOnSerializationFailure(t *testing.T) {
	carts := &stubCartLoader{carts: []domain.PricedCart{pricedCart("10.00", pricedLine("l1", "p1", 1, "10.00"))}}
	fin := &stubFinalizer{
		order: &domain.Order{ID: "o1"},
		errs:  []error{&pgconn.PgError{Code: "40001"}, nil},
	}
	svc := New(&stubAddressRepo{address: &domain.Address{ID: "a1"}}, carts, fin, PolicyPartialFulfill, nil)

	order, err := svc.Checkout(context.Background(), "u1", "a1", "cod")
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, 2, carts.calls)
	assert.Len(t, fin.inputs, 2)
}

func TestCheckoutSurfacesSecondSerializationFailure(t *testing.T) {
	carts := &stubCartLoader{carts: []domain.PricedCart{pricedCart("10.00", pricedLine("l1", "p1", 1, "10.00"))}}
	fin := &stubFinalizer{
		errs: []error{&pgconn.PgError{Code: "40001"}, &pgconn.PgError{Code: "40001"}},
	}
	svc := New(&stubAddressRepo{address: &domain.Address{ID: "a1"}}, carts, fin, PolicyPartialFulfill, nil)

	_, err := svc.Checkout(context.Background(), "u1", "a1", "cod")
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Len(t, fin.inputs, 2)
}

func TestCheckoutAbortSurfacesInsufficientStock(t *testing.T) {
	fin := &stubFinalizer{errs: []error{domain.ErrInsufficientStock}}
	svc := New(
		&stubAddressRepo{address: &domain.Address{ID: "a1"}},
		&stubCartLoader{carts: []domain.PricedCart{pricedCart("10.00", pricedLine("l1", "p1", 1, "10.00"))}},
		fin,
		PolicyAbortOnShortage,
		nil,
	)

	_, err := svc.Checkout(context.Background(), "u1", "a1", "cod")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	// Not a tx conflict, so no retry.
	assert.Len(t, fin.inputs, 1)
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{in: "partial", want: PolicyPartialFulfill},
		{in: "", want: PolicyPartialFulfill},
		{in: "Abort", want: PolicyAbortOnShortage},
		{in: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
