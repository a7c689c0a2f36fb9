package httpserver

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

type stubCartService struct {
	cart    domain.PricedCart
	cartErr error
	line    *domain.CartLine
	addErr  error
}

func (s *stubCartService) Add(_ context.Context, _, _ string, _ int) (*domain.CartLine, error) {
	return s.line, s.addErr
}

func (s *stubCartService) Remove(_ context.Context, _, _ string) error {
	return nil
}

func (s *stubCartService) LoadPricedCart(_ context.Context, _ string) (domain.PricedCart, error) {
	return s.cart, s.cartErr
}

type stubCheckoutService struct {
	order *domain.Order
	err   error
}

func (s *stubCheckoutService) Checkout(_ context.Context, _, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

type stubOrderService struct {
	order  *domain.Order
	err    error
	status domain.OrderStatus
}

func (s *stubOrderService) Get(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) List(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, s.err
}

func (s *stubOrderService) Advance(_ context.Context, _, _ string) (domain.OrderStatus, error) {
	return s.status, s.err
}

func (s *stubOrderService) Cancel(_ context.Context, _, _ string) (domain.OrderStatus, error) {
	return s.status, s.err
}

func testRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := log.New(os.Stdout, "[test] ", 0)
	return buildRouter(logger, nil, deps, nil)
}

func TestUserMiddleware_MissingHeader(t *testing.T) {
	router := testRouter(Deps{CartSvc: &stubCartService{}})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestGetCart(t *testing.T) {
	cart := domain.PricedCart{
		Lines: []domain.PricedCartLine{{
			Line:                   domain.CartLine{ID: "l1", ProductID: "p1", Quantity: 2},
			ProductName:            "Mug",
			UnitPrice:              decimal.RequireFromString("12.50"),
			UnitPriceAfterDiscount: decimal.RequireFromString("12.50"),
			LineTotal:              decimal.RequireFromString("25.00"),
		}},
		Total: decimal.RequireFromString("25.00"),
	}
	router := testRouter(Deps{CartSvc: &stubCartService{cart: cart}})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(userIDHeader, "u1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Lines) != 1 || resp.Lines[0].ProductName != "Mug" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if !resp.Total.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("total mismatch: %s", resp.Total)
	}
}

func TestCheckout_EmptyCartConflict(t *testing.T) {
	router := testRouter(Deps{CheckoutSvc: &stubCheckoutService{err: domain.ErrEmptyCart}})

	body := strings.NewReader(`{"addressId":"a1","paymentMethod":"cod"}`)
	req := httptest.NewRequest(http.MethodPost, "/checkout", body)
	req.Header.Set(userIDHeader, "u1")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestCheckout_MissingFields(t *testing.T) {
	router := testRouter(Deps{CheckoutSvc: &stubCheckoutService{}})

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{}`))
	req.Header.Set(userIDHeader, "u1")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCheckout_Created(t *testing.T) {
	order := &domain.Order{ID: "o1", Status: domain.OrderStatusPending, TotalAmount: decimal.RequireFromString("25.00")}
	router := testRouter(Deps{CheckoutSvc: &stubCheckoutService{order: order}})

	body := strings.NewReader(`{"addressId":"a1","paymentMethod":"card"}`)
	req := httptest.NewRequest(http.MethodPost, "/checkout", body)
	req.Header.Set(userIDHeader, "u1")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	router := testRouter(Deps{OrderSvc: &stubOrderService{err: domain.ErrNotFound}})

	req := httptest.NewRequest(http.MethodGet, "/orders/nope", nil)
	req.Header.Set(userIDHeader, "u1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCancelOrder_DeliveredConflict(t *testing.T) {
	router := testRouter(Deps{OrderSvc: &stubOrderService{status: domain.OrderStatusDelivered, err: domain.ErrOrderDelivered}})

	req := httptest.NewRequest(http.MethodPost, "/orders/o1/cancel", nil)
	req.Header.Set(userIDHeader, "u1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestAddCartItem_Invalid(t *testing.T) {
	router := testRouter(Deps{CartSvc: &stubCartService{}})

	body := strings.NewReader(`{"productId":"p1","quantity":0}`)
	req := httptest.NewRequest(http.MethodPost, "/cart/items", body)
	req.Header.Set(userIDHeader, "u1")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
