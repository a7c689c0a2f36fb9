package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
)

// The identity provider upstream authenticates the caller and forwards the
// user id in this header; the core trusts it.
const userIDHeader = "X-User-ID"

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type CartService interface {
	Add(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error)
	Remove(ctx context.Context, userID, productID string) error
	LoadPricedCart(ctx context.Context, userID string) (domain.PricedCart, error)
}

type CheckoutService interface {
	Checkout(ctx context.Context, userID, addressID, paymentMethod string) (*domain.Order, error)
}

type OrderService interface {
	Get(ctx context.Context, userID, id string) (*domain.Order, error)
	List(ctx context.Context, userID string) ([]domain.Order, error)
	Advance(ctx context.Context, userID, id string) (domain.OrderStatus, error)
	Cancel(ctx context.Context, userID, id string) (domain.OrderStatus, error)
}

type AddressStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
}

type Deps struct {
	ProductSvc  ProductService
	CartSvc     CartService
	CheckoutSvc CheckoutService
	OrderSvc    OrderService
	Addresses   AddressStore
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(allowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = allowedOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, userIDHeader)
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/products", listProductsHandler(deps.ProductSvc))
	router.GET("/products/:id", getProductHandler(deps.ProductSvc))

	authed := router.Group("/", userMiddleware())
	authed.GET("/cart", getCartHandler(deps.CartSvc))
	authed.POST("/cart/items", addCartItemHandler(deps.CartSvc))
	authed.DELETE("/cart/items/:productId", removeCartItemHandler(deps.CartSvc))
	authed.GET("/addresses", listAddressesHandler(deps.Addresses))
	authed.POST("/checkout", checkoutHandler(deps.CheckoutSvc))
	authed.GET("/orders", listOrdersHandler(deps.OrderSvc))
	authed.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
	authed.POST("/orders/:id/advance", advanceOrderHandler(deps.OrderSvc))
	authed.POST("/orders/:id/cancel", cancelOrderHandler(deps.OrderSvc))

	return router
}

const userCtxKey = "storefront.userID"

func userMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing " + userIDHeader + " header"})
			return
		}
		c.Set(userCtxKey, userID)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userCtxKey)
}

// writeError maps the core error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrNoAddress),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrOrderDelivered):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
