package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

type cartResponse struct {
	Lines []cartLineResponse `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}

type cartLineResponse struct {
	ID                     string          `json:"id"`
	ProductID              string          `json:"productId"`
	ProductName            string          `json:"productName"`
	Quantity               int             `json:"quantity"`
	UnitPrice              decimal.Decimal `json:"unitPrice"`
	UnitPriceAfterDiscount decimal.Decimal `json:"unitPriceAfterDiscount"`
	LineTotal              decimal.Decimal `json:"lineTotal"`
}

func toCartResponse(cart domain.PricedCart) cartResponse {
	lines := lo.Map(cart.Lines, func(l domain.PricedCartLine, _ int) cartLineResponse {
		return cartLineResponse{
			ID:                     l.Line.ID,
			ProductID:              l.Line.ProductID,
			ProductName:            l.ProductName,
			Quantity:               l.Line.Quantity,
			UnitPrice:              l.UnitPrice,
			UnitPriceAfterDiscount: l.UnitPriceAfterDiscount,
			LineTotal:              l.LineTotal,
		}
	})
	if lines == nil {
		lines = []cartLineResponse{}
	}
	return cartResponse{Lines: lines, Total: cart.Total}
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.LoadPricedCart(c.Request.Context(), currentUser(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

func addCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "productId and a positive quantity are required"})
			return
		}
		line, err := svc.Add(c.Request.Context(), currentUser(c), req.ProductID, req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, line)
	}
}

func removeCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Remove(c.Request.Context(), currentUser(c), c.Param("productId")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
