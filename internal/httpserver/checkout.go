package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	AddressID     string `json:"addressId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

func checkoutHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "addressId and paymentMethod are required"})
			return
		}
		order, err := svc.Checkout(c.Request.Context(), currentUser(c), req.AddressID, req.PaymentMethod)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}
