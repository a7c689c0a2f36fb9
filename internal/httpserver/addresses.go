package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
)

func listAddressesHandler(store AddressStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		addresses, err := store.ListByUser(c.Request.Context(), currentUser(c))
		if err != nil {
			writeError(c, err)
			return
		}
		if addresses == nil {
			addresses = []domain.Address{}
		}
		c.JSON(http.StatusOK, addresses)
	}
}
