package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/kataplum-api/cart"
)

// POST /cart/quote
// Builds the WhatsApp budget request for the current cart. The browser opens
// the returned url in a new tab; nothing is sent from here.
func RequestQuote(reg *cart.Registry, baseURL, phone string) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionCart(c, reg)
		if !ok {
			return
		}

		items := store.Items()
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		message := cart.QuoteMessage(items)
		c.JSON(http.StatusOK, gin.H{
			"message": message,
			"url":     cart.QuoteURL(baseURL, phone, message),
		})
	}
}
