package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/kataplum-api/cart"
	"github.com/junaidrashid-git/kataplum-api/catalog"
	"github.com/junaidrashid-git/kataplum-api/middleware"
)

type QuantityInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// sessionCart resolves the caller's cart from the session set by ValidateToken.
func sessionCart(c *gin.Context, reg *cart.Registry) (*cart.Store, bool) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return reg.Get(c.Request.Context(), sessionID), true
}

// view swaps missing images for the cart placeholder.
func view(s cart.Snapshot) cart.Snapshot {
	for i := range s.Items {
		s.Items[i].ImageURL = catalog.ImageOr(s.Items[i].ImageURL, catalog.ImageCart)
	}
	return s
}

// GET /cart
func GetCart(reg *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionCart(c, reg)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, view(store.Snapshot()))
	}
}

// POST /cart/items
func AddCartItem(reg *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionCart(c, reg)
		if !ok {
			return
		}

		var input cart.Candidate
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.UnitPrice.Valid && input.UnitPrice.Decimal.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unit_price must not be negative"})
			return
		}

		store.AddItem(input)
		c.JSON(http.StatusOK, view(store.Snapshot()))
	}
}

// PUT /cart/items/:id
func UpdateCartItem(reg *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionCart(c, reg)
		if !ok {
			return
		}

		var input QuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		store.UpdateQuantity(c.Param("id"), *input.Quantity)
		c.JSON(http.StatusOK, view(store.Snapshot()))
	}
}

// DELETE /cart/items/:id
func DeleteCartItem(reg *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionCart(c, reg)
		if !ok {
			return
		}
		store.RemoveItem(c.Param("id"))
		c.JSON(http.StatusOK, view(store.Snapshot()))
	}
}

// DELETE /cart
func ClearCart(reg *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionCart(c, reg)
		if !ok {
			return
		}
		store.Clear()
		c.JSON(http.StatusOK, view(store.Snapshot()))
	}
}
