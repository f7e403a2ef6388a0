package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/junaidrashid-git/kataplum-api/controllers/cart"
	"github.com/junaidrashid-git/kataplum-api/middleware"
)

// SetupCartRoutes registers all “/cart/*” endpoints. Requires a guest token.
func SetupCartRoutes(r *gin.Engine, s *Services) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken(s.Config.JWTSecret))
	{
		cartGroup.GET("", cartControllers.GetCart(s.Carts))                  // GET /cart
		cartGroup.DELETE("", cartControllers.ClearCart(s.Carts))             // DELETE /cart
		cartGroup.POST("/items", cartControllers.AddCartItem(s.Carts))       // POST /cart/items
		cartGroup.PUT("/items/:id", cartControllers.UpdateCartItem(s.Carts)) // PUT /cart/items/:id
		cartGroup.DELETE("/items/:id", cartControllers.DeleteCartItem(s.Carts))

		cartGroup.POST("/quote", cartControllers.RequestQuote(s.Carts, s.Config.WhatsAppBaseURL, s.Config.WhatsAppNumber))
		cartGroup.GET("/export", cartControllers.ExportCartToExcel(s.Carts))

		// websocket endpoint for live cart updates
		cartGroup.GET("/ws", cartControllers.CartWebSocketHandler(s.Carts))
	}
}
