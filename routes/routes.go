package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/kataplum-api/cache"
	"github.com/junaidrashid-git/kataplum-api/cart"
	catalogControllers "github.com/junaidrashid-git/kataplum-api/controllers/catalog"
	feedControllers "github.com/junaidrashid-git/kataplum-api/controllers/feed"
	"github.com/junaidrashid-git/kataplum-api/config"
	"gorm.io/gorm"
)

// Services bundles what the handlers depend on. Every view shares the same
// cart registry.
type Services struct {
	Config  config.Config
	DB      *gorm.DB
	Catalog catalogControllers.Source
	Feed    feedControllers.Source
	Carts   *cart.Registry
	Cache   *cache.Store
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, s *Services) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// 1️⃣ Guest sessions (no middleware)
	SetupAuthRoutes(r, s)

	// 2️⃣ Public storefront: catalog, party builder, feed
	SetupCatalogRoutes(r, s)

	// 3️⃣ Session cart (JWT-protected)
	SetupCartRoutes(r, s)

	// 4️⃣ Admin (API-Key-protected)
	SetupAdminRoutes(r, s)
}
