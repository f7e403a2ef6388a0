package routes

import (
	"github.com/gin-gonic/gin"
	catalogControllers "github.com/junaidrashid-git/kataplum-api/controllers/catalog"
	feedControllers "github.com/junaidrashid-git/kataplum-api/controllers/feed"
)

// SetupCatalogRoutes registers the public browsing endpoints.
func SetupCatalogRoutes(r *gin.Engine, s *Services) {
	// ──────────────── Browse Products ────────────────
	r.GET("/products", catalogControllers.GetProducts(s.Catalog))        // GET /products?tag=&search=
	r.GET("/products/:id", catalogControllers.GetProductByID(s.Catalog)) // GET /products/:id
	r.GET("/categories", catalogControllers.GetCategories(s.Catalog))    // GET /categories

	// ──────────────── Party Builder ────────────────
	builder := r.Group("/party-builder")
	{
		builder.GET("/steps", catalogControllers.GetPartySteps())
		builder.GET("/steps/:index", catalogControllers.GetPartyStep(s.Catalog))
	}

	// ──────────────── Social Feed ────────────────
	r.GET("/feed", feedControllers.GetFeed(s.Feed))
	r.POST("/feed/refresh", feedControllers.RefreshFeed(s.Feed))
}
