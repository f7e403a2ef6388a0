package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/junaidrashid-git/kataplum-api/controllers/admin"
	"github.com/junaidrashid-git/kataplum-api/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API‐Key middleware.
func SetupAdminRoutes(r *gin.Engine, s *Services) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(s.Config.AdminAPIKey))
	{
		adminGroup.GET("/sessions", adminController.GetActiveCarts(s.Carts))
		adminGroup.GET("/catalog/export", adminController.ExportCatalogToExcel(s.Catalog))
		if s.Cache != nil {
			adminGroup.DELETE("/cache", adminController.PurgeCache(s.Cache))
		}
	}
}
