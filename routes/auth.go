package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/kataplum-api/auth"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, s *Services) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/guest", auth.CreateGuestUser(s.DB, s.Config.JWTSecret, s.Config.SessionTTL))
	}
}
