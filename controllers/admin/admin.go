package adminController

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/kataplum-api/cart"
	log "github.com/sirupsen/logrus"
)

type CachePurger interface {
	Purge(ctx context.Context) (int64, error)
}

// GET /admin/sessions
func GetActiveCarts(reg *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"active_carts": reg.Len()})
	}
}

// DELETE /admin/cache
func PurgeCache(cache CachePurger) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := cache.Purge(c.Request.Context())
		if err != nil {
			log.WithError(err).Error("❌ cache purge failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purge cache"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"purged": n})
	}
}
