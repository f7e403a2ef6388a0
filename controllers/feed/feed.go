package feedControllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/kataplum-api/feed"
)

type Source interface {
	Posts(ctx context.Context) feed.Result
	Refresh(ctx context.Context) feed.Result
}

// GET /feed
func GetFeed(src Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, src.Posts(c.Request.Context()))
	}
}

// POST /feed/refresh
func RefreshFeed(src Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, src.Refresh(c.Request.Context()))
	}
}
