package catalogControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/kataplum-api/catalog"
	log "github.com/sirupsen/logrus"
)

// GET /party-builder/steps
func GetPartySteps() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"steps": catalog.PartySteps,
			"total": len(catalog.PartySteps),
		})
	}
}

// GET /party-builder/steps/:index
func GetPartyStep(src Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step index"})
			return
		}
		if index < 0 || index >= len(catalog.PartySteps) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Step not found"})
			return
		}

		var notice string
		items, err := src.PartyItems(c.Request.Context())
		if err != nil {
			log.WithError(err).Error("❌ party items fetch failed")
			items = nil
			notice = "Erro ao buscar itens. Verifique o servidor."
		}

		step, _ := catalog.Step(index, items)
		if notice != "" {
			c.JSON(http.StatusOK, gin.H{"step": step, "notice": notice})
			return
		}
		c.JSON(http.StatusOK, gin.H{"step": step})
	}
}
