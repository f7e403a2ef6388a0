package catalogControllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/kataplum-api/catalog"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	noticeCatalogUnavailable = "Não foi possível carregar os produtos. Tente novamente mais tarde."
	messageNoResults         = "Nenhum produto encontrado com esses filtros."
)

// Source is the catalog collaborator as seen by the storefront views.
type Source interface {
	Products(ctx context.Context) ([]catalog.Product, error)
	PartyItems(ctx context.Context) ([]catalog.Product, error)
	Product(ctx context.Context, id string) (catalog.Product, error)
}

// GET /products?tag=&search=
func GetProducts(src Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{}

		products, err := src.Products(c.Request.Context())
		if err != nil {
			log.WithError(err).Error("❌ catalog fetch failed, serving empty catalog")
			products = []catalog.Product{}
			resp["notice"] = noticeCatalogUnavailable
		}

		filtered := catalog.WithDefaultDescription(catalog.Filter(products, c.Query("tag"), c.Query("search")))
		for i := range filtered {
			filtered[i].ImageURL = catalog.ImageOr(filtered[i].ImageURL, catalog.ImageGrid)
		}

		resp["products"] = filtered
		resp["categories"] = catalog.Categories(products)
		resp["count"] = len(filtered)
		if len(filtered) == 0 {
			resp["message"] = messageNoResults
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GET /products/:id
func GetProductByID(src Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		product, err := src.Product(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
				return
			}
			log.WithFields(log.Fields{"product_id": id, "error": err}).Error("❌ failed to retrieve product")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to retrieve product", "notice": noticeCatalogUnavailable})
			return
		}

		product.ImageURL = catalog.ImageOr(product.ImageURL, catalog.ImageDetail)
		c.JSON(http.StatusOK, product)
	}
}

// GET /categories
func GetCategories(src Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := src.Products(c.Request.Context())
		if err != nil {
			log.WithError(err).Error("❌ catalog fetch failed, serving no categories")
			c.JSON(http.StatusOK, gin.H{"categories": []string{}, "notice": noticeCatalogUnavailable})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": catalog.Categories(products)})
	}
}
