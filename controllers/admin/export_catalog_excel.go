package adminController

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/kataplum-api/catalog"
	log "github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"
)

type ProductLister interface {
	Products(ctx context.Context) ([]catalog.Product, error)
}

// GET /admin/catalog/export
// Dumps the normalised catalog so staff can check tags and categories.
func ExportCatalogToExcel(src ProductLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := src.Products(c.Request.Context())
		if err != nil {
			log.WithError(err).Error("❌ catalog export fetch failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Catálogo")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"ID", "Nome", "Descrição", "Categoria", "Tags", "Preço", "Imagem", "Galeria"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Category)
			row.AddCell().SetValue(strings.Join(p.Tags, ", "))
			if p.Price.Valid {
				row.AddCell().SetValue(p.Price.Decimal.InexactFloat64())
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.ImageURL)
			row.AddCell().SetValue(strings.Join(p.Gallery, ", "))
		}

		c.Header("Content-Disposition", "attachment; filename=catalogo.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
