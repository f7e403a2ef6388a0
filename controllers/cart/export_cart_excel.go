package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/kataplum-api/cart"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

// GET /cart/export
func ExportCartToExcel(reg *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionCart(c, reg)
		if !ok {
			return
		}
		snap := store.Snapshot()

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orçamento")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"ID", "Item", "Categoria", "Quantidade", "Preço unitário", "Subtotal"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, it := range snap.Items {
			row := sheet.AddRow()
			row.AddCell().SetValue(it.ID)
			row.AddCell().SetValue(it.Name)
			row.AddCell().SetValue(it.Category)
			row.AddCell().SetValue(it.Quantity)
			if it.UnitPrice.Valid {
				subtotal := it.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(it.Quantity)))
				row.AddCell().SetValue(it.UnitPrice.Decimal.InexactFloat64())
				row.AddCell().SetValue(subtotal.InexactFloat64())
			} else {
				row.AddCell().SetValue("")
				row.AddCell().SetValue("")
			}
		}

		total := sheet.AddRow()
		total.AddCell().SetValue("")
		total.AddCell().SetValue("Total")
		total.AddCell().SetValue("")
		total.AddCell().SetValue(snap.TotalItemCount)
		total.AddCell().SetValue("")
		if snap.Priced {
			total.AddCell().SetValue(snap.TotalPrice.InexactFloat64())
		} else {
			total.AddCell().SetValue("")
		}

		c.Header("Content-Disposition", "attachment; filename=orcamento.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
