package adminController

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/kataplum-api/cart"
	"github.com/junaidrashid-git/kataplum-api/catalog"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

type fakePurger struct {
	n   int64
	err error
}

func (f fakePurger) Purge(context.Context) (int64, error) { return f.n, f.err }

type fakeLister struct {
	products []catalog.Product
	err      error
}

func (f fakeLister) Products(context.Context) ([]catalog.Product, error) { return f.products, f.err }

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestGetActiveCarts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := cart.NewRegistry(nil)
	reg.Get(context.Background(), "guest_a")
	reg.Get(context.Background(), "guest_b")

	r := gin.New()
	r.GET("/admin/sessions", GetActiveCarts(reg))
	w := serve(r, http.MethodGet, "/admin/sessions")
	assert.JSONEq(t, `{"active_carts":2}`, w.Body.String())
}

func TestPurgeCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/ok", PurgeCache(fakePurger{n: 3}))
	r.DELETE("/fail", PurgeCache(fakePurger{err: errors.New("locked")}))

	w := serve(r, http.MethodDelete, "/ok")
	assert.JSONEq(t, `{"purged":3}`, w.Body.String())

	w = serve(r, http.MethodDelete, "/fail")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestExportCatalogToExcel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", ExportCatalogToExcel(fakeLister{products: []catalog.Product{
		{ID: "1", Name: "Mesa", Category: "Mesas", Tags: []string{"Mesas", "Madeira"},
			Price: decimal.NewNullDecimal(decimal.NewFromInt(80))},
		{ID: "2", Name: "Cubo", Category: "Cubos", Tags: []string{"Cubos"}},
	}}))
	r.GET("/fail", ExportCatalogToExcel(fakeLister{err: errors.New("down")}))

	w := serve(r, http.MethodGet, "/ok")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "catalogo.xlsx")

	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	rows := file.Sheets[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, "Mesa", rows[1].Cells[1].String())
	assert.Equal(t, "Mesas, Madeira", rows[1].Cells[4].String())
	assert.Equal(t, "80", rows[1].Cells[5].String())

	assert.Equal(t, http.StatusBadGateway, serve(r, http.MethodGet, "/fail").Code)
}
