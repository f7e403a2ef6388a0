package cartControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/kataplum-api/cart"
	"github.com/junaidrashid-git/kataplum-api/catalog"
	"github.com/junaidrashid-git/kataplum-api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

// withSession stands in for ValidateToken.
func withSession(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id != "" {
			c.Set(middleware.SessionKey, id)
		}
		c.Next()
	}
}

func newCartRouter(reg *cart.Registry, session string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/cart", withSession(session))
	g.GET("", GetCart(reg))
	g.DELETE("", ClearCart(reg))
	g.POST("/items", AddCartItem(reg))
	g.PUT("/items/:id", UpdateCartItem(reg))
	g.DELETE("/items/:id", DeleteCartItem(reg))
	g.POST("/quote", RequestQuote(reg, "https://wa.me", "5561996291414"))
	g.GET("/export", ExportCartToExcel(reg))
	g.GET("/ws", CartWebSocketHandler(reg))
	return r
}

func do(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type snapshotResponse struct {
	Items []struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		ImageURL  string  `json:"image_url"`
		Quantity  int     `json:"quantity"`
		UnitPrice *string `json:"unit_price"`
	} `json:"items"`
	TotalItemCount int    `json:"total_item_count"`
	TotalPrice     string `json:"total_price"`
	Priced         bool   `json:"priced"`
}

func decodeSnapshot(t *testing.T, w *httptest.ResponseRecorder) snapshotResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var s snapshotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	return s
}

func TestCartHandlers_Flow(t *testing.T) {
	reg := cart.NewRegistry(nil)
	r := newCartRouter(reg, "guest_a")

	s := decodeSnapshot(t, do(t, r, http.MethodGet, "/cart", ""))
	assert.Empty(t, s.Items)
	assert.Equal(t, 0, s.TotalItemCount)

	do(t, r, http.MethodPost, "/cart/items", `{"id":"1","name":"Balloon Arch"}`)
	s = decodeSnapshot(t, do(t, r, http.MethodPost, "/cart/items", `{"id":"1","name":"Balloon Arch"}`))
	require.Len(t, s.Items, 1)
	assert.Equal(t, 2, s.Items[0].Quantity)
	assert.Equal(t, catalog.PlaceholderImage(catalog.ImageCart), s.Items[0].ImageURL)
	assert.Nil(t, s.Items[0].UnitPrice)

	do(t, r, http.MethodPost, "/cart/items", `{"id":"2","name":"Table","unit_price":"50"}`)
	s = decodeSnapshot(t, do(t, r, http.MethodPut, "/cart/items/2", `{"quantity":3}`))
	assert.Equal(t, 5, s.TotalItemCount)
	assert.Equal(t, "150", s.TotalPrice)
	assert.True(t, s.Priced)

	s = decodeSnapshot(t, do(t, r, http.MethodPut, "/cart/items/1", `{"quantity":0}`))
	require.Len(t, s.Items, 1)
	assert.Equal(t, "2", s.Items[0].ID)
	assert.Equal(t, 3, s.Items[0].Quantity)

	s = decodeSnapshot(t, do(t, r, http.MethodDelete, "/cart/items/99", ""))
	assert.Len(t, s.Items, 1)

	s = decodeSnapshot(t, do(t, r, http.MethodDelete, "/cart", ""))
	assert.Empty(t, s.Items)
	assert.Equal(t, 0, s.TotalItemCount)
	assert.Equal(t, "0", s.TotalPrice)

	// The stored line keeps its real (empty) image; only the view is patched.
	reg.Get(context.Background(), "guest_a").AddItem(cart.Candidate{ID: "x", Name: "X"})
	assert.Empty(t, reg.Get(context.Background(), "guest_a").Items()[0].ImageURL)
}

func TestCartHandlers_Validation(t *testing.T) {
	r := newCartRouter(cart.NewRegistry(nil), "guest_a")

	tests := []struct {
		name, method, target, body string
	}{
		{"missing name", http.MethodPost, "/cart/items", `{"id":"1"}`},
		{"missing id", http.MethodPost, "/cart/items", `{"name":"Arch"}`},
		{"negative price", http.MethodPost, "/cart/items", `{"id":"1","name":"Arch","unit_price":"-1"}`},
		{"malformed json", http.MethodPost, "/cart/items", `{`},
		{"missing quantity", http.MethodPut, "/cart/items/1", `{}`},
		{"non numeric quantity", http.MethodPut, "/cart/items/1", `{"quantity":"two"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCartHandlers_NoSession(t *testing.T) {
	r := newCartRouter(cart.NewRegistry(nil), "")
	for _, target := range []string{"/cart", "/cart/export"} {
		assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, target, "").Code)
	}
}

func TestCartHandlers_SessionsAreIsolated(t *testing.T) {
	reg := cart.NewRegistry(nil)
	a := newCartRouter(reg, "guest_a")
	b := newCartRouter(reg, "guest_b")

	do(t, a, http.MethodPost, "/cart/items", `{"id":"1","name":"Arch"}`)
	assert.Empty(t, decodeSnapshot(t, do(t, b, http.MethodGet, "/cart", "")).Items)
	assert.Len(t, decodeSnapshot(t, do(t, a, http.MethodGet, "/cart", "")).Items, 1)
}

func TestRequestQuote(t *testing.T) {
	r := newCartRouter(cart.NewRegistry(nil), "guest_a")

	w := do(t, r, http.MethodPost, "/cart/quote", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")

	do(t, r, http.MethodPost, "/cart/items", `{"id":"1","name":"Balloon Arch"}`)
	do(t, r, http.MethodPost, "/cart/items", `{"id":"1","name":"Balloon Arch"}`)
	do(t, r, http.MethodPost, "/cart/items", `{"id":"2","name":"Table","unit_price":"50"}`)

	w = do(t, r, http.MethodPost, "/cart/quote", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
		URL     string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "2x Balloon Arch\n1x Table")
	assert.True(t, strings.HasPrefix(resp.URL, "https://wa.me/5561996291414?text="))

	u, err := url.Parse(resp.URL)
	require.NoError(t, err)
	assert.Equal(t, resp.Message, u.Query().Get("text"))
}

func TestExportCartToExcel(t *testing.T) {
	r := newCartRouter(cart.NewRegistry(nil), "guest_a")
	do(t, r, http.MethodPost, "/cart/items", `{"id":"1","name":"Balloon Arch","category":"Elementos"}`)
	do(t, r, http.MethodPost, "/cart/items", `{"id":"2","name":"Table","unit_price":"50"}`)
	do(t, r, http.MethodPut, "/cart/items/2", `{"quantity":3}`)

	w := do(t, r, http.MethodGet, "/cart/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orcamento.xlsx")

	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	rows := file.Sheets[0].Rows
	require.Len(t, rows, 4)
	assert.Equal(t, "Item", rows[0].Cells[1].String())
	assert.Equal(t, "Balloon Arch", rows[1].Cells[1].String())
	assert.Equal(t, "Elementos", rows[1].Cells[2].String())
	assert.Equal(t, "", rows[1].Cells[4].String())
	assert.Equal(t, "150", rows[2].Cells[5].String())
	assert.Equal(t, "Total", rows[3].Cells[1].String())
	assert.Equal(t, "4", rows[3].Cells[3].String())
	assert.Equal(t, "150", rows[3].Cells[5].String())
}
