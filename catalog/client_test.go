package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogServer(t *testing.T, routes map[string]func(w http.ResponseWriter)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		h(w)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second)
}

func body(s string) func(http.ResponseWriter) {
	return func(w http.ResponseWriter) { _, _ = w.Write([]byte(s)) }
}

func TestClient_ProductsShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"produtos key", `{"produtos":[{"id":1,"nome":"Mesa","tags":"Mesas, Cubos"}]}`},
		{"itens key", `{"itens":[{"id":"1","nome":"Mesa","tags":["Mesas","Cubos"]}]}`},
		{"bare array", `[{"id":1,"nome":"Mesa","tags":"[\"Mesas\",\"Cubos\"]"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCatalogServer(t, map[string]func(http.ResponseWriter){"/produtos": body(tt.payload)})

			products, err := c.Products(context.Background())
			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.Equal(t, "1", products[0].ID)
			assert.Equal(t, "Mesa", products[0].Name)
			assert.Equal(t, []string{"Mesas", "Cubos"}, products[0].Tags)
			assert.Equal(t, "Mesas", products[0].Category)
		})
	}
}

func TestClient_ProductsUnexpectedShape(t *testing.T) {
	c := newCatalogServer(t, map[string]func(http.ResponseWriter){"/produtos": body(`{"data":[]}`)})

	_, err := c.Products(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedShape))
}

func TestClient_ServerError(t *testing.T) {
	c := newCatalogServer(t, map[string]func(http.ResponseWriter){
		"/itens-avulsos": func(w http.ResponseWriter) { w.WriteHeader(http.StatusInternalServerError) },
	})

	_, err := c.PartyItems(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_Product(t *testing.T) {
	c := newCatalogServer(t, map[string]func(http.ResponseWriter){
		"/produtos/7": body(`{"produto":{"id":7,"nome":" Painel ","descricao":"Painel redondo","categoria":"Painéis de Madeira","tags":"Painéis","preco":"120.50","galeria":["g1.jpg","g2.jpg"]}}`),
		"/produtos/8": body(`{"id":"8","nome":"Tapete","imagem_url":"t.jpg","preco":null}`),
	})
	ctx := context.Background()

	p, err := c.Product(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "7", p.ID)
	assert.Equal(t, "Painel", p.Name)
	assert.Equal(t, "Painéis de Madeira", p.Category)
	assert.Equal(t, "g1.jpg", p.ImageURL)
	assert.Equal(t, []string{"g1.jpg", "g2.jpg"}, p.Gallery)
	require.True(t, p.Price.Valid)
	assert.Equal(t, "120.5", p.Price.Decimal.String())

	p, err = c.Product(ctx, "8")
	require.NoError(t, err)
	assert.Equal(t, "t.jpg", p.ImageURL)
	assert.False(t, p.Price.Valid)
	assert.Equal(t, []string{FallbackCategory}, p.Tags)

	_, err = c.Product(ctx, "404")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClient_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := c.Products(context.Background())
	assert.Error(t, err)
}
