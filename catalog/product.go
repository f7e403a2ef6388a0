package catalog

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DefaultDescription is shown in the grid for items without a description.
const DefaultDescription = "Este item não possui descrição."

// Product is a catalog record after normalisation.
type Product struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	ImageURL    string              `json:"image_url"`
	Category    string              `json:"category"`
	Tags        []string            `json:"tags"`
	Gallery     []string            `json:"gallery,omitempty"`
	Price       decimal.NullDecimal `json:"price"`
}

var ErrUnexpectedShape = errors.New("catalog: unexpected response shape")

// record is the wire format served by the catalog API.
type record struct {
	ID        flexID              `json:"id"`
	Nome      string              `json:"nome"`
	Descricao string              `json:"descricao"`
	ImagemURL string              `json:"imagem_url"`
	Categoria string              `json:"categoria"`
	Tags      json.RawMessage     `json:"tags"`
	Preco     decimal.NullDecimal `json:"preco"`
	Galeria   json.RawMessage     `json:"galeria"`
}

// flexID accepts both numeric and string ids.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.Wrap(err, "catalog: id is neither string nor number")
	}
	*f = flexID(n.String())
	return nil
}

func (r record) toProduct() Product {
	tags := ParseTags(r.Tags)
	gallery := parseGallery(r.Galeria)

	image := strings.TrimSpace(r.ImagemURL)
	if image == "" && len(gallery) > 0 {
		image = gallery[0]
	}

	return Product{
		ID:          string(r.ID),
		Name:        strings.TrimSpace(r.Nome),
		Description: strings.TrimSpace(r.Descricao),
		ImageURL:    image,
		Category:    PrimaryCategory(r.Categoria, tags),
		Tags:        tags,
		Gallery:     gallery,
		Price:       r.Preco,
	}
}

// listShapes are the accepted list payloads, tried in order.
var listShapes = []struct {
	name   string
	decode func([]byte) ([]record, bool)
}{
	{"produtos", keyedList("produtos")},
	{"itens", keyedList("itens")},
	{"array", bareList},
}

func keyedList(key string) func([]byte) ([]record, bool) {
	return func(body []byte) ([]record, bool) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(body, &obj); err != nil {
			return nil, false
		}
		raw, ok := obj[key]
		if !ok {
			return nil, false
		}
		return bareList(raw)
	}
}

func bareList(body []byte) ([]record, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil, false
	}
	var recs []record
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, false
	}
	return recs, true
}

func decodeList(body []byte) ([]Product, error) {
	for _, shape := range listShapes {
		recs, ok := shape.decode(body)
		if !ok {
			continue
		}
		products := make([]Product, 0, len(recs))
		for _, r := range recs {
			products = append(products, r.toProduct())
		}
		return products, nil
	}
	return nil, ErrUnexpectedShape
}

func decodeOne(body []byte) (Product, error) {
	var wrapped struct {
		Produto json.RawMessage `json:"produto"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return Product{}, ErrUnexpectedShape
	}
	raw := body
	if len(wrapped.Produto) > 0 && !bytes.Equal(wrapped.Produto, []byte("null")) {
		raw = wrapped.Produto
	}

	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Product{}, ErrUnexpectedShape
	}
	if r.ID == "" && r.Nome == "" {
		return Product{}, ErrUnexpectedShape
	}
	return r.toProduct(), nil
}
