package catalog

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("catalog: product not found")

const maxBodyBytes = 10 << 20

// Client talks to the remote catalog API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Products returns the full catalog (GET /produtos).
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	return c.list(ctx, "/produtos")
}

// PartyItems returns the loose rental items used by the party builder
// (GET /itens-avulsos).
func (c *Client) PartyItems(ctx context.Context) ([]Product, error) {
	return c.list(ctx, "/itens-avulsos")
}

// Product returns one catalog record (GET /produtos/:id).
func (c *Client) Product(ctx context.Context, id string) (Product, error) {
	body, err := c.get(ctx, "/produtos/"+url.PathEscape(id))
	if err != nil {
		return Product{}, err
	}
	p, err := decodeOne(body)
	if err != nil {
		return Product{}, errors.Wrapf(err, "decode product %s", id)
	}
	return p, nil
}

func (c *Client) list(ctx context.Context, path string) ([]Product, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	products, err := decodeList(body)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return products, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("catalog: %s returned status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return body, nil
}
