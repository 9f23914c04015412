package api

import (
	"context"
	"net/http"
)

// Products lists the catalog. No session is required.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	body, err := c.do(ctx, request{
		op:     "list products",
		method: http.MethodGet,
		path:   "/product",
	})
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := decodeJSON("list products", body, &products); err != nil {
		return nil, err
	}
	return products, nil
}
