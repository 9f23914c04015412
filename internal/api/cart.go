package api

import (
	"context"
	"net/http"
	"net/url"
)

// GetCart fetches the current cart
func (c *Client) GetCart(ctx context.Context) (*Cart, error) {
	body, err := c.do(ctx, request{
		op:            "get cart",
		method:        http.MethodGet,
		path:          "/cart",
		authenticated: true,
	})
	if err != nil {
		return nil, err
	}
	return decodeCart("get cart", body)
}

// AddCartItem appends productID to the cart, or increments its line by quantity
func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int) (*Cart, error) {
	body, err := c.do(ctx, request{
		op:            "add cart item",
		method:        http.MethodPost,
		path:          "/cart/items",
		authenticated: true,
		body:          cartItemRequest{ProductID: productID, Quantity: quantity},
	})
	if err != nil {
		return nil, err
	}
	return decodeCart("add cart item", body)
}

// UpdateCartItem sets the absolute quantity of productID
func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) (*Cart, error) {
	body, err := c.do(ctx, request{
		op:            "update cart item",
		method:        http.MethodPut,
		path:          "/cart/items",
		authenticated: true,
		body:          cartItemRequest{ProductID: productID, Quantity: quantity},
	})
	if err != nil {
		return nil, err
	}
	return decodeCart("update cart item", body)
}

// RemoveCartItem deletes the line for productID
func (c *Client) RemoveCartItem(ctx context.Context, productID string) (*Cart, error) {
	body, err := c.do(ctx, request{
		op:            "remove cart item",
		method:        http.MethodDelete,
		path:          "/cart/items/" + url.PathEscape(productID),
		authenticated: true,
	})
	if err != nil {
		return nil, err
	}
	return decodeCart("remove cart item", body)
}

// ClearCart deletes the entire cart. The response body is ignored.
func (c *Client) ClearCart(ctx context.Context) error {
	_, err := c.do(ctx, request{
		op:            "clear cart",
		method:        http.MethodDelete,
		path:          "/cart",
		authenticated: true,
	})
	return err
}

// Checkout submits the cart as an order shipped to address
func (c *Client) Checkout(ctx context.Context, address string) (*CheckoutResponse, error) {
	body, err := c.do(ctx, request{
		op:            "checkout",
		method:        http.MethodPost,
		path:          "/cart/checkout",
		authenticated: true,
		body:          checkoutRequest{Address: address},
	})
	if err != nil {
		return nil, err
	}

	var resp CheckoutResponse
	if err := decodeJSON("checkout", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
