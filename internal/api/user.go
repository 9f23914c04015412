package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a session token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := c.do(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   "/user/login",
		body:   loginRequest{Email: email, Password: password},
	})
	if err != nil {
		return "", err
	}
	return decodeToken("login", body)
}

// Register creates an account and returns its session token
func (c *Client) Register(ctx context.Context, in RegisterRequest) (string, error) {
	body, err := c.do(ctx, request{
		op:     "register",
		method: http.MethodPost,
		path:   "/user/register",
		body:   in,
	})
	if err != nil {
		return "", err
	}
	return decodeToken("register", body)
}

// MyOrders returns the caller's order records as sent by the server.
// Records are loosely shaped; see package orders for normalization.
func (c *Client) MyOrders(ctx context.Context) ([]map[string]any, error) {
	body, err := c.do(ctx, request{
		op:            "list orders",
		method:        http.MethodGet,
		path:          "/user/my-orders",
		authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := decodeJSON("list orders", body, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func decodeToken(op string, body []byte) (string, error) {
	var resp tokenResponse
	if err := decodeJSON(op, body, &resp); err != nil {
		return "", err
	}
	token := rawString(resp.Data)
	if token == "" {
		return "", &MalformedResponseError{Op: op, Reason: "missing token in data"}
	}
	return token, nil
}
