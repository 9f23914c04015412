package api

import (
	"encoding/json"
	"fmt"
)

// ProductRef is the product identity nested inside each cart item
type ProductRef struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// CartItem is one cart line as the server sends it
type CartItem struct {
	Product   *ProductRef `json:"productId"`
	Quantity  int         `json:"quantity"`
	UnitPrice float64     `json:"unitPrice"`
}

// Cart is the authoritative cart snapshot returned by every cart endpoint
type Cart struct {
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
}

// cartWire keeps pointer fields so missing keys can be told apart from zero values
type cartWire struct {
	Items       *[]CartItem `json:"items"`
	TotalAmount *float64    `json:"totalAmount"`
}

// decodeCart parses and validates a cart body
func decodeCart(op string, body []byte) (*Cart, error) {
	var wire cartWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, &MalformedResponseError{Op: op, Reason: err.Error()}
	}
	if wire.Items == nil {
		return nil, &MalformedResponseError{Op: op, Reason: "missing items"}
	}
	if wire.TotalAmount == nil {
		return nil, &MalformedResponseError{Op: op, Reason: "missing totalAmount"}
	}

	for i, item := range *wire.Items {
		switch {
		case item.Product == nil || item.Product.ID == "":
			return nil, &MalformedResponseError{Op: op, Reason: fmt.Sprintf("item %d has no productId._id", i)}
		case item.Quantity < 1:
			return nil, &MalformedResponseError{Op: op, Reason: fmt.Sprintf("item %d has quantity %d", i, item.Quantity)}
		case item.UnitPrice < 0:
			return nil, &MalformedResponseError{Op: op, Reason: fmt.Sprintf("item %d has negative unitPrice", i)}
		}
	}

	return &Cart{Items: *wire.Items, TotalAmount: *wire.TotalAmount}, nil
}

// CheckoutResponse is the body of a successful checkout
type CheckoutResponse struct {
	Order   map[string]any `json:"order"`
	Message string         `json:"message"`
}

// Product is a catalog listing
type Product struct {
	ID    string  `json:"_id"`
	Title string  `json:"title"`
	Image string  `json:"image"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// InStock reports whether the product can be added to a cart
func (p Product) InStock() bool {
	return p.Stock > 0
}

// RegisterRequest is the body of POST /user/register
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type checkoutRequest struct {
	Address string `json:"address"`
}

// tokenResponse carries the token issued by login and register
type tokenResponse struct {
	Data json.RawMessage `json:"data"`
}

// errorBody is the shape of error responses: {message} or, for some user
// endpoints, {data: "..."}
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// errorMessage extracts the most specific human-readable message from an error body
func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if s := rawString(eb.Message); s != "" {
		return s
	}
	return rawString(eb.Data)
}

// rawString returns raw as a string if it is a JSON string, "" otherwise
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
