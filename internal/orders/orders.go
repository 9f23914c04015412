// Package orders normalizes the loosely shaped order records returned by
// the order history endpoint.
package orders

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Estimation ratios used when a record carries only its total
const (
	estimatedSubtotalRatio = 0.85
	estimatedTaxRatio      = 0.085
)

// Status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Label capitalizes the status for display
func (s Status) Label() string {
	r, size := utf8.DecodeRuneInString(string(s))
	if r == utf8.RuneError {
		return string(s)
	}
	return string(unicode.ToUpper(r)) + string(s)[size:]
}

type Item struct {
	ProductID string
	Title     string
	Image     string
	Quantity  int
	UnitPrice float64
}

type Order struct {
	OrderID     string
	OrderNumber string
	Date        string
	Status      Status
	Items       []Item
	Subtotal    float64
	Shipping    float64
	Tax         float64
	Total       float64
}

// ShortID is the last eight characters of the order id, upper-cased
func (o Order) ShortID() string {
	return shortID(o.OrderID)
}

// PlacedAt parses Date; ok is false when the server sent no usable timestamp
func (o Order) PlacedAt() (t time.Time, ok bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, o.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayDate renders Date as "January 2, 2006", or the raw value if it
// cannot be parsed
func (o Order) DisplayDate() string {
	t, ok := o.PlacedAt()
	if !ok {
		return o.Date
	}
	return t.Format("January 2, 2006")
}

// Normalize converts raw order records into Orders, filling in missing
// fields the same way for every record
func Normalize(raw []map[string]any) []Order {
	out := make([]Order, 0, len(raw))
	for _, r := range raw {
		out = append(out, normalizeOrder(r))
	}
	return out
}

func normalizeOrder(r map[string]any) Order {
	id := str(r, "_id")
	total := num(r, "total", "totalAmount")

	o := Order{
		OrderID:     id,
		OrderNumber: str(r, "orderNumber"),
		Date:        str(r, "createdAt", "date"),
		Status:      Status(str(r, "status")),
		Subtotal:    num(r, "subtotal"),
		Shipping:    num(r, "shipping"),
		Tax:         num(r, "tax"),
		Total:       total,
	}

	if o.OrderNumber == "" {
		o.OrderNumber = "ORD-" + shortID(id)
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	// Estimates derive from "total" only, never from "totalAmount"
	if o.Subtotal == 0 {
		o.Subtotal = num(r, "total") * estimatedSubtotalRatio
	}
	if o.Tax == 0 {
		o.Tax = num(r, "total") * estimatedTaxRatio
	}

	rawItems, ok := r["orderItems"].([]any)
	if !ok {
		rawItems, _ = r["items"].([]any)
	}
	o.Items = make([]Item, 0, len(rawItems))
	for _, ri := range rawItems {
		m, ok := ri.(map[string]any)
		if !ok {
			continue
		}
		o.Items = append(o.Items, Item{
			ProductID: productID(m),
			Title:     str(m, "productTitle", "title", "productName"),
			Image:     str(m, "productImage", "image"),
			Quantity:  int(num(m, "quantity")),
			UnitPrice: num(m, "unitPrice", "price"),
		})
	}

	return o
}

func shortID(id string) string {
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}

// productID accepts a plain id or a populated product object
func productID(m map[string]any) string {
	if p, ok := m["productId"].(map[string]any); ok {
		if id := str(p, "_id"); id != "" {
			return id
		}
	}
	return str(m, "productId", "_id")
}

func str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func num(m map[string]any, keys ...string) float64 {
	for _, k := range keys {
		if f, ok := m[k].(float64); ok && f != 0 {
			return f
		}
	}
	return 0
}
