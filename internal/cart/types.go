package cart

import "github.com/erauner12/storefront/internal/api"

// LineItem is one product entry of the mirrored cart
type LineItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Snapshot is the complete cart as last reported by the server
type Snapshot struct {
	Items       []LineItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
}

// CheckoutResult reports the outcome of Checkout
type CheckoutResult struct {
	Success bool
	Data    map[string]any // server order payload on success
	Message string         // server confirmation message on success
	Error   string         // failure message
}

// snapshotFrom flattens the nested wire cart into line items
func snapshotFrom(c *api.Cart) Snapshot {
	items := make([]LineItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, LineItem{
			ProductID: it.Product.ID,
			Title:     it.Product.Title,
			Image:     it.Product.Image,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return Snapshot{Items: items, TotalAmount: c.TotalAmount}
}
