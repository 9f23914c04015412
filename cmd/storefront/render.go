package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/erauner12/storefront/internal/cart"
	"github.com/erauner12/storefront/internal/orders"
	"github.com/erauner12/storefront/internal/pricing"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// renderCart prints the line items followed by the order summary
func renderCart(w io.Writer, items []cart.LineItem, rules pricing.Rules) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Your cart is empty")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "PRODUCT\tTITLE\tQTY\tPRICE\tLINE TOTAL")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			item.ProductID,
			item.Title,
			item.Quantity,
			pricing.FormatPrice(item.UnitPrice),
			pricing.FormatPrice(item.UnitPrice*float64(item.Quantity)),
		)
	}
	tw.Flush()

	fmt.Fprintln(w)
	renderSummary(w, rules.Summarize(items))
}

func renderSummary(w io.Writer, s pricing.Summary) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Subtotal (%s)\t%s\n", s.ItemsLabel(), pricing.FormatPrice(s.Subtotal))
	fmt.Fprintf(tw, "Shipping\t%s\n", s.ShippingLabel())
	fmt.Fprintf(tw, "Tax\t%s\n", pricing.FormatPrice(s.Tax))
	fmt.Fprintf(tw, "Total\t%s\n", pricing.FormatPrice(s.Total))
	tw.Flush()
}

func renderOrders(w io.Writer, list []orders.Order) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No orders yet")
		return
	}

	for i, o := range list {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n", o.OrderNumber, o.DisplayDate(), o.Status.Label(), pricing.FormatPrice(o.Total))

		tw := newTable(w)
		for _, item := range o.Items {
			fmt.Fprintf(tw, "  %s\t%d x %s\n", item.Title, item.Quantity, pricing.FormatPrice(item.UnitPrice))
		}
		tw.Flush()

		shipping := "FREE"
		if o.Shipping != 0 {
			shipping = pricing.FormatPrice(o.Shipping)
		}
		fmt.Fprintf(w, "  Subtotal %s  Shipping %s  Tax %s\n",
			pricing.FormatPrice(o.Subtotal), shipping, pricing.FormatPrice(o.Tax))
	}
}
