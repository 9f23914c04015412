package pricing

import (
	"math"
	"testing"

	"github.com/erauner12/storefront/internal/cart"
)

func items(lines ...cart.LineItem) []cart.LineItem { return lines }

func line(id string, qty int, price float64) cart.LineItem {
	return cart.LineItem{ProductID: id, Quantity: qty, UnitPrice: price}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name  string
		items []cart.LineItem
		want  float64
	}{
		{name: "empty", items: nil, want: 0},
		{name: "single", items: items(line("a", 3, 2.5)), want: 7.5},
		{name: "several", items: items(line("a", 2, 19.99), line("b", 1, 5), line("c", 4, 0.25)), want: 45.98},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Subtotal(tt.items); !almostEqual(got, tt.want) {
				t.Errorf("Subtotal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShipping(t *testing.T) {
	tests := []struct {
		subtotal float64
		want     float64
	}{
		{subtotal: 0, want: 5.99},
		{subtotal: 49.99, want: 5.99},
		{subtotal: 50.00, want: 0},
		{subtotal: 120, want: 0},
	}

	for _, tt := range tests {
		if got := Shipping(tt.subtotal); got != tt.want {
			t.Errorf("Shipping(%v) = %v, want %v", tt.subtotal, got, tt.want)
		}
	}
}

func TestTax(t *testing.T) {
	if got := Tax(100, 0.085); !almostEqual(got, 8.5) {
		t.Errorf("Tax(100, 0.085) = %v, want 8.5", got)
	}
	if got := Tax(0, DefaultTaxRate); got != 0 {
		t.Errorf("Tax(0) = %v, want 0", got)
	}
}

func TestTotal(t *testing.T) {
	cases := [][]cart.LineItem{
		nil,
		items(line("a", 1, 10)),
		items(line("a", 2, 25)),
		items(line("a", 3, 19.99), line("b", 1, 0.01)),
	}

	for _, c := range cases {
		subtotal := Subtotal(c)
		want := subtotal + Shipping(subtotal) + Tax(subtotal, DefaultTaxRate)
		if got := Total(c); !almostEqual(got, want) {
			t.Errorf("Total(%v) = %v, want %v", c, got, want)
		}
	}

	if got := Total(items(line("a", 1, 10))); !almostEqual(got, 10+5.99+0.85) {
		t.Errorf("Total below threshold = %v", got)
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{amount: 1234.5, want: "$1,234.50"},
		{amount: 0, want: "$0.00"},
		{amount: 5.99, want: "$5.99"},
		{amount: 8.5, want: "$8.50"},
		{amount: 1000000, want: "$1,000,000.00"},
		{amount: 0.125, want: "$0.13"},
		{amount: 1.125, want: "$1.13"},
		{amount: 1.005, want: "$1.00"},
		{amount: 2.675, want: "$2.67"},
		{amount: 0.004, want: "$0.00"},
		{amount: Tax(25, DefaultTaxRate), want: "$2.13"},
		{amount: -1.125, want: "-$1.13"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.amount); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(items(line("a", 2, 30)))

	if s.ItemCount != 1 || s.ItemsLabel() != "1 item" {
		t.Errorf("unexpected item count %d / %q", s.ItemCount, s.ItemsLabel())
	}
	if !s.FreeShipping || s.ShippingLabel() != "FREE" {
		t.Errorf("expected free shipping, got %+v", s)
	}
	if !almostEqual(s.Total, 60+5.1) {
		t.Errorf("unexpected total %v", s.Total)
	}

	s = Summarize(items(line("a", 1, 10), line("b", 1, 5)))
	if s.ItemsLabel() != "2 items" || s.ShippingLabel() != "$5.99" {
		t.Errorf("unexpected labels %q / %q", s.ItemsLabel(), s.ShippingLabel())
	}

	s = Summarize(items(line("a", 1, 25)))
	if got := FormatPrice(s.Tax); got != "$2.13" {
		t.Errorf("tax on $25.00 = %q, want $2.13", got)
	}
}

func TestRulesOverride(t *testing.T) {
	r := Rules{FreeShippingThreshold: 100, StandardShipping: 10, TaxRate: 0}
	s := r.Summarize(items(line("a", 1, 60)))

	if s.Shipping != 10 || s.Tax != 0 || !almostEqual(s.Total, 70) {
		t.Errorf("unexpected summary %+v", s)
	}
}
