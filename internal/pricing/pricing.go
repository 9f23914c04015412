// Package pricing derives display totals from cart line items.
// All functions are pure; amounts are never rounded before formatting.
package pricing

import (
	"math"
	"math/big"

	"github.com/erauner12/storefront/internal/cart"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// FreeShippingThreshold is the subtotal from which shipping is free
	FreeShippingThreshold = 50.00

	// StandardShipping is the flat fee charged below the threshold
	StandardShipping = 5.99

	// DefaultTaxRate is applied to the subtotal
	DefaultTaxRate = 0.085
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Subtotal sums unit price times quantity over items
func Subtotal(items []cart.LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// Shipping returns the shipping fee for subtotal
func Shipping(subtotal float64) float64 {
	return DefaultRules().Shipping(subtotal)
}

// Tax returns subtotal times rate
func Tax(subtotal, rate float64) float64 {
	return subtotal * rate
}

// Total returns subtotal plus shipping plus tax at the default rate
func Total(items []cart.LineItem) float64 {
	return DefaultRules().Total(items)
}

// FormatPrice renders amount as US dollars with two fraction digits, e.g. "$1,234.50"
func FormatPrice(amount float64) string {
	sign := ""
	if math.Signbit(amount) && amount != 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "$" + printer.Sprint(number.Decimal(roundCents(amount), number.Scale(2)))
}

// roundCents rounds a non-negative amount to whole cents, half away from zero,
// using the exact binary value of amount. 2.125 becomes 2.13 and 1.005, stored
// just below 1.005, becomes 1.00.
func roundCents(amount float64) float64 {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return amount
	}
	x := new(big.Float).SetPrec(64).SetFloat64(amount)
	x.Mul(x, big.NewFloat(100))

	cents, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(64).Sub(x, new(big.Float).SetInt(cents))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		cents.Add(cents, big.NewInt(1))
	}

	f, _ := new(big.Float).SetInt(cents).Float64()
	return f / 100
}

// Rules holds the configurable pricing constants
type Rules struct {
	FreeShippingThreshold float64
	StandardShipping      float64
	TaxRate               float64
}

// DefaultRules returns the storefront's standard pricing
func DefaultRules() Rules {
	return Rules{
		FreeShippingThreshold: FreeShippingThreshold,
		StandardShipping:      StandardShipping,
		TaxRate:               DefaultTaxRate,
	}
}

// Shipping returns the fee for subtotal under r
func (r Rules) Shipping(subtotal float64) float64 {
	if subtotal >= r.FreeShippingThreshold {
		return 0
	}
	return r.StandardShipping
}

// Total returns subtotal plus shipping plus tax under r
func (r Rules) Total(items []cart.LineItem) float64 {
	subtotal := Subtotal(items)
	return subtotal + r.Shipping(subtotal) + Tax(subtotal, r.TaxRate)
}

// Summary is the order summary shown next to a cart
type Summary struct {
	ItemCount    int
	Subtotal     float64
	Shipping     float64
	Tax          float64
	Total        float64
	FreeShipping bool
}

// Summarize computes the order summary of items under r
func (r Rules) Summarize(items []cart.LineItem) Summary {
	subtotal := Subtotal(items)
	shipping := r.Shipping(subtotal)
	tax := Tax(subtotal, r.TaxRate)
	return Summary{
		ItemCount:    len(items),
		Subtotal:     subtotal,
		Shipping:     shipping,
		Tax:          tax,
		Total:        subtotal + shipping + tax,
		FreeShipping: shipping == 0,
	}
}

// Summarize computes the order summary of items with the default rules
func Summarize(items []cart.LineItem) Summary {
	return DefaultRules().Summarize(items)
}

// ShippingLabel renders the shipping line, "FREE" when nothing is charged
func (s Summary) ShippingLabel() string {
	if s.FreeShipping {
		return "FREE"
	}
	return FormatPrice(s.Shipping)
}

// ItemsLabel renders "1 item" or "N items"
func (s Summary) ItemsLabel() string {
	if s.ItemCount == 1 {
		return "1 item"
	}
	return printer.Sprintf("%d items", s.ItemCount)
}
