// Package checkout validates the shipping and payment form and places the
// order through the cart engine.
package checkout

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/erauner12/storefront/internal/cart"
)

// DefaultCountry is preselected on a new form
const DefaultCountry = "United States"

// Countries lists the destinations offered in the country picker
var Countries = []string{"United States", "Canada", "United Kingdom", "Australia"}

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)
	digitGroup    = regexp.MustCompile(`(\d{4})`)
	nonDigit      = regexp.MustCompile(`\D`)
	whitespace    = regexp.MustCompile(`\s`)
)

type ShippingInfo struct {
	FirstName string
	LastName  string
	Email     string
	Address   string
	City      string
	State     string
	ZipCode   string
	Country   string
	Phone     string
}

// FullAddress renders the single-line address sent with the order
func (s ShippingInfo) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", s.Address, s.City, s.State, s.ZipCode, s.Country)
}

type PaymentInfo struct {
	CardNumber string
	CardName   string
	ExpiryDate string
	CVV        string
}

// Form is the whole checkout form
type Form struct {
	Shipping ShippingInfo
	Payment  PaymentInfo
}

// NewForm returns an empty form with the default country selected
func NewForm() Form {
	return Form{Shipping: ShippingInfo{Country: DefaultCountry}}
}

// FieldErrors maps a form field name to its validation message
type FieldErrors map[string]string

// Fields returns the failing field names in sorted order
func (e FieldErrors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, name := range e.Fields() {
		parts = append(parts, name+": "+e[name])
	}
	return strings.Join(parts, "; ")
}

// Validate checks every field and returns the failures, nil if there are none
func (f Form) Validate() FieldErrors {
	errs := FieldErrors{}
	s, p := f.Shipping, f.Payment

	required := func(field, value, message string) {
		if strings.TrimSpace(value) == "" {
			errs[field] = message
		}
	}

	required("firstName", s.FirstName, "First name is required")
	required("lastName", s.LastName, "Last name is required")
	if strings.TrimSpace(s.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(s.Email) {
		errs["email"] = "Invalid email address"
	}
	required("address", s.Address, "Address is required")
	required("city", s.City, "City is required")
	required("state", s.State, "State is required")
	required("zipCode", s.ZipCode, "ZIP code is required")
	required("phone", s.Phone, "Phone number is required")

	digits := whitespace.ReplaceAllString(p.CardNumber, "")
	switch {
	case digits == "":
		errs["cardNumber"] = "Card number is required"
	case len(digits) != 16:
		errs["cardNumber"] = "Card number must be 16 digits"
	}

	required("cardName", p.CardName, "Cardholder name is required")

	switch {
	case p.ExpiryDate == "":
		errs["expiryDate"] = "Expiry date is required"
	case !expiryPattern.MatchString(p.ExpiryDate):
		errs["expiryDate"] = "Invalid format (MM/YY)"
	}

	switch {
	case p.CVV == "":
		errs["cvv"] = "CVV is required"
	case len(p.CVV) != 3:
		errs["cvv"] = "CVV must be 3 digits"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// FormatCardNumber groups card digits in fours ("4242 4242 ..."). ok is false
// when the result would be longer than a 16-digit number.
func FormatCardNumber(input string) (formatted string, ok bool) {
	v := whitespace.ReplaceAllString(input, "")
	v = strings.TrimSpace(digitGroup.ReplaceAllString(v, "$1 "))
	if len(v) > 19 {
		return "", false
	}
	return v, true
}

// FormatExpiry keeps the digits of input and renders them as MM/YY
func FormatExpiry(input string) string {
	v := nonDigit.ReplaceAllString(input, "")
	if len(v) >= 2 {
		end := min(len(v), 4)
		v = v[:2] + "/" + v[2:end]
	}
	return v
}

// SanitizeCVV keeps the digits of input. ok is false past three digits.
func SanitizeCVV(input string) (cvv string, ok bool) {
	v := nonDigit.ReplaceAllString(input, "")
	if len(v) > 3 {
		return "", false
	}
	return v, true
}

// Checkouter places an order for the current cart
type Checkouter interface {
	Checkout(ctx context.Context, address string) cart.CheckoutResult
}

// Submit validates f and, when it is valid, checks out with its full address.
// Field errors short-circuit before any request is made.
func Submit(ctx context.Context, c Checkouter, f Form) (cart.CheckoutResult, FieldErrors) {
	if errs := f.Validate(); errs != nil {
		return cart.CheckoutResult{}, errs
	}
	return c.Checkout(ctx, f.Shipping.FullAddress()), nil
}
