package main

import (
	"errors"
	"fmt"

	"github.com/erauner12/storefront/internal/checkout"
	"github.com/erauner12/storefront/internal/orders"
	"github.com/erauner12/storefront/internal/pricing"
	"github.com/spf13/cobra"
)

var errEmptyCart = errors.New("your cart is empty")

func newCheckoutCmd(a *app) *cobra.Command {
	form := checkout.NewForm()
	s, p := &form.Shipping, &form.Payment

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the current cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			a.cart.Load(ctx)
			items := a.cart.Items()
			if len(items) == 0 {
				return errEmptyCart
			}

			if formatted, ok := checkout.FormatCardNumber(p.CardNumber); ok {
				p.CardNumber = formatted
			}
			p.ExpiryDate = checkout.FormatExpiry(p.ExpiryDate)
			if cvv, ok := checkout.SanitizeCVV(p.CVV); ok {
				p.CVV = cvv
			}

			result, fieldErrs := checkout.Submit(ctx, a.cart, form)
			if fieldErrs != nil {
				return fmt.Errorf("invalid checkout form: %w", fieldErrs)
			}
			if !result.Success {
				return errors.New(result.Error)
			}

			summary := a.rules.Summarize(items)
			order := orders.Normalize([]map[string]any{result.Data})[0]

			fmt.Fprintln(out, result.Message)
			fmt.Fprintf(out, "Order ID: #%s\n", orderRef(order))
			fmt.Fprintf(out, "Shipping to: %s\n", s.FullAddress())
			fmt.Fprintf(out, "Total: %s\n", pricing.FormatPrice(summary.Total))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&s.FirstName, "first-name", "", "Shipping first name")
	f.StringVar(&s.LastName, "last-name", "", "Shipping last name")
	f.StringVar(&s.Email, "email", "", "Contact email")
	f.StringVar(&s.Address, "address", "", "Street address")
	f.StringVar(&s.City, "city", "", "City")
	f.StringVar(&s.State, "state", "", "State or region")
	f.StringVar(&s.ZipCode, "zip", "", "ZIP or postal code")
	f.StringVar(&s.Country, "country", checkout.DefaultCountry, fmt.Sprintf("Country %v", checkout.Countries))
	f.StringVar(&s.Phone, "phone", "", "Phone number")
	f.StringVar(&p.CardNumber, "card-number", "", "16-digit card number")
	f.StringVar(&p.CardName, "card-name", "", "Cardholder name")
	f.StringVar(&p.ExpiryDate, "expiry", "", "Card expiry (MM/YY)")
	f.StringVar(&p.CVV, "cvv", "", "3-digit security code")
	return cmd
}

func orderRef(o orders.Order) string {
	if o.OrderID == "" {
		return "N/A"
	}
	return o.ShortID()
}
