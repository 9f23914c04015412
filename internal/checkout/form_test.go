package checkout

import (
	"context"
	"testing"

	"github.com/erauner12/storefront/internal/cart"
	"github.com/google/go-cmp/cmp"
)

func validForm() Form {
	f := NewForm()
	f.Shipping = ShippingInfo{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Address:   "12 Analytical Way",
		City:      "London",
		State:     "LDN",
		ZipCode:   "N1 9GU",
		Country:   "United Kingdom",
		Phone:     "+44 20 7946 0000",
	}
	f.Payment = PaymentInfo{
		CardNumber: "4242 4242 4242 4242",
		CardName:   "A LOVELACE",
		ExpiryDate: "12/29",
		CVV:        "123",
	}
	return f
}

type recordingCheckouter struct {
	calls   int
	address string
}

func (r *recordingCheckouter) Checkout(ctx context.Context, address string) cart.CheckoutResult {
	r.calls++
	r.address = address
	return cart.CheckoutResult{Success: true, Message: "Order placed successfully"}
}

func TestNewFormDefaultsCountry(t *testing.T) {
	if got := NewForm().Shipping.Country; got != DefaultCountry {
		t.Errorf("Country = %q, want %q", got, DefaultCountry)
	}
}

func TestValidate_Valid(t *testing.T) {
	if errs := validForm().Validate(); errs != nil {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidate_EmptyForm(t *testing.T) {
	want := FieldErrors{
		"firstName":  "First name is required",
		"lastName":   "Last name is required",
		"email":      "Email is required",
		"address":    "Address is required",
		"city":       "City is required",
		"state":      "State is required",
		"zipCode":    "ZIP code is required",
		"phone":      "Phone number is required",
		"cardNumber": "Card number is required",
		"cardName":   "Cardholder name is required",
		"expiryDate": "Expiry date is required",
		"cvv":        "CVV is required",
	}

	if diff := cmp.Diff(want, NewForm().Validate()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		field  string
		want   string
	}{
		{name: "blank name", mutate: func(f *Form) { f.Shipping.FirstName = "   " }, field: "firstName", want: "First name is required"},
		{name: "bad email", mutate: func(f *Form) { f.Shipping.Email = "ada@example" }, field: "email", want: "Invalid email address"},
		{name: "short card", mutate: func(f *Form) { f.Payment.CardNumber = "4242 4242" }, field: "cardNumber", want: "Card number must be 16 digits"},
		{name: "long card", mutate: func(f *Form) { f.Payment.CardNumber = "42424242424242424" }, field: "cardNumber", want: "Card number must be 16 digits"},
		{name: "expiry without slash", mutate: func(f *Form) { f.Payment.ExpiryDate = "1229" }, field: "expiryDate", want: "Invalid format (MM/YY)"},
		{name: "expiry four digit year", mutate: func(f *Form) { f.Payment.ExpiryDate = "12/2029" }, field: "expiryDate", want: "Invalid format (MM/YY)"},
		{name: "short cvv", mutate: func(f *Form) { f.Payment.CVV = "12" }, field: "cvv", want: "CVV must be 3 digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			errs := f.Validate()
			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", errs)
			}
			if got := errs[tt.field]; got != tt.want {
				t.Errorf("errs[%s] = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestUnspacedCardNumberIsValid(t *testing.T) {
	f := validForm()
	f.Payment.CardNumber = "4242424242424242"
	if errs := f.Validate(); errs != nil {
		t.Errorf("unexpected errors %v", errs)
	}
}

func TestFieldErrorsString(t *testing.T) {
	errs := FieldErrors{"cvv": "CVV is required", "city": "City is required"}
	if got, want := errs.Error(), "city: City is required; cvv: CVV is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFullAddress(t *testing.T) {
	got := validForm().Shipping.FullAddress()
	want := "12 Analytical Way, London, LDN N1 9GU, United Kingdom"
	if got != want {
		t.Errorf("FullAddress() = %q, want %q", got, want)
	}
}

func TestFormatCardNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "4242424242424242", want: "4242 4242 4242 4242", wantOK: true},
		{in: "4242 42", want: "4242 42", wantOK: true},
		{in: "42424", want: "4242 4", wantOK: true},
		{in: "4242", want: "4242", wantOK: true},
		{in: "42424242424242424", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := FormatCardNumber(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("FormatCardNumber(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFormatExpiry(t *testing.T) {
	tests := map[string]string{
		"":       "",
		"1":      "1",
		"12":     "12/",
		"123":    "12/3",
		"1229":   "12/29",
		"12/29":  "12/29",
		"122930": "12/29",
	}

	for in, want := range tests {
		if got := FormatExpiry(in); got != want {
			t.Errorf("FormatExpiry(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeCVV(t *testing.T) {
	if got, ok := SanitizeCVV("1a2"); !ok || got != "12" {
		t.Errorf("SanitizeCVV(1a2) = %q, %v", got, ok)
	}
	if _, ok := SanitizeCVV("1234"); ok {
		t.Error("four digits should be rejected")
	}
}

func TestSubmit(t *testing.T) {
	t.Run("valid form checks out with full address", func(t *testing.T) {
		rec := &recordingCheckouter{}
		result, errs := Submit(context.Background(), rec, validForm())

		if errs != nil {
			t.Fatalf("unexpected field errors %v", errs)
		}
		if !result.Success || rec.calls != 1 {
			t.Errorf("expected one successful checkout, got %+v after %d calls", result, rec.calls)
		}
		if rec.address != validForm().Shipping.FullAddress() {
			t.Errorf("address = %q", rec.address)
		}
	})

	t.Run("invalid form never checks out", func(t *testing.T) {
		rec := &recordingCheckouter{}
		_, errs := Submit(context.Background(), rec, NewForm())

		if errs == nil {
			t.Fatal("expected field errors")
		}
		if rec.calls != 0 {
			t.Errorf("checkout called %d times", rec.calls)
		}
	})
}
