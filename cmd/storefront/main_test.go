package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erauner12/storefront/internal/apitest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t         *testing.T
	fake      *apitest.Server
	storePath string
	userID    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, key := range []string{"STOREFRONT_API_BASE_URL", "STOREFRONT_STORE", "STOREFRONT_STORE_PATH", "STOREFRONT_HTTP_TIMEOUT"} {
		t.Setenv(key, "")
	}

	fake := apitest.New(t)
	fake.AddProduct(apitest.Product{ID: "lamp", Title: "Desk Lamp", Price: 19.5, Stock: 5})
	fake.AddProduct(apitest.Product{ID: "chair", Title: "Office Chair", Price: 120, Stock: 2})
	fake.AddProduct(apitest.Product{ID: "poster", Title: "Poster", Price: 8, Stock: 0})
	uid := fake.AddUser("Ada", "Lovelace", "ada@example.com", "secret1")

	return &harness{
		t:         t,
		fake:      fake,
		storePath: filepath.Join(t.TempDir(), "session.json"),
		userID:    uid,
	}
}

// run executes one CLI invocation against the fake with a file session store
func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()

	root, a := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{
		"--api-url", h.fake.URL,
		"--store", "file",
		"--store-path", h.storePath,
		"--log-level", "error",
	}, args...))

	err := root.ExecuteContext(context.Background())
	require.NoError(h.t, a.Close())
	return out.String(), err
}

func (h *harness) login() {
	h.t.Helper()
	_, err := h.run("", "login", "--email", "ada@example.com", "--password", "secret1")
	require.NoError(h.t, err)
}

func TestLoginPersistsSession(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "login", "--email", "Ada@Example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as ada@example.com")

	out, err = h.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Username: ada@example.com")
	assert.Contains(t, out, "User ID:  "+h.userID)
}

func TestLoginPasswordFromStdin(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("secret1\n", "login", "--email", "ada@example.com")
	require.NoError(t, err)

	out, err := h.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")
}

func TestLoginRememberedEmail(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "login", "--email", "ada@example.com", "--password", "secret1", "--remember")
	require.NoError(t, err)

	out, err := h.run("", "login", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as ada@example.com")
}

func TestLoginFailures(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "login", "--email", "ada@example.com", "--password", "nope")
	require.EqualError(t, err, "Invalid email or password. Please try again.")

	_, err = h.run("", "login", "--email", "ghost@example.com", "--password", "nope")
	require.EqualError(t, err, "User not found. Please check your email or sign up.")

	_, err = h.run("", "login", "--email", "not-an-email", "--password", "x")
	require.EqualError(t, err, "Please enter a valid email address")

	out, err := h.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestRegister(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "register",
		"--first-name", "Grace", "--last-name", "Hopper",
		"--email", "grace@example.com", "--password", "cobol59")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as grace@example.com")

	_, err = h.run("", "register",
		"--first-name", "Ada", "--last-name", "Lovelace",
		"--email", "ada@example.com", "--password", "secret1")
	require.EqualError(t, err, "This email is already registered. Please use a different email or try logging in.")

	_, err = h.run("", "register",
		"--first-name", "A", "--last-name", "B",
		"--email", "ab@example.com", "--password", "secret1", "--confirm-password", "secret2")
	require.EqualError(t, err, "Passwords do not match")
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, err := h.run("", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")

	out, err = h.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestProducts(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "products")
	require.NoError(t, err)
	assert.Contains(t, out, "Desk Lamp")
	assert.Contains(t, out, "$19.50")
	assert.Contains(t, out, "$120.00")
	assert.Contains(t, out, "Out of stock")
}

func TestCartRequiresSession(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "cart", "add", "lamp")
	require.EqualError(t, err, "Authentication required")
	assert.Equal(t, 0, h.fake.RequestCount())

	_, err = h.run("", "cart")
	require.ErrorIs(t, err, errNotSignedIn)
}

func TestCartLifecycle(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, err := h.run("", "cart", "add", "lamp")
	require.NoError(t, err)
	assert.Contains(t, out, "Desk Lamp")
	assert.Contains(t, out, "Subtotal (1 item)")
	assert.Contains(t, out, "$5.99") // below the free shipping threshold

	out, err = h.run("", "cart", "update", "lamp", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "$58.50")
	assert.Contains(t, out, "FREE")

	_, err = h.run("", "cart", "update", "lamp", "0")
	require.EqualError(t, err, "Quantity must be a positive integer")

	_, err = h.run("", "cart", "update", "lamp", "many")
	require.EqualError(t, err, "Quantity must be a positive integer")

	_, err = h.run("", "cart", "add", "poster")
	require.EqualError(t, err, "Insufficient stock")

	out, err = h.run("", "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Desk Lamp")
	assert.Equal(t, 3, h.fake.Cart(h.userID)[0].Quantity)

	out, err = h.run("", "cart", "remove", "lamp")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty")

	_, err = h.run("", "cart", "add", "chair")
	require.NoError(t, err)
	out, err = h.run("", "cart", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty")
	assert.Empty(t, h.fake.Cart(h.userID))
}

var checkoutFlags = []string{
	"checkout",
	"--first-name", "Ada", "--last-name", "Lovelace",
	"--email", "ada@example.com", "--address", "12 Analytical Way",
	"--city", "London", "--state", "LDN", "--zip", "N1", "--country", "United Kingdom",
	"--phone", "555-0100",
	"--card-number", "4242424242424242", "--card-name", "A LOVELACE",
	"--expiry", "1229", "--cvv", "123",
}

func TestCheckoutEmptyCart(t *testing.T) {
	h := newHarness(t)
	h.login()

	_, err := h.run("", checkoutFlags...)
	require.ErrorIs(t, err, errEmptyCart)
}

func TestCheckoutInvalidForm(t *testing.T) {
	h := newHarness(t)
	h.login()
	_, err := h.run("", "cart", "add", "lamp")
	require.NoError(t, err)

	_, err = h.run("", "checkout", "--first-name", "Ada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Card number is required")
	assert.Contains(t, err.Error(), "Last name is required")
	assert.Len(t, h.fake.Orders(h.userID), 0)
}

func TestCheckoutAndOrders(t *testing.T) {
	h := newHarness(t)
	h.login()
	_, err := h.run("", "cart", "add", "chair")
	require.NoError(t, err)

	out, err := h.run("", checkoutFlags...)
	require.NoError(t, err)
	assert.Contains(t, out, "Order placed successfully")
	assert.Contains(t, out, "Order ID: #")
	assert.Contains(t, out, "12 Analytical Way, London, LDN N1, United Kingdom")
	assert.Contains(t, out, "$130.20") // 120 + free shipping + 10.20 tax

	placed := h.fake.Orders(h.userID)
	require.Len(t, placed, 1)
	assert.Equal(t, "12 Analytical Way, London, LDN N1, United Kingdom", placed[0]["address"])
	assert.Empty(t, h.fake.Cart(h.userID))

	out, err = h.run("", "orders")
	require.NoError(t, err)
	assert.Contains(t, out, "ORD-")
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Office Chair")
	assert.Contains(t, out, "$120.00")

	out, err = h.run("", "account")
	require.NoError(t, err)
	assert.Contains(t, out, "Username: ada@example.com")
	assert.Contains(t, out, "Orders:   1, $120.00 total")
	assert.Contains(t, out, "Cart:     0 items, $5.99")
}

func TestCheckoutNormalizesPaymentInput(t *testing.T) {
	h := newHarness(t)
	h.login()
	_, err := h.run("", "cart", "add", "lamp")
	require.NoError(t, err)

	args := append([]string{}, checkoutFlags...)
	for i, arg := range args {
		if arg == "--cvv" {
			args[i+1] = "1-2 3"
		}
	}

	out, err := h.run("", args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Order placed successfully")
	assert.Len(t, h.fake.Orders(h.userID), 1)
}

func TestCheckoutServerFailure(t *testing.T) {
	h := newHarness(t)
	h.login()
	_, err := h.run("", "cart", "add", "lamp")
	require.NoError(t, err)

	// First request of the next run is the cart load; the second is checkout
	h.fake.RespondNext(200, `{"items":[{"productId":{"_id":"lamp","title":"Desk Lamp","image":""},"quantity":1,"unitPrice":19.5}],"totalAmount":19.5}`)
	h.fake.FailNext(400, "Payment declined")

	_, err = h.run("", checkoutFlags...)
	require.EqualError(t, err, "Payment declined")
}

func TestInvalidStoreBackend(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "--store", "redis", "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown session store backend")
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"WARN":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
		"":      zerolog.InfoLevel,
		"loud":  zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), "level %q", in)
	}
}
