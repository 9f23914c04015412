// Package apitest provides an in-memory implementation of the storefront API
// for exercising clients in tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Product is a catalog entry served by the fake
type Product struct {
	ID    string  `json:"_id"`
	Title string  `json:"title"`
	Image string  `json:"image"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// CartLine is one stored cart line
type CartLine struct {
	ProductID string
	Quantity  int
	UnitPrice float64
}

// RecordedRequest captures what the fake received
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	CorrelationID string
	Body          string
}

type user struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type cannedResponse struct {
	status int
	body   string
}

// Server is a running fake API
type Server struct {
	URL string

	srv    *httptest.Server
	secret []byte

	mu       sync.Mutex
	products []Product
	users    map[string]*user // keyed by email
	carts    map[string][]CartLine
	orders   map[string][]map[string]any
	canned   []cannedResponse
	requests []RecordedRequest
}

// New starts a fake API and stops it when the test ends
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		secret: []byte("apitest-" + uuid.NewString()),
		users:  make(map[string]*user),
		carts:  make(map[string][]CartLine),
		orders: make(map[string][]map[string]any),
	}
	s.srv = httptest.NewServer(s.routes())
	s.URL = s.srv.URL
	t.Cleanup(s.Close)

	return s
}

// Close shuts the server down. Requests made afterwards fail at the transport level.
func (s *Server) Close() {
	s.srv.Close()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.record)

	r.Post("/user/login", s.login)
	r.Post("/user/register", s.register)
	r.Get("/product", s.listProducts)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/cart", s.getCart)
		r.Delete("/cart", s.clearCart)
		r.Post("/cart/items", s.addItem)
		r.Put("/cart/items", s.updateItem)
		r.Delete("/cart/items/{productId}", s.removeItem)
		r.Post("/cart/checkout", s.checkout)
		r.Get("/user/my-orders", s.myOrders)
	})

	return r
}

// AddProduct makes p available in the catalog
func (s *Server) AddProduct(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

// AddUser registers an account and returns its user ID
func (s *Server) AddUser(firstName, lastName, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(firstName, lastName, email, password).ID
}

func (s *Server) addUserLocked(firstName, lastName, email, password string) *user {
	u := &user{
		ID:        strings.ReplaceAll(uuid.NewString(), "-", "")[:24],
		FirstName: firstName,
		LastName:  lastName,
		Email:     strings.ToLower(email),
		Password:  password,
	}
	s.users[u.Email] = u
	return u
}

// SetCart replaces the stored cart of userID
func (s *Server) SetCart(userID string, lines ...CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = append([]CartLine(nil), lines...)
}

// Cart returns a copy of the stored cart of userID
func (s *Server) Cart(userID string) []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CartLine(nil), s.carts[userID]...)
}

// Orders returns the orders placed by userID
func (s *Server) Orders(userID string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.orders[userID]...)
}

// AddOrder stores a raw order record for userID
func (s *Server) AddOrder(userID string, order map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[userID] = append(s.orders[userID], order)
}

// RespondNext makes the next request get status and the raw body instead of
// being routed. Calls queue up in order.
func (s *Server) RespondNext(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canned = append(s.canned, cannedResponse{status: status, body: body})
}

// FailNext makes the next request fail with status and {"message": message}
func (s *Server) FailNext(status int, message string) {
	body, _ := json.Marshal(map[string]string{"message": message})
	s.RespondNext(status, string(body))
}

// Requests returns every request received so far
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// RequestCount returns how many requests were received
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}
