package apitest

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type cartItemBody struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	s.mu.Lock()
	u, ok := s.users[strings.ToLower(body.Email)]
	s.mu.Unlock()

	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if u.Password != body.Password {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"data": s.IssueToken(u.ID)})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil ||
		body.FirstName == "" || body.LastName == "" || body.Email == "" || body.Password == "" {
		writeMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	s.mu.Lock()
	if _, exists := s.users[strings.ToLower(body.Email)]; exists {
		s.mu.Unlock()
		writeJSON(w, http.StatusBadRequest, map[string]string{"data": "User already exists!"})
		return
	}
	u := s.addUserLocked(body.FirstName, body.LastName, body.Email, body.Password)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"data": s.IssueToken(u.ID)})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	products := append([]Product{}, s.products...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, products)
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.snapshotLocked(userID(r.Context())))
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var body cartItemBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductID == "" {
		writeMessage(w, http.StatusBadRequest, "productId is required")
		return
	}
	if body.Quantity <= 0 {
		writeMessage(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	uid := userID(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.productLocked(body.ProductID)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	lines := s.carts[uid]
	idx := lineIndex(lines, body.ProductID)
	quantity := body.Quantity
	if idx >= 0 {
		quantity += lines[idx].Quantity
	}
	if quantity > product.Stock {
		writeMessage(w, http.StatusBadRequest, "Insufficient stock")
		return
	}

	if idx >= 0 {
		lines[idx].Quantity = quantity
	} else {
		lines = append(lines, CartLine{ProductID: product.ID, Quantity: quantity, UnitPrice: product.Price})
	}
	s.carts[uid] = lines

	writeJSON(w, http.StatusOK, s.snapshotLocked(uid))
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	var body cartItemBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductID == "" {
		writeMessage(w, http.StatusBadRequest, "productId is required")
		return
	}
	if body.Quantity <= 0 {
		writeMessage(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	uid := userID(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[uid]
	idx := lineIndex(lines, body.ProductID)
	if idx < 0 {
		writeMessage(w, http.StatusNotFound, "Item not found in cart")
		return
	}
	if product, ok := s.productLocked(body.ProductID); ok && body.Quantity > product.Stock {
		writeMessage(w, http.StatusBadRequest, "Insufficient stock")
		return
	}

	lines[idx].Quantity = body.Quantity
	writeJSON(w, http.StatusOK, s.snapshotLocked(uid))
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	uid := userID(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[uid]
	idx := lineIndex(lines, productID)
	if idx < 0 {
		writeMessage(w, http.StatusNotFound, "Item not found in cart")
		return
	}

	s.carts[uid] = append(lines[:idx], lines[idx+1:]...)
	writeJSON(w, http.StatusOK, s.snapshotLocked(uid))
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())

	s.mu.Lock()
	delete(s.carts, uid)
	s.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Address) == "" {
		writeMessage(w, http.StatusBadRequest, "Address is required")
		return
	}

	uid := userID(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[uid]
	if len(lines) == 0 {
		writeMessage(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	items := make([]map[string]any, 0, len(lines))
	total := 0.0
	for _, line := range lines {
		product, _ := s.productLocked(line.ProductID)
		items = append(items, map[string]any{
			"productId":    line.ProductID,
			"productTitle": product.Title,
			"productImage": product.Image,
			"quantity":     line.Quantity,
			"unitPrice":    line.UnitPrice,
		})
		total += line.UnitPrice * float64(line.Quantity)
	}

	order := map[string]any{
		"_id":        strings.ReplaceAll(uuid.NewString(), "-", ""),
		"orderItems": items,
		"total":      total,
		"address":    body.Address,
		"status":     "pending",
		"createdAt":  time.Now().UTC().Format(time.RFC3339),
	}
	s.orders[uid] = append(s.orders[uid], order)
	delete(s.carts, uid)

	writeJSON(w, http.StatusOK, map[string]any{
		"order":   order,
		"message": "Order placed successfully",
	})
}

func (s *Server) myOrders(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())

	s.mu.Lock()
	orders := append([]map[string]any{}, s.orders[uid]...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, orders)
}

// snapshotLocked renders the cart of uid in the wire shape clients expect
func (s *Server) snapshotLocked(uid string) map[string]any {
	lines := s.carts[uid]
	items := make([]map[string]any, 0, len(lines))
	total := 0.0
	for _, line := range lines {
		product, _ := s.productLocked(line.ProductID)
		items = append(items, map[string]any{
			"productId": map[string]any{
				"_id":   line.ProductID,
				"title": product.Title,
				"image": product.Image,
			},
			"quantity":  line.Quantity,
			"unitPrice": line.UnitPrice,
		})
		total += line.UnitPrice * float64(line.Quantity)
	}
	return map[string]any{"items": items, "totalAmount": total}
}

func (s *Server) productLocked(id string) (Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func lineIndex(lines []CartLine, productID string) int {
	for i, line := range lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
