// Package cart mirrors the remote cart locally. Every mutation is a single
// API call followed by replacing the whole local state with the server's
// snapshot; failures leave the state alone and record an error message.
package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/erauner12/storefront/internal/api"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// Remote is the part of the API the engine calls
type Remote interface {
	GetCart(ctx context.Context) (*api.Cart, error)
	AddCartItem(ctx context.Context, productID string, quantity int) (*api.Cart, error)
	UpdateCartItem(ctx context.Context, productID string, quantity int) (*api.Cart, error)
	RemoveCartItem(ctx context.Context, productID string) (*api.Cart, error)
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context, address string) (*api.CheckoutResponse, error)
}

// TokenSource reports the current session token; "" means signed out
type TokenSource interface {
	Token() string
}

// Engine is the local mirror of one session's remote cart.
//
// Mutations are queued: at most one request is in flight per engine, so a
// response can never be overwritten by an older one. Readers never wait on
// the queue.
type Engine struct {
	remote Remote
	tokens TokenSource
	queue  *semaphore.Weighted

	mu          sync.RWMutex
	items       []LineItem
	totalAmount float64
	lastError   string
}

// NewEngine creates an empty engine. Call Load to populate it.
func NewEngine(remote Remote, tokens TokenSource) *Engine {
	return &Engine{
		remote: remote,
		tokens: tokens,
		queue:  semaphore.NewWeighted(1),
		items:  []LineItem{},
	}
}

// Items returns a copy of the mirrored line items
func (e *Engine) Items() []LineItem {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]LineItem{}, e.items...)
}

// TotalAmount returns the server-computed total of the mirrored cart
func (e *Engine) TotalAmount() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totalAmount
}

// Snapshot returns items and total amount read together
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{Items: append([]LineItem{}, e.items...), TotalAmount: e.totalAmount}
}

// LastError returns the message of the most recent failed mutation, or ""
func (e *Engine) LastError() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastError
}

// Reset empties the mirror and clears the error without contacting the server
func (e *Engine) Reset() {
	e.mu.Lock()
	e.items = []LineItem{}
	e.totalAmount = 0
	e.lastError = ""
	e.mu.Unlock()
}

// Load fetches the current cart. Without a session it does nothing.
// Failures are logged and never surface in LastError.
func (e *Engine) Load(ctx context.Context) {
	if e.tokens.Token() == "" {
		return
	}

	if err := e.queue.Acquire(ctx, 1); err != nil {
		log.Debug().Err(err).Msg("cart load abandoned while waiting for queue")
		return
	}
	defer e.queue.Release(1)

	c, err := e.remote.GetCart(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load cart")
		return
	}

	e.install(snapshotFrom(c))
	log.Debug().Int("items", len(c.Items)).Float64("totalAmount", c.TotalAmount).Msg("cart loaded")
}

// AddItem adds one unit of productID
func (e *Engine) AddItem(ctx context.Context, productID string) {
	e.mutate(ctx, "add item", MsgAddFailed, nil, func(ctx context.Context) (*api.Cart, error) {
		return e.remote.AddCartItem(ctx, productID, 1)
	})
}

// UpdateQuantity sets the quantity of productID. Non-positive quantities are
// rejected without contacting the server.
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	validate := func() error {
		if quantity < 1 {
			return ErrInvalidQuantity
		}
		return nil
	}
	e.mutate(ctx, "update quantity", MsgUpdateFailed, validate, func(ctx context.Context) (*api.Cart, error) {
		return e.remote.UpdateCartItem(ctx, productID, quantity)
	})
}

// RemoveItem deletes the line for productID
func (e *Engine) RemoveItem(ctx context.Context, productID string) {
	e.mutate(ctx, "remove item", MsgRemoveFailed, nil, func(ctx context.Context) (*api.Cart, error) {
		return e.remote.RemoveCartItem(ctx, productID)
	})
}

// Clear deletes the whole cart
func (e *Engine) Clear(ctx context.Context) {
	e.mutate(ctx, "clear cart", MsgClearFailed, nil, func(ctx context.Context) (*api.Cart, error) {
		if err := e.remote.ClearCart(ctx); err != nil {
			return nil, err
		}
		return &api.Cart{}, nil
	})
}

// Checkout places an order for the mirrored cart shipped to address.
// The caller must not check out an empty cart.
func (e *Engine) Checkout(ctx context.Context, address string) CheckoutResult {
	if !e.begin(nil) {
		return CheckoutResult{Error: e.LastError()}
	}

	if err := e.queue.Acquire(ctx, 1); err != nil {
		log.Debug().Err(err).Msg("checkout abandoned while waiting for queue")
		return CheckoutResult{Error: MsgCheckoutFailed}
	}
	defer e.queue.Release(1)
	e.clearError()

	resp, err := e.remote.Checkout(ctx, address)
	if err != nil {
		msg := failureMessage(err, MsgCheckoutFailed)
		e.fail("checkout", msg, err)
		return CheckoutResult{Error: msg}
	}

	e.install(Snapshot{Items: []LineItem{}})
	log.Info().Str("message", resp.Message).Msg("order placed")

	return CheckoutResult{Success: true, Data: resp.Order, Message: resp.Message}
}

// mutate runs one queued round trip and installs its snapshot
func (e *Engine) mutate(ctx context.Context, op, fallback string, validate func() error, call func(context.Context) (*api.Cart, error)) {
	if !e.begin(validate) {
		return
	}

	if err := e.queue.Acquire(ctx, 1); err != nil {
		log.Debug().Err(err).Str("op", op).Msg("mutation abandoned while waiting for queue")
		return
	}
	defer e.queue.Release(1)
	e.clearError()

	c, err := call(ctx)
	if err != nil {
		e.fail(op, failureMessage(err, fallback), err)
		return
	}

	snap := snapshotFrom(c)
	e.install(snap)
	log.Debug().Str("op", op).Int("items", len(snap.Items)).Float64("totalAmount", snap.TotalAmount).Msg("cart replaced")
}

// begin checks local preconditions.
// It returns false, with the error state set, when the mutation must not proceed.
func (e *Engine) begin(validate func() error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tokens.Token() == "" {
		e.lastError = MsgAuthRequired
		log.Debug().Err(ErrAuthRequired).Msg("mutation rejected")
		return false
	}

	if validate != nil {
		if err := validate(); err != nil {
			e.lastError = MsgInvalidQuantity
			log.Debug().Err(err).Msg("mutation rejected")
			return false
		}
	}

	return true
}

// clearError drops the previous error once a mutation holds the queue
func (e *Engine) clearError() {
	e.mu.Lock()
	e.lastError = ""
	e.mu.Unlock()
}

func (e *Engine) install(snap Snapshot) {
	e.mu.Lock()
	e.items = snap.Items
	e.totalAmount = snap.TotalAmount
	e.mu.Unlock()
}

func (e *Engine) fail(op, msg string, err error) {
	e.mu.Lock()
	e.lastError = msg
	e.mu.Unlock()

	if api.IsTransport(err) {
		log.Error().Err(err).Str("op", op).Msg("cart request did not complete")
		return
	}
	log.Warn().Err(err).Str("op", op).Str("message", msg).Msg("cart request failed")
}

// failureMessage picks the user-visible message for err: a transport failure
// is always the generic network message, then the server's own message, then
// the operation fallback.
func failureMessage(err error, fallback string) string {
	if api.IsTransport(err) {
		return MsgNetworkError
	}
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return fallback
}
