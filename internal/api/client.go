package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultTimeout bounds a single request when no timeout is configured
	DefaultTimeout = 30 * time.Second

	// maxBodyBytes caps how much of a response body is read
	maxBodyBytes = 4 << 20
)

// TokenProvider supplies the current session bearer token.
// An empty string means no session.
type TokenProvider interface {
	Token() string
}

// Client wraps http.Client for the storefront API.
// Automatically injects:
// - Authorization: Bearer <token> (authenticated endpoints only)
// - X-Correlation-ID: <uuid>
//
// Nothing is retried. A failed request surfaces as a StatusError,
// TransportError or MalformedResponseError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout; 0 disables it
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// NewClient creates a client for the API rooted at baseURL.
// tokens may be nil when only unauthenticated endpoints are used.
func NewClient(baseURL string, tokens TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request describes one API call
type request struct {
	op            string // operation name used in errors and logs
	method        string
	path          string
	authenticated bool
	body          any
}

// do executes req and returns the raw response body of a 2xx response
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	correlationID := uuid.New().String()

	logger := log.With().
		Str("op", req.op).
		Str("method", req.method).
		Str("path", req.path).
		Str("correlationId", correlationID).
		Logger()

	var payload io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to marshal request: %w", req.op, err)
		}
		payload = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, payload)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", req.op, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Correlation-ID", correlationID)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if req.authenticated && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
			logger.Debug().Msg("injected bearer token")
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		logger.Error().Err(err).Dur("duration", duration).Msg("HTTP request failed")
		return nil, &TransportError{Op: req.op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		logger.Error().Err(err).Int("status", resp.StatusCode).Msg("failed to read response body")
		return nil, &TransportError{Op: req.op, Err: err}
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Int("bytes", len(body)).
		Msg("HTTP request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{
			Op:      req.op,
			Status:  resp.StatusCode,
			Message: errorMessage(body),
		}
		logger.Warn().
			Int("status", resp.StatusCode).
			Str("message", statusErr.Message).
			Msg("request rejected by server")
		return nil, statusErr
	}

	return body, nil
}

// decodeJSON unmarshals a 2xx body, reporting contract violations as malformed responses
func decodeJSON(op string, body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return &MalformedResponseError{Op: op, Reason: "empty body"}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &MalformedResponseError{Op: op, Reason: err.Error()}
	}
	return nil
}
