package api

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse indicates a 2xx response whose body does not match the
// documented contract
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned when the API answers with a non-2xx status
type StatusError struct {
	Op      string
	Status  int
	Message string // server-supplied message, empty if the body carried none
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s failed with status %d", e.Op, e.Status)
}

// TransportError is returned when a request could not complete
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError describes why a response body was rejected.
// It matches ErrMalformedResponse with errors.Is.
type MalformedResponseError struct {
	Op     string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrMalformedResponse, e.Reason)
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// StatusCode extracts the HTTP status from err, or 0 if err is not a StatusError
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return 0
}

// IsTransport reports whether err means the request never completed
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
