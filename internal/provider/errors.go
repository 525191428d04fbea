package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies why a provider call did not produce a translation.
type ErrorKind string

const (
	ErrTransport ErrorKind = "transport"
	ErrTimeout   ErrorKind = "timeout"
	ErrStatus    ErrorKind = "status"
	ErrDecode    ErrorKind = "decode"
	ErrEmpty     ErrorKind = "empty"
	ErrEcho      ErrorKind = "echo"
	ErrRejected  ErrorKind = "rejected"
	ErrPanic     ErrorKind = "panic"
)

// Error is the failure of a single provider call. It never leaves the
// cascade: it is logged, counted and the next tier is tried.
type Error struct {
	Provider string
	Kind     ErrorKind
	// Status is the HTTP status for ErrStatus, or the status reported inside
	// the response body.
	Status int
	Err    error
}

func (e *Error) Error() string {
	msg := e.Provider + ": " + string(e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an Error of the given kind.
func NewError(provider string, kind ErrorKind, err error) *Error {
	return &Error{Provider: provider, Kind: kind, Err: err}
}

// StatusError reports an unexpected HTTP or in-body status.
func StatusError(provider string, status int) *Error {
	return &Error{Provider: provider, Kind: ErrStatus, Status: status}
}

// TransportError wraps a failed HTTP round trip, telling timeouts apart.
func TransportError(provider string, err error) *Error {
	kind := ErrTransport
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = ErrTimeout
	}
	return &Error{Provider: provider, Kind: kind, Err: err}
}

// KindOf returns the kind of a provider error, or "" if err is not one.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
