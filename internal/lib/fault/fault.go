// Package fault classifies failures so handlers can map them to HTTP status
// codes without string matching. The underlying provider or parser error is
// kept wrapped as the diagnostic detail.
package fault

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind identifies the failure class of an error.
type Kind string

const (
	// Validation covers malformed or missing request input.
	Validation Kind = "validation"
	// UpstreamTimeout covers provider calls that exceeded their deadline.
	UpstreamTimeout Kind = "upstream_timeout"
	// UpstreamResponse covers non-success statuses, network failures, and
	// malformed payloads from a provider.
	UpstreamResponse Kind = "upstream_response"
	// Generation covers failures of the text-generation call.
	Generation Kind = "generation"
	// Internal is the default for unclassified errors.
	Internal Kind = "internal"
)

// Error carries a failure kind, the operation that produced it, and the
// wrapped cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with a kind and operation name.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf is New with a formatted message as the cause.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of err, or Internal when err carries none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Internal
}

// FromRequestError classifies a failed outbound HTTP call. Deadline and
// net timeouts become UpstreamTimeout; everything else UpstreamResponse.
func FromRequestError(op string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return New(UpstreamTimeout, op, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return New(UpstreamTimeout, op, err)
	}
	return New(UpstreamResponse, op, err)
}
