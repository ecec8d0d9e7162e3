// ABOUTME: Error taxonomy for REST API calls
// ABOUTME: Classifies transport, status and decode failures behind one RequestError type

package client

import (
	"errors"
	"fmt"
)

// Kind classifies why a request failed so callers can pick a presentation
type Kind int

const (
	KindUnknown   Kind = iota
	KindTransport      // connection refused, DNS, reset
	KindCanceled       // caller canceled the context
	KindTimeout        // context deadline or client timeout
	KindStatus         // backend answered with a non-2xx status
	KindDecode         // body was not the expected JSON
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindCanceled:
		return "canceled"
	case KindTimeout:
		return "timeout"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// RequestError is returned by every resource call that does not succeed
type RequestError struct {
	Op         string // e.g. "fetch products"
	Kind       Kind
	StatusCode int    // set for KindStatus
	Status     string // HTTP status line text, e.g. "500 Internal Server Error"
	Detail     string // message from the error body, if the backend sent one
	Err        error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Detail != "" {
			return fmt.Sprintf("failed to %s: %s (%s)", e.Op, e.Status, e.Detail)
		}
		return fmt.Sprintf("failed to %s: %s", e.Op, e.Status)
	case KindCanceled:
		return fmt.Sprintf("failed to %s: request canceled", e.Op)
	case KindTimeout:
		return fmt.Sprintf("failed to %s: request timed out", e.Op)
	case KindDecode:
		return fmt.Sprintf("failed to %s: invalid response from backend: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err, or KindUnknown for foreign errors
func KindOf(err error) Kind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return KindUnknown
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}
