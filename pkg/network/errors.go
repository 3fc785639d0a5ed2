package network

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates the failure classes of the request pipeline.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotReachable
	KindInvalidRequest
	KindTransport
	KindInvalidResponse
	KindDecoding
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotReachable:
		return "not_reachable"
	case KindInvalidRequest:
		return "invalid_request"
	case KindTransport:
		return "transport_error"
	case KindInvalidResponse:
		return "invalid_response"
	case KindDecoding:
		return "decoding_error"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by the request pipeline.
// Message is set for invalid requests; Err holds the cause for transport and decoding errors.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotReachable:
		return "network is not reachable"
	case KindInvalidRequest:
		return "invalid request: " + e.Message
	case KindTransport:
		return fmt.Sprintf("transport error: %v", e.Err)
	case KindInvalidResponse:
		return "invalid response"
	case KindDecoding:
		return fmt.Sprintf("decoding error: %v", e.Err)
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Message
	}
}

func (e *Error) Unwrap() error { return e.Err }

// ErrNotReachable is returned when the reachability check fails before any I/O.
var ErrNotReachable = &Error{Kind: KindNotReachable}

// ErrInvalidResponse is returned when the transport yields no usable response.
var ErrInvalidResponse = &Error{Kind: KindInvalidResponse}

// InvalidRequestError builds a KindInvalidRequest error.
func InvalidRequestError(message string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: message}
}

// TransportError wraps a transport-level failure.
func TransportError(cause error) *Error {
	return &Error{Kind: KindTransport, Err: cause}
}

// DecodingError wraps a payload decoding failure.
func DecodingError(cause error) *Error {
	return &Error{Kind: KindDecoding, Err: cause}
}

// KindOf reports the pipeline error kind carried by err, or KindUnknown.
func KindOf(err error) ErrorKind {
	var ne *Error
	if errors.As(err, &ne) {
		return ne.Kind
	}
	return KindUnknown
}
