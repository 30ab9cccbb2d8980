package emu

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the EMu clients. Every *Error matches exactly one
// of these with errors.Is.
var (
	// ErrMissingConfiguration indicates a required credential field is empty.
	ErrMissingConfiguration = errors.New("missing required configuration")

	// ErrTransport indicates the request never produced an HTTP response.
	ErrTransport = errors.New("transport failure")

	// ErrUnexpectedStatus indicates the API answered with a status the operation does not accept.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrTokenNotFound indicates a successful token request without a bearer header.
	ErrTokenNotFound = errors.New("bearer token not found in response headers")

	// ErrTokenNotSet indicates a token was needed before one was obtained.
	ErrTokenNotSet = errors.New("authentication token not set")

	// ErrUnauthorized indicates the API rejected the bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDecode indicates a 200 response whose body is not valid JSON.
	ErrDecode = errors.New("malformed JSON response")

	// ErrInvalidArgument indicates an empty resource or record identifier.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Kind classifies an Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingConfiguration
	KindTransport
	KindUnexpectedStatus
	KindTokenNotFound
	KindTokenNotSet
	KindUnauthorized
	KindNotFound
	KindDecode
	KindInvalidArgument
)

func (k Kind) sentinel() error {
	switch k {
	case KindMissingConfiguration:
		return ErrMissingConfiguration
	case KindTransport:
		return ErrTransport
	case KindUnexpectedStatus:
		return ErrUnexpectedStatus
	case KindTokenNotFound:
		return ErrTokenNotFound
	case KindTokenNotSet:
		return ErrTokenNotSet
	case KindUnauthorized:
		return ErrUnauthorized
	case KindNotFound:
		return ErrNotFound
	case KindDecode:
		return ErrDecode
	case KindInvalidArgument:
		return ErrInvalidArgument
	default:
		return nil
	}
}

// String returns the string representation of a Kind
func (k Kind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return "unknown error"
}

// Error is returned by every operation in this package.
type Error struct {
	// Op is the operation that failed: "auth", "retrieve" or "search".
	Op         string
	Kind       Kind
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("emu %s: %s", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": HTTP %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// IsNotFound checks if the error indicates a missing record
func (e *Error) IsNotFound() bool {
	return e.Kind == KindNotFound ||
		(e.Kind == KindUnexpectedStatus && e.StatusCode == http.StatusNotFound)
}

// IsUnauthorized checks if the error indicates the token was rejected
func (e *Error) IsUnauthorized() bool {
	return e.Kind == KindUnauthorized ||
		(e.Kind == KindUnexpectedStatus && e.StatusCode == http.StatusUnauthorized)
}

// KindOf returns the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func statusError(op string, kind Kind, code int) *Error {
	return &Error{Op: op, Kind: kind, StatusCode: code}
}

var (
	errMissingResource = errors.New("resource is required")
	errMissingRecordID = errors.New("record identifier is required")
)
