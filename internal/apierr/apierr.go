package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the machine-checkable error category surfaced to repository callers.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation - input failed a local precondition, no I/O was attempted
	KindValidation
	// KindTransient - timeout, connection loss or 5xx, safe to retry with backoff
	KindTransient
	// KindAuth - expired or invalid token, the session must be refreshed or dropped
	KindAuth
	// KindNotFound - the referenced entity no longer exists, the local state is stale
	KindNotFound
	// KindDecode - the wire row matched no known schema variant, this is a defect
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransient:
		return "transient"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not found"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// KindOf returns the kind carried by the error chain, or KindUnknown.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// FromStatus classifies a non-2xx HTTP status from the backend.
func FromStatus(statusCode int, message string) *Error {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return New(KindAuth, message)
	case statusCode == http.StatusNotFound || statusCode == http.StatusNotAcceptable:
		// PostgREST signals a failed single-row select with 406
		return New(KindNotFound, message)
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity || statusCode == http.StatusConflict:
		return New(KindValidation, message)
	case statusCode == http.StatusRequestTimeout || statusCode == http.StatusTooManyRequests || statusCode >= 500:
		return New(KindTransient, message)
	default:
		return New(KindUnknown, message)
	}
}
