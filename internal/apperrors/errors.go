package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the category of a request failure.
type Kind string

const (
	KindInvalidInput    Kind = "invalid_input"
	KindPayloadTooLarge Kind = "payload_too_large"
	KindTransport       Kind = "transport"
	KindUpstream        Kind = "upstream"
	KindDecode          Kind = "decode"
	KindInternal        Kind = "internal"
)

// MsgGeneric is shown to clients for failures that carry no safe message.
const MsgGeneric = "Something went wrong. Please try again."

// Error is a request failure with a client-safe message.
// Cause is kept for logs only and is never written to a response.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status that a failure of this kind maps to.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func NewInvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

func NewPayloadTooLarge(message string) *Error {
	return &Error{Kind: KindPayloadTooLarge, Message: message}
}

func NewTransport(message string, cause error) *Error {
	return &Error{Kind: KindTransport, Message: message, Cause: cause}
}

func NewUpstream(message string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Cause: cause}
}

func NewDecode(message string, cause error) *Error {
	return &Error{Kind: KindDecode, Message: message, Cause: cause}
}

func NewInternal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf extracts the failure kind, KindInternal for foreign errors.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// StatusCode extracts the HTTP status code from an error.
func StatusCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}

// Message returns the text that is safe to show to a client. Foreign errors
// get MsgGeneric so their details stay in the logs.
func Message(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Message
	}
	return MsgGeneric
}
