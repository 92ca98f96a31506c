package scripture

import (
	"errors"
	"fmt"
)

// Kind classifies a failure talking to the scripture API.
type Kind string

const (
	// KindTransport covers network failures, timeouts and rate limiter waits.
	KindTransport Kind = "transport"
	// KindHTTPStatus is a non-2xx response from the API.
	KindHTTPStatus Kind = "http_status"
	// KindDecode is a response body that is not valid JSON for the resource.
	KindDecode Kind = "decode"
)

// Error is the only error type returned by Client methods.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	StatusCode int  // set for KindHTTPStatus
	Timeout    bool // set for KindTransport when the deadline was hit
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func transportError(method, path string, timeout bool, err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Method:  method,
		Path:    path,
		Timeout: timeout,
		Message: fmt.Sprintf("request failed: %v", err),
		Err:     err,
	}
}

func statusError(method, path string, code int, remoteMsg string) *Error {
	msg := fmt.Sprintf("API error: HTTP %d", code)
	if remoteMsg != "" {
		msg = fmt.Sprintf("%s (%s)", msg, remoteMsg)
	}
	return &Error{
		Kind:       KindHTTPStatus,
		Method:     method,
		Path:       path,
		StatusCode: code,
		Message:    msg,
	}
}

func decodeError(method, path string, err error) *Error {
	return &Error{
		Kind:    KindDecode,
		Method:  method,
		Path:    path,
		Message: "failed to decode JSON response",
		Err:     err,
	}
}

func kindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsTransport reports whether err is a network, timeout or rate limiter failure.
func IsTransport(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindTransport
}

// IsHTTPStatus reports whether err is a non-2xx response.
func IsHTTPStatus(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindHTTPStatus
}

// IsDecode reports whether err is a malformed response body.
func IsDecode(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindDecode
}
