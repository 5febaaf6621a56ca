package errors

import (
	stderr "errors"
	"fmt"
	"time"
)

const _defaultRequestFailedMessage = "Request failed"

// RequestTimeoutError indicates that no response was received for a request within the allowed window.
type RequestTimeoutError struct {
	Command string
	Timeout time.Duration
}

// Error is an implementation of the error interface.
func (e *RequestTimeoutError) Error() string {
	return fmt.Sprintf("request %q timed out after %s", e.Command, e.Timeout)
}

// IsTimeout reports whether a RequestTimeoutError is part of the error chain.
func IsTimeout(e error) bool {
	var te *RequestTimeoutError
	return stderr.As(e, &te)
}

// RequestFailedError indicates that the backend answered a request with success set to false.
type RequestFailedError struct {
	Command string
	Message string
}

// Error is an implementation of the error interface.
func (e *RequestFailedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = _defaultRequestFailedMessage
	}
	if e.Command == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Command, msg)
}

// ProtocolError indicates that a length-prefixed frame carried a payload that is not valid JSON.
type ProtocolError struct {
	Payload []byte
	Err     error
}

// Error is an implementation of the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("malformed frame payload (%d bytes): %v", len(e.Payload), e.Err)
}

// Unwrap returns the underlying parse error.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}
