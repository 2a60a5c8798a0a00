package api

import (
	"errors"
	"fmt"
)

// ErrSessionClosed is returned for calls made after Close
var ErrSessionClosed = errors.New("dappier client is closed")

// TransportError reports a failed round trip: the request could not be sent,
// the body could not be read, or the API answered with a non-2xx status.
// StatusCode is zero when no response was received.
type TransportError struct {
	StatusCode int
	Message    string
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError reports a response body that is not JSON or lacks a required field
type ParseError struct {
	Body string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingFieldError is returned by response decoders when a required key is absent
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}
