package dappier

import (
	"errors"
	"fmt"

	"github.com/quocvuong92/dappier-go/internal/api"
	"github.com/quocvuong92/dappier-go/internal/config"
)

// ErrAPIKeyNotFound is wrapped by the ConfigurationError returned from New
// and NewAsync when no key is passed and DAPPIER_API_KEY is unset.
var ErrAPIKeyNotFound = config.ErrAPIKeyNotFound

// ErrInvalidSearchAlgorithm is returned for an algorithm the API does not know
var ErrInvalidSearchAlgorithm = config.ErrInvalidSearchAlgorithm

// ErrClientClosed is returned for calls made after Close
var ErrClientClosed = api.ErrSessionClosed

// ErrCallPending is returned by Call.Err before the call has finished
var ErrCallPending = errors.New("dappier call still in flight")

// TransportError reports a network failure or a non-2xx status.
// StatusCode is zero when no response was received.
type TransportError = api.TransportError

// ParseError reports a response body that is not the expected JSON shape
type ParseError = api.ParseError

// ConfigurationError is returned by the constructors. It is never swallowed.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("dappier configuration error: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
