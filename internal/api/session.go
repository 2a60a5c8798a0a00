package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/quocvuong92/dappier-go/internal/logging"
)

// maxErrorBody bounds how much of a failed response is kept on errors
const maxErrorBody = 512

// SessionOptions configures a Session
type SessionOptions struct {
	// BaseURL overrides the API host, mainly for tests
	BaseURL string
	// HTTPClient is used instead of a private client. The caller keeps
	// ownership: Close does not release its connections.
	HTTPClient *http.Client
	// Timeout bounds each request. Zero keeps the transport default.
	Timeout time.Duration
	// HTTPLogger, when set, logs every request and response
	HTTPLogger *logging.HTTPLogger
}

// Session is a reusable HTTP handle that carries the API key on every
// request. It is safe for concurrent use.
type Session struct {
	httpClient *http.Client
	baseURL    string
	owned      bool
	closed     atomic.Bool
}

// Request describes one POST to the Dappier API
type Request struct {
	// Operation names the call in metrics and logs
	Operation string
	Path      string
	Query     url.Values
	Body      interface{}
}

// NewSession builds a session whose requests carry "Authorization: Bearer <apiKey>"
func NewSession(apiKey, baseURL string, opts SessionOptions) *Session {
	var client http.Client
	owned := opts.HTTPClient == nil
	if owned {
		// A private pool so Close never touches http.DefaultTransport
		if dt, ok := http.DefaultTransport.(*http.Transport); ok {
			client.Transport = dt.Clone()
		}
	} else {
		client = *opts.HTTPClient
	}

	if opts.Timeout > 0 {
		client.Timeout = opts.Timeout
	}

	transport := client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if opts.HTTPLogger != nil {
		transport = logging.NewLoggingTransport(transport, opts.HTTPLogger, true)
	}
	client.Transport = &apiKeyTransport{base: transport, apiKey: apiKey}

	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}

	return &Session{
		httpClient: &client,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		owned:      owned,
	}
}

// BaseURL returns the API host requests are sent to
func (s *Session) BaseURL() string {
	return s.baseURL
}

// Closed reports whether Close has been called
func (s *Session) Closed() bool {
	return s.closed.Load()
}

// Close releases pooled connections. Only the first call has an effect.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	if s.owned {
		s.httpClient.CloseIdleConnections()
	}
}

// PostJSON sends req.Body as JSON and decodes a 2xx response into out
func (s *Session) PostJSON(ctx context.Context, req Request, out interface{}) error {
	if s.Closed() {
		return ErrSessionClosed
	}

	start := time.Now()
	outcome := OutcomeSuccess
	defer func() {
		requestsTotal.WithLabelValues(req.Operation, outcome).Inc()
		requestDuration.WithLabelValues(req.Operation).Observe(time.Since(start).Seconds())
	}()

	payload, err := json.Marshal(req.Body)
	if err != nil {
		outcome = OutcomeTransportError
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := s.baseURL + req.Path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		outcome = OutcomeTransportError
		return &TransportError{Message: "failed to create request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		outcome = OutcomeTransportError
		return &TransportError{Message: "failed to send request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		outcome = OutcomeTransportError
		return &TransportError{StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = OutcomeHTTPError
		return &TransportError{
			StatusCode: resp.StatusCode,
			Message: fmt.Sprintf("Dappier API error: %d %s for url: %s",
				resp.StatusCode, http.StatusText(resp.StatusCode), endpoint),
			Body: snippet(body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		outcome = OutcomeParseError
		return &ParseError{Body: snippet(body), Err: err}
	}

	return nil
}

func snippet(body []byte) string {
	if len(body) <= maxErrorBody {
		return string(body)
	}
	return string(body[:maxErrorBody]) + "...[truncated]"
}

// apiKeyTransport adds the Authorization header to every request
type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.apiKey)
	return t.base.RoundTrip(cloned)
}

func (t *apiKeyTransport) CloseIdleConnections() {
	if ci, ok := t.base.(interface{ CloseIdleConnections() }); ok {
		ci.CloseIdleConnections()
	}
}
