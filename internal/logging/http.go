package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultMaxBodySize caps how much of a body is written to the log
const DefaultMaxBodySize = 10000

// HTTPLogger logs Dappier API requests and responses at debug level
type HTTPLogger struct {
	logger      *Logger
	maxBodySize int
}

// NewHTTPLogger creates a new HTTP logger
func NewHTTPLogger(logger *Logger) *HTTPLogger {
	return &HTTPLogger{
		logger:      logger,
		maxBodySize: DefaultMaxBodySize,
	}
}

// SetMaxBodySize sets the maximum body size to log (in bytes)
func (h *HTTPLogger) SetMaxBodySize(size int) {
	h.maxBodySize = size
}

// LogRequest logs an outgoing request. Credentials are redacted.
func (h *HTTPLogger) LogRequest(req *http.Request, body []byte) {
	fields := Fields{
		"method":  req.Method,
		"url":     req.URL.String(),
		"headers": redactHeaders(req.Header),
	}
	if len(body) > 0 {
		fields["body"] = h.bodyField(body, true)
		fields["body_size"] = len(body)
	}
	h.logger.Debug("HTTP Request", fields)
}

// LogResponse logs a received response
func (h *HTTPLogger) LogResponse(resp *http.Response, body []byte, duration time.Duration) {
	fields := Fields{
		"status":      resp.StatusCode,
		"status_text": resp.Status,
		"duration_ms": duration.Milliseconds(),
		"headers":     redactHeaders(resp.Header),
	}
	if len(body) > 0 {
		fields["body"] = h.bodyField(body, false)
		fields["body_size"] = len(body)
	}
	h.logger.Debug("HTTP Response", fields)
}

// LogError logs a transport failure
func (h *HTTPLogger) LogError(err error, req *http.Request, duration time.Duration) {
	h.logger.Error("HTTP Error", err, Fields{
		"method":      req.Method,
		"url":         req.URL.String(),
		"duration_ms": duration.Milliseconds(),
	})
}

func (h *HTTPLogger) bodyField(body []byte, redact bool) interface{} {
	if json.Valid(body) {
		var parsed interface{}
		if err := json.Unmarshal(body, &parsed); err == nil {
			if redact {
				return redactSensitiveFields(parsed)
			}
			return parsed
		}
	}
	return truncateBody(body, h.maxBodySize)
}

// LoggingTransport wraps an http.RoundTripper and logs every round trip
type LoggingTransport struct {
	wrapped http.RoundTripper
	logger  *HTTPLogger
	logBody bool
}

// NewLoggingTransport creates a new logging round tripper
func NewLoggingTransport(wrapped http.RoundTripper, logger *HTTPLogger, logBody bool) *LoggingTransport {
	if wrapped == nil {
		wrapped = http.DefaultTransport
	}
	return &LoggingTransport{
		wrapped: wrapped,
		logger:  logger,
		logBody: logBody,
	}
}

// RoundTrip implements http.RoundTripper
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	var reqBody []byte
	if t.logBody && req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(reqBody))
	}
	t.logger.LogRequest(req, reqBody)

	resp, err := t.wrapped.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		t.logger.LogError(err, req, duration)
		return nil, err
	}

	var respBody []byte
	if t.logBody && resp.Body != nil {
		respBody, _ = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(respBody))
	}
	t.logger.LogResponse(resp, respBody, duration)

	return resp, nil
}

// CloseIdleConnections forwards to the wrapped transport when it supports it
func (t *LoggingTransport) CloseIdleConnections() {
	if ci, ok := t.wrapped.(interface{ CloseIdleConnections() }); ok {
		ci.CloseIdleConnections()
	}
}

func redactHeaders(h http.Header) map[string]string {
	headers := make(map[string]string, len(h))
	for k, v := range h {
		if isSensitiveHeader(k) {
			headers[k] = "[REDACTED]"
		} else if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	return headers
}

func isSensitiveHeader(name string) bool {
	switch strings.ToLower(name) {
	case "authorization", "api-key", "x-api-key", "x-auth-token", "cookie", "set-cookie":
		return true
	}
	return false
}

func truncateBody(body []byte, maxSize int) string {
	if len(body) <= maxSize {
		return string(body)
	}
	return string(body[:maxSize]) + "...[truncated]"
}

// redactSensitiveFields replaces values of credential-like keys in parsed JSON
func redactSensitiveFields(data interface{}) interface{} {
	sensitiveKeys := []string{
		"api_key", "apikey", "api-key",
		"password", "secret", "token",
		"authorization",
	}

	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for k, val := range v {
			keyLower := strings.ToLower(k)
			sensitive := false
			for _, s := range sensitiveKeys {
				if strings.Contains(keyLower, s) {
					sensitive = true
					break
				}
			}
			if sensitive {
				result[k] = "[REDACTED]"
			} else {
				result[k] = redactSensitiveFields(val)
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = redactSensitiveFields(item)
		}
		return result
	default:
		return data
	}
}
