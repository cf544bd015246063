package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultMaxBodySize caps how much of a body is logged
const DefaultMaxBodySize = 10000

const redacted = "[REDACTED]"

var sensitiveHeaders = []string{
	"authorization",
	"api-key",
	"x-api-key",
	"x-goog-api-key",
	"cookie",
	"set-cookie",
}

var sensitiveKeys = []string{
	"api_key", "apikey", "api-key", "key",
	"password", "secret", "token", "access_token",
	"authorization",
}

// RoundTripper logs completion backend traffic at debug level
type RoundTripper struct {
	wrapped     http.RoundTripper
	logger      *Logger
	maxBodySize int
}

// NewLoggingRoundTripper wraps rt (http.DefaultTransport when nil)
func NewLoggingRoundTripper(rt http.RoundTripper, logger *Logger) *RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	return &RoundTripper{wrapped: rt, logger: logger, maxBodySize: DefaultMaxBodySize}
}

// NewHTTPClient returns a client with the given timeout whose transport logs
// through logger when debug logging is enabled.
func NewHTTPClient(logger *Logger, timeout time.Duration) *http.Client {
	var transport http.RoundTripper = http.DefaultTransport
	if logger != nil && logger.Enabled(LevelDebug) {
		transport = NewLoggingRoundTripper(http.DefaultTransport, logger)
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// RoundTrip implements http.RoundTripper
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	var reqBody []byte
	if req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(reqBody))
	}

	rt.logger.Debug("HTTP request", Fields{
		"method":  req.Method,
		"url":     redactURL(req.URL),
		"headers": redactHeaders(req.Header),
		"body":    rt.bodyField(reqBody, true),
	})

	resp, err := rt.wrapped.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		rt.logger.Error("HTTP error", err, Fields{
			"method":      req.Method,
			"url":         redactURL(req.URL),
			"duration_ms": duration.Milliseconds(),
		})
		return nil, err
	}

	respBody, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(respBody))

	rt.logger.Debug("HTTP response", Fields{
		"status":      resp.StatusCode,
		"duration_ms": duration.Milliseconds(),
		"body_size":   len(respBody),
		"body":        rt.bodyField(respBody, false),
	})

	return resp, nil
}

// bodyField returns parsed JSON when possible so logs stay readable
func (rt *RoundTripper) bodyField(body []byte, redact bool) interface{} {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		var parsed interface{}
		if err := json.Unmarshal(body, &parsed); err == nil {
			if redact {
				return redactSensitiveFields(parsed)
			}
			return parsed
		}
	}
	if len(body) > rt.maxBodySize {
		return string(body[:rt.maxBodySize]) + "...[truncated]"
	}
	return string(body)
}

func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if isSensitive(k, sensitiveHeaders) {
			out[k] = redacted
		} else if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// redactURL hides the "key" query parameter some Google endpoints accept
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	if q.Has("key") {
		c := *u
		q.Set("key", redacted)
		c.RawQuery = q.Encode()
		return c.String()
	}
	return u.String()
}

func isSensitive(name string, list []string) bool {
	name = strings.ToLower(name)
	for _, s := range list {
		if name == s {
			return true
		}
	}
	return false
}

func redactSensitiveFields(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for k, val := range v {
			if isSensitive(k, sensitiveKeys) {
				result[k] = redacted
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
