package gitlab

import (
	nethttp "net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// HTTP methods accepted by the executor.
const (
	MethodGet    = nethttp.MethodGet
	MethodPost   = nethttp.MethodPost
	MethodPut    = nethttp.MethodPut
	MethodDelete = nethttp.MethodDelete
)

// Request describes one HTTP call against the API. It is built per call,
// treated as immutable once built, and discarded when the call returns.
type Request struct {
	// Method is one of GET, POST, PUT, DELETE.
	Method string
	// Path is relative to the API root (no leading slash) and may carry
	// its own query string. Path segments must already be escaped.
	Path string
	// Query holds additional query parameters merged into the URL.
	Query url.Values
	// Body is marshaled to JSON when non-nil and the method allows a
	// payload.
	Body any
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     nethttp.Header
	Body       []byte
}

// Config holds the client configuration. It is validated at Build time
// and read-only afterwards.
type Config struct {
	// BaseURL is the root of the target instance, e.g.
	// "https://gitlab.example.com". The API prefix is appended by the
	// client.
	BaseURL string `validate:"required,http_url"`
	// Token authenticates every request. It is sent as the
	// private_token query parameter on entry URLs and as the
	// PRIVATE-TOKEN header on page-continuation requests.
	Token string `validate:"required"`
	// Timeout bounds each HTTP round trip.
	Timeout time.Duration
	// Retry guards round trips against transport failures.
	Retry RetryPolicy
	// RateLimit, when set, is awaited before every round trip.
	RateLimit *rate.Limiter
	// Transport overrides the HTTP transport. The default enables
	// TLS 1.2+ explicitly.
	Transport nethttp.RoundTripper
}
