package gitlab

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	kgzip "github.com/klauspost/compress/gzip"
	"golang.org/x/time/rate"

	"github.com/gaborage/go-scm/logger"
)

const (
	// DefaultTimeout is the default HTTP round-trip timeout.
	DefaultTimeout = 30 * time.Second

	// apiPrefix is appended to the base URL for every call.
	apiPrefix = "/api/v4/"

	headerAccept        = "Accept"
	headerEncoding      = "Accept-Encoding"
	headerContentType   = "Content-Type"
	headerRequestID     = "X-Request-ID"
	headerPrivateToken  = "PRIVATE-TOKEN"
	tokenQueryParam     = "private_token"
	contentTypeJSON     = "application/json"
	acceptEncodingGzip  = "gzip"
	contentEncodingGzip = "gzip"
)

var validate = validator.New()

// Client executes REST calls against one GitLab-compatible instance.
// It is safe for concurrent use; each call owns its request and
// connection exclusively and releases them before returning.
type Client struct {
	httpClient *nethttp.Client
	logger     logger.Logger
	config     *Config
	apiBase    *url.URL
}

// Builder provides a fluent interface for configuring the client.
type Builder struct {
	config *Config
	logger logger.Logger
}

// NewBuilder creates a client builder with default configuration.
func NewBuilder(log logger.Logger) *Builder {
	return &Builder{
		config: &Config{
			Timeout: DefaultTimeout,
			Retry: RetryPolicy{
				MaxAttempts: DefaultMaxAttempts,
				Interval:    DefaultRetryInterval,
			},
		},
		logger: log,
	}
}

// WithBaseURL sets the root URL of the target instance.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.BaseURL = baseURL
	return b
}

// WithToken sets the authentication token.
func (b *Builder) WithToken(token string) *Builder {
	b.config.Token = token
	return b
}

// WithTimeout sets the per-round-trip timeout.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.config.Timeout = timeout
	return b
}

// WithRetry sets the retry policy: total attempts and the constant wait
// between them.
func (b *Builder) WithRetry(maxAttempts int, interval time.Duration) *Builder {
	b.config.Retry.MaxAttempts = maxAttempts
	b.config.Retry.Interval = interval
	return b
}

// WithRetryPredicate narrows which transport failures are retried.
func (b *Builder) WithRetryPredicate(retryable func(error) bool) *Builder {
	b.config.Retry.Retryable = retryable
	return b
}

// WithRateLimit caps outbound requests at rps with the given burst.
func (b *Builder) WithRateLimit(rps float64, burst int) *Builder {
	b.config.RateLimit = rate.NewLimiter(rate.Limit(rps), burst)
	return b
}

// WithTransport overrides the HTTP transport, e.g. for tests.
func (b *Builder) WithTransport(transport nethttp.RoundTripper) *Builder {
	b.config.Transport = transport
	return b
}

// Build validates the configuration and creates the client. TLS and
// timeout settings are established here, once, never as process-global
// mutation.
func (b *Builder) Build() (*Client, error) {
	if err := validate.Struct(b.config); err != nil {
		return nil, fmt.Errorf("invalid client configuration: %w", err)
	}

	// The trailing slash keeps relative path references resolving under
	// the API prefix instead of replacing its last segment.
	apiBase, err := url.Parse(strings.TrimRight(b.config.BaseURL, "/") + apiPrefix)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", b.config.BaseURL, err)
	}

	transport := b.config.Transport
	if transport == nil {
		transport = &nethttp.Transport{
			Proxy:           nethttp.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		}
	}

	return &Client{
		httpClient: &nethttp.Client{
			Timeout:   b.config.Timeout,
			Transport: transport,
		},
		logger:  b.logger,
		config:  b.config,
		apiBase: apiBase,
	}, nil
}

// entryURL builds the absolute URL for a request descriptor with the
// token appended as a query parameter.
func (c *Client) entryURL(r *Request) (string, error) {
	ref, err := url.Parse(r.Path)
	if err != nil {
		return "", fmt.Errorf("invalid request path %q: %w", r.Path, err)
	}
	u := c.apiBase.ResolveReference(ref)

	q := u.Query()
	for key, values := range r.Query {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set(tokenQueryParam, c.config.Token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// send issues one request through the rate limiter and the retry
// policy. build is invoked per attempt so request bodies are re-created.
// Transport failures that exhaust the policy propagate unchanged.
func (c *Client) send(ctx context.Context, build func() (*nethttp.Request, error)) (*nethttp.Response, error) {
	op := func() (*nethttp.Response, error) {
		if c.config.RateLimit != nil {
			if err := c.config.RateLimit.Wait(ctx); err != nil {
				return nil, backoff.Permanent(err)
			}
		}
		httpReq, err := build()
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		return c.httpClient.Do(httpReq)
	}
	return retryDo(ctx, c.config.Retry, op)
}

// execute runs a request descriptor end to end and returns the response
// with a body reader that transparently decompresses gzip. Non-2xx
// responses are translated into *APIError; the connection is always
// released before an error returns.
func (c *Client) execute(ctx context.Context, r *Request) (*nethttp.Response, io.ReadCloser, error) {
	callURL, err := c.entryURL(r)
	if err != nil {
		return nil, nil, err
	}

	var bodyBytes []byte
	if r.Body != nil {
		bodyBytes, err = json.Marshal(r.Body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	requestID := uuid.NewString()
	c.logRequest(r.Method, callURL, requestID, bodyBytes)
	start := time.Now()

	resp, err := c.send(ctx, func() (*nethttp.Request, error) {
		return c.buildHTTPRequest(ctx, r.Method, callURL, requestID, bodyBytes)
	})
	if err != nil {
		return nil, nil, err
	}

	c.logResponse(resp.StatusCode, requestID, time.Since(start))

	body, err := decompressedBody(resp)
	if err != nil {
		closeQuietly(resp.Body)
		return nil, nil, err
	}

	if !IsSuccessStatus(resp.StatusCode) {
		raw, _ := io.ReadAll(body)
		closeQuietly(body)
		message, parsed := translateErrorBody(raw)
		return nil, nil, &APIError{
			StatusCode:  resp.StatusCode,
			Message:     message,
			Raw:         parsed,
			Method:      r.Method,
			URL:         callURL,
			RequestBody: bodyBytes,
		}
	}

	return resp, body, nil
}

// buildHTTPRequest constructs the transport request for one attempt.
func (c *Client) buildHTTPRequest(ctx context.Context, method, callURL, requestID string, body []byte) (*nethttp.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else if method == MethodPut {
		// Some servers reject a PUT without a declared length.
		reader = bytes.NewReader(nil)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, method, callURL, reader)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set(headerAccept, contentTypeJSON)
	httpReq.Header.Set(headerEncoding, acceptEncodingGzip)
	httpReq.Header.Set(headerRequestID, requestID)
	if body != nil {
		httpReq.Header.Set(headerContentType, contentTypeJSON)
	}
	return httpReq, nil
}

// Stream executes the request and hands the raw response body to
// consume. The connection stays open only for the duration of the
// consume call and is released on every exit path, including a consume
// failure.
func (c *Client) Stream(ctx context.Context, r *Request, consume func(io.Reader) error) error {
	_, body, err := c.execute(ctx, r)
	if err != nil {
		return err
	}
	defer closeQuietly(body)

	if consume == nil {
		return nil
	}
	return consume(body)
}

// Do executes the request and returns the fully read response.
func (c *Client) Do(ctx context.Context, r *Request) (*Response, error) {
	resp, body, err := c.execute(ctx, r)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(body)

	payload, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       payload,
	}, nil
}

// Fetch executes the request and decodes the JSON response body into T.
// A body that does not match T yields a *DecodeError.
func Fetch[T any](ctx context.Context, c *Client, r *Request) (T, error) {
	var out T
	err := c.Stream(ctx, r, func(body io.Reader) error {
		if err := json.NewDecoder(body).Decode(&out); err != nil {
			return &DecodeError{Method: r.Method, URL: r.Path, Err: err}
		}
		return nil
	})
	return out, err
}

// decompressedBody wraps the response body with a gzip reader when the
// server honored the gzip encoding request.
func decompressedBody(resp *nethttp.Response) (io.ReadCloser, error) {
	if resp.Header.Get("Content-Encoding") != contentEncodingGzip {
		return resp.Body, nil
	}
	gz, err := kgzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("opening gzip response body: %w", err)
	}
	return &gzipBody{gz: gz, raw: resp.Body}, nil
}

// gzipBody couples a gzip reader with the underlying connection so both
// are released together.
type gzipBody struct {
	gz  *kgzip.Reader
	raw io.ReadCloser
}

func (g *gzipBody) Read(p []byte) (int, error) {
	return g.gz.Read(p)
}

func (g *gzipBody) Close() error {
	gzErr := g.gz.Close()
	if rawErr := g.raw.Close(); rawErr != nil {
		return rawErr
	}
	return gzErr
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}

func (c *Client) logRequest(method, callURL, requestID string, body []byte) {
	if c.logger == nil {
		return
	}
	logEvent := c.logger.Info().
		Str("direction", "outbound").
		Str("method", method).
		Str("url", callURL).
		Str("request_id", requestID)
	if len(body) > 0 {
		logEvent = logEvent.Bytes("body", body)
	}
	logEvent.Msg("REST client request")
}

func (c *Client) logResponse(status int, requestID string, elapsed time.Duration) {
	if c.logger == nil {
		return
	}
	c.logger.Info().
		Str("direction", "inbound").
		Int("status", status).
		Str("request_id", requestID).
		Dur("elapsed", elapsed).
		Msg("REST client response")
}
