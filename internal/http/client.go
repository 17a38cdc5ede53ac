package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/ptero/internal/constants"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
	"github.com/hashicorp/go-retryablehttp"
)

const defaultUserAgent = "ptero-go/1.0"

// Request is one call against the panel API.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string
}

// Response is the raw outcome of a request.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client sends authenticated requests to one panel.
type Client struct {
	baseURL      string
	token        string
	userAgent    string
	httpClient   *retryablehttp.Client
	logger       ptero.Logger
	debug        bool
	interceptors *ptero.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger ptero.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.httpClient.Logger = &retryLogger{logger: logger}
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHTTPClient uses a copy of httpClient, so its transport is shared but
// the caller's Timeout is left alone.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			clone := *httpClient
			clone.Timeout = c.httpClient.HTTPClient.Timeout
			c.httpClient.HTTPClient = &clone
		}
	}
}

// WithTimeout bounds each attempt. Values under one second are raised to
// one second.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout <= 0 {
			timeout = constants.DefaultHTTPTimeout
		}

		c.httpClient.HTTPClient.Timeout = max(timeout, constants.MinHTTPTimeout)
	}
}

// WithRetryConfig enables retries of 429 and 5xx responses.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = max(0, retryMax)

		if waitMin > 0 {
			c.httpClient.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.httpClient.RetryWaitMax = waitMax
		}
	}
}

// WithInterceptors installs request and response interceptors.
func WithInterceptors(chain *ptero.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a client for baseURL that authenticates with token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		userAgent:  defaultUserAgent,
		httpClient: retryClient,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// WithToken returns a copy that authenticates with token. The copy shares
// the connection pool.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token

	return &clone
}

// BaseURL returns the panel root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends req. The error is non-nil only when no HTTP response was
// obtained; non-2xx statuses are returned as responses.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return c.send(ctx, httpReq)
}

// Upload posts one file as multipart/form-data to an absolute signed URL.
// The signed URL carries its own authorization, so no token is sent.
func (c *Client) Upload(ctx context.Context, signedURL string, file Multipart) (*Response, error) {
	body, contentType, err := file.encode()
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, signedURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Content-Type", contentType)

	return c.send(ctx, httpReq)
}

func (c *Client) send(ctx context.Context, httpReq *retryablehttp.Request) (*Response, error) {
	if err := c.interceptors.ExecuteRequestInterceptors(ctx, httpReq.Request); err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": httpReq.Method,
			"url":    redactQuery(httpReq.URL),
		})
	}

	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	if err := c.interceptors.ExecuteResponseInterceptors(ctx, resp); err != nil {
		return nil, err
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		fields := map[string]interface{}{
			"status":   resp.StatusCode,
			"duration": time.Since(start).String(),
			"bytes":    len(respBody),
		}

		for field, header := range rateLimitLogHeaders {
			if value := resp.Header.Get(header); value != "" {
				fields[field] = value
			}
		}

		c.logger.Debug("HTTP Response", fields)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}, nil
}

var rateLimitLogHeaders = map[string]string{
	"ratelimit_limit":     "X-RateLimit-Limit",
	"ratelimit_remaining": "X-RateLimit-Remaining",
	"ratelimit_reset":     "X-RateLimit-Reset",
	"retry_after":         "Retry-After",
}

// encodeBody sends strings raw as text/plain and everything else as JSON.
func encodeBody(body any) (io.Reader, string, error) {
	switch typed := body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return strings.NewReader(typed), "text/plain", nil
	case []byte:
		return bytes.NewReader(typed), "application/octet-stream", nil
	default:
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("encoding request body: %w", err)
		}

		return bytes.NewReader(encoded), "application/json", nil
	}
}

// redactQuery drops signature parameters from logged upload URLs.
func redactQuery(u *url.URL) string {
	if u.RawQuery == "" {
		return u.String()
	}

	clone := *u
	query := clone.Query()

	for key := range query {
		if strings.EqualFold(key, "signature") || strings.EqualFold(key, "token") {
			query.Set(key, constants.MaskedSecret)
		}
	}

	clone.RawQuery = query.Encode()

	return clone.String()
}
