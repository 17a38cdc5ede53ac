package ptero

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// HeaderRequestID carries the per-request correlation ID.
const HeaderRequestID = "X-Request-ID"

// ErrCircuitOpen is returned by the circuit breaker interceptor while the
// breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// RequestInterceptor is called before a request is sent. Returning an error
// aborts the request; it is reported as a transport failure.
type RequestInterceptor func(ctx context.Context, req *http.Request) error

// ResponseInterceptor is called after a response is received, before its body
// is read.
type ResponseInterceptor func(ctx context.Context, resp *http.Response) error

// InterceptorChain runs interceptors in registration order.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a chain from the given interceptors.
func NewInterceptorChain(request []RequestInterceptor, response []ResponseInterceptor) *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  append([]RequestInterceptor(nil), request...),
		responseInterceptors: append([]ResponseInterceptor(nil), response...),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// Empty reports whether the chain has no interceptors.
func (c *InterceptorChain) Empty() bool {
	return c == nil || (len(c.requestInterceptors) == 0 && len(c.responseInterceptors) == 0)
}

// ExecuteRequestInterceptors runs all request interceptors.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *http.Request) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, resp *http.Response) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// LoggingInterceptor logs requests.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(_ context.Context, req *http.Request) error {
		logger.Debug("API Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.URL.Path,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs responses. 4xx and 5xx are logged as errors.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(_ context.Context, resp *http.Response) error {
		fields := map[string]interface{}{
			"status_code": resp.StatusCode,
		}

		if resp.Request != nil {
			fields["method"] = resp.Request.Method
			fields["path"] = resp.Request.URL.Path
		}

		if resp.StatusCode >= http.StatusBadRequest {
			logger.Error("API Response Error", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// HeaderInterceptor adds custom headers to requests.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(_ context.Context, req *http.Request) error {
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		return nil
	}
}

// RequestIDInterceptor sets X-Request-ID to a random UUID unless the caller
// already set one.
func RequestIDInterceptor() RequestInterceptor {
	return func(_ context.Context, req *http.Request) error {
		if req.Header.Get(HeaderRequestID) == "" {
			req.Header.Set(HeaderRequestID, uuid.NewString())
		}

		return nil
	}
}

// RateLimitInterceptor throttles requests client-side to rps requests per
// second with the given burst. It waits for a token or for ctx to end.
func RateLimitInterceptor(rps float64, burst int) RequestInterceptor {
	limiter := rate.NewLimiter(rate.Limit(rps), max(1, burst))

	return func(ctx context.Context, _ *http.Request) error {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}

		return nil
	}
}

// Metrics are the counters kept per endpoint.
type Metrics struct {
	TotalRequests   int64
	TotalErrors     int64
	StatusClasses   map[string]int64
	TotalLatency    time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time
}

// MetricsCollector collects API metrics keyed by "METHOD /path".
type MetricsCollector struct {
	mu       sync.Mutex
	metrics  map[string]*Metrics
	onChange func(endpoint string, metrics Metrics)
}

type metricsStartKey struct{}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics: make(map[string]*Metrics),
	}
}

// SetOnChange sets a callback invoked with a snapshot after every response.
func (m *MetricsCollector) SetOnChange(fn func(endpoint string, metrics Metrics)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onChange = fn
}

// GetMetrics returns a snapshot for an endpoint, or nil.
func (m *MetricsCollector) GetMetrics(endpoint string) *Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics, ok := m.metrics[endpoint]
	if !ok {
		return nil
	}

	snapshot := metrics.snapshot()

	return &snapshot
}

// Endpoints returns the endpoints seen so far.
func (m *MetricsCollector) Endpoints() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	endpoints := make([]string, 0, len(m.metrics))
	for endpoint := range m.metrics {
		endpoints = append(endpoints, endpoint)
	}

	return endpoints
}

// RequestInterceptor stamps the start time onto the request's context, so a
// request that never gets a response leaves nothing behind.
func (m *MetricsCollector) RequestInterceptor() RequestInterceptor {
	return func(_ context.Context, req *http.Request) error {
		*req = *req.WithContext(context.WithValue(req.Context(), metricsStartKey{}, time.Now()))

		return nil
	}
}

// ResponseInterceptor records the outcome of each response.
func (m *MetricsCollector) ResponseInterceptor() ResponseInterceptor {
	return func(_ context.Context, resp *http.Response) error {
		endpoint := "UNKNOWN"

		var latency time.Duration

		if resp.Request != nil {
			endpoint = fmt.Sprintf("%s %s", resp.Request.Method, resp.Request.URL.Path)

			if start, ok := resp.Request.Context().Value(metricsStartKey{}).(time.Time); ok {
				latency = time.Since(start)
			}
		}

		m.mu.Lock()

		metrics, ok := m.metrics[endpoint]
		if !ok {
			metrics = &Metrics{StatusClasses: map[string]int64{}}
			m.metrics[endpoint] = metrics
		}

		metrics.TotalRequests++
		metrics.LastRequestTime = time.Now()
		metrics.StatusClasses[fmt.Sprintf("%dxx", resp.StatusCode/100)]++
		metrics.TotalLatency += latency
		metrics.AverageLatency = metrics.TotalLatency / time.Duration(metrics.TotalRequests)

		if resp.StatusCode >= http.StatusBadRequest {
			metrics.TotalErrors++
		}

		onChange := m.onChange
		snapshot := metrics.snapshot()

		m.mu.Unlock()

		if onChange != nil {
			onChange(endpoint, snapshot)
		}

		return nil
	}
}

func (m *Metrics) snapshot() Metrics {
	out := *m
	out.StatusClasses = make(map[string]int64, len(m.StatusClasses))

	for class, count := range m.StatusClasses {
		out.StatusClasses[class] = count
	}

	return out
}

// CircuitBreakerConfig tunes a CircuitBreaker.
type CircuitBreakerConfig struct {
	Threshold        int           // Number of failures before opening
	Timeout          time.Duration // Time before trying again
	SuccessThreshold int           // Number of successes to close
}

// Circuit breaker states.
const (
	CircuitClosed   = "closed"
	CircuitOpen     = "open"
	CircuitHalfOpen = "half-open"
)

// CircuitBreaker stops sending requests after repeated 5xx responses.
type CircuitBreaker struct {
	mu          sync.Mutex
	config      CircuitBreakerConfig
	failures    int
	successes   int
	state       string
	lastFailure time.Time
}

// NewCircuitBreaker creates a new circuit breaker. A nil config opens after
// 5 failures, waits 30 seconds and closes after 2 successes.
func NewCircuitBreaker(config *CircuitBreakerConfig) *CircuitBreaker {
	if config == nil {
		config = &CircuitBreakerConfig{
			Threshold:        5,
			Timeout:          30 * time.Second,
			SuccessThreshold: 2,
		}
	}

	return &CircuitBreaker{
		config: *config,
		state:  CircuitClosed,
	}
}

// State returns the current state.
func (b *CircuitBreaker) State() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// RequestInterceptor rejects requests while the breaker is open.
func (b *CircuitBreaker) RequestInterceptor() RequestInterceptor {
	return func(_ context.Context, _ *http.Request) error {
		b.mu.Lock()
		defer b.mu.Unlock()

		if b.state != CircuitOpen {
			return nil
		}

		if time.Since(b.lastFailure) <= b.config.Timeout {
			return ErrCircuitOpen
		}

		b.state = CircuitHalfOpen
		b.successes = 0

		return nil
	}
}

// ResponseInterceptor updates the breaker from each response.
func (b *CircuitBreaker) ResponseInterceptor() ResponseInterceptor {
	return func(_ context.Context, resp *http.Response) error {
		b.mu.Lock()
		defer b.mu.Unlock()

		if resp.StatusCode >= http.StatusInternalServerError {
			b.failures++
			b.lastFailure = time.Now()

			if b.failures >= b.config.Threshold || b.state == CircuitHalfOpen {
				b.state = CircuitOpen
			}

			return nil
		}

		switch b.state {
		case CircuitHalfOpen:
			b.successes++
			if b.successes >= b.config.SuccessThreshold {
				b.state = CircuitClosed
				b.failures = 0
			}
		case CircuitClosed:
			b.failures = 0
		}

		return nil
	}
}
