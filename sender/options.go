package sender

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CircuitBreakerSettings configures the circuit breaker behavior.
type CircuitBreakerSettings struct {
	// MaxRequests is the number of probe requests allowed in half-open state.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state.
	// If 0, internal counts never reset in closed state.
	Interval time.Duration

	// Timeout is the duration of the open state before transitioning to half-open.
	Timeout time.Duration

	// Threshold is the number of consecutive failures that opens the breaker.
	// 0 keeps it closed forever, which is the default.
	Threshold uint32
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets the underlying HTTP client. Its Timeout is replaced by
// the configured request timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithBaseURL sets the API base URL (useful for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.config.BaseURL = url
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.config.RequestTimeout = d
	}
}

// WithRateLimitDelay sets the minimum spacing between requests.
func WithRateLimitDelay(d time.Duration) Option {
	return func(c *Client) {
		c.config.RateLimitDelay = d
	}
}

// WithCircuitBreakerSettings configures the circuit breaker.
func WithCircuitBreakerSettings(settings CircuitBreakerSettings) Option {
	return func(c *Client) {
		c.config.BreakerMaxRequests = settings.MaxRequests
		c.config.BreakerInterval = settings.Interval
		c.config.BreakerTimeout = settings.Timeout
		c.config.BreakerThreshold = settings.Threshold
	}
}

// WithMetrics registers the client's Prometheus collectors on reg.
// Clients sharing reg report into the same collectors.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.registerer = reg
	}
}
