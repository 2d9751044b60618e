package testutil

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/prilive-com/teleping/sender"
)

// FastRateLimit keeps throttled tests quick while still spacing requests.
const FastRateLimit = 20 * time.Millisecond

// CircuitBreakerNeverTrip returns settings where breaker never opens.
func CircuitBreakerNeverTrip() sender.CircuitBreakerSettings {
	return sender.CircuitBreakerSettings{
		MaxRequests: 1,
		Interval:    0,
		Timeout:     time.Hour,
		Threshold:   0,
	}
}

// CircuitBreakerAggressiveTrip returns settings for testing breaker behavior.
// Trips after just 2 consecutive failures.
func CircuitBreakerAggressiveTrip() sender.CircuitBreakerSettings {
	return sender.CircuitBreakerSettings{
		MaxRequests: 1,
		Interval:    0,
		Timeout:     2 * time.Second, // Long enough to stay open during test assertions
		Threshold:   2,
	}
}

// NewTestClient creates a client pointed at baseURL with a short rate limit,
// a breaker that never trips and a discarding logger.
func NewTestClient(t *testing.T, baseURL string, opts ...sender.Option) *sender.Client {
	t.Helper()

	defaultOpts := []sender.Option{
		sender.WithBaseURL(baseURL),
		sender.WithRateLimitDelay(FastRateLimit),
		sender.WithTimeout(5 * time.Second),
		sender.WithCircuitBreakerSettings(CircuitBreakerNeverTrip()),
		sender.WithLogger(slog.New(slog.DiscardHandler)),
	}

	client, err := sender.New(TestToken, TestChatID, append(defaultOpts, opts...)...)
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })
	return client
}

// NewBreakerTestClient creates a client for testing circuit breaker behavior.
// Circuit breaker trips aggressively for fast testing.
func NewBreakerTestClient(t *testing.T, baseURL string, opts ...sender.Option) *sender.Client {
	t.Helper()
	return NewTestClient(t, baseURL,
		append([]sender.Option{sender.WithCircuitBreakerSettings(CircuitBreakerAggressiveTrip())}, opts...)...)
}
