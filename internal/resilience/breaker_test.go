package resilience_test

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"

	"github.com/prilive-com/teleping/internal/resilience"
)

var errBoom = errors.New("boom")

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cfg := resilience.DefaultBreakerConfig("test")
	cfg.Threshold = 2
	cb := resilience.NewBreaker[int](cfg)

	for range 2 {
		_, err := cb.Execute(func() (int, error) { return 0, errBoom })
		assert.ErrorIs(t, err, errBoom)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	calls := 0
	_, err := cb.Execute(func() (int, error) {
		calls++
		return 1, nil
	})
	assert.True(t, resilience.IsRejection(err))
	assert.Zero(t, calls, "open breaker must not run the request")
}

func TestBreaker_ZeroThresholdNeverOpens(t *testing.T) {
	cfg := resilience.DefaultBreakerConfig("test")
	cfg.Threshold = 0
	cb := resilience.NewBreaker[int](cfg)

	for range 20 {
		_, _ = cb.Execute(func() (int, error) { return 0, errBoom })
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestBreaker_IsSuccessfulHook(t *testing.T) {
	benign := errors.New("client error")
	cfg := resilience.DefaultBreakerConfig("test")
	cfg.Threshold = 1
	cfg.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, benign)
	}
	cb := resilience.NewBreaker[int](cfg)

	for range 5 {
		_, err := cb.Execute(func() (int, error) { return 0, benign })
		assert.ErrorIs(t, err, benign)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())

	_, _ = cb.Execute(func() (int, error) { return 0, errBoom })
	assert.Equal(t, gobreaker.StateOpen, cb.State())
}

func TestBreaker_StateChangeCallback(t *testing.T) {
	var transitions []string
	cfg := resilience.DefaultBreakerConfig("test")
	cfg.Threshold = 1
	cfg.Timeout = 20 * time.Millisecond
	cfg.OnStateChange = func(_ string, from, to string) {
		transitions = append(transitions, from+"->"+to)
	}
	cb := resilience.NewBreaker[int](cfg)

	_, _ = cb.Execute(func() (int, error) { return 0, errBoom })
	time.Sleep(40 * time.Millisecond)
	_, err := cb.Execute(func() (int, error) { return 1, nil })

	assert.NoError(t, err)
	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestDefaultBreakerConfig_NeverOpens(t *testing.T) {
	cfg := resilience.DefaultBreakerConfig("test")
	assert.Zero(t, cfg.Threshold)
	cb := resilience.NewBreaker[int](cfg)

	for range 10 {
		_, _ = cb.Execute(func() (int, error) { return 0, errBoom })
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestIsRejection(t *testing.T) {
	assert.True(t, resilience.IsRejection(gobreaker.ErrOpenState))
	assert.True(t, resilience.IsRejection(gobreaker.ErrTooManyRequests))
	assert.False(t, resilience.IsRejection(errBoom))
	assert.False(t, resilience.IsRejection(nil))
}
