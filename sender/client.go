package sender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"
	"github.com/tidwall/gjson"

	"github.com/prilive-com/teleping/internal/httpclient"
	"github.com/prilive-com/teleping/internal/metrics"
	"github.com/prilive-com/teleping/internal/resilience"
	"github.com/prilive-com/teleping/internal/scrub"
	"github.com/prilive-com/teleping/tg"
)

const methodSendMessage = "sendMessage"

// Client sends messages to the configured chat.
// It is safe for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
	rest       *resty.Client
	logger     *slog.Logger
	throttle   *resilience.Throttle
	breaker    *gobreaker.CircuitBreaker[*resty.Response]
	metrics    *metrics.Recorder
	registerer prometheus.Registerer
	endpoint   string
}

var _ Sender = (*Client)(nil)

// statusError carries a non-200 HTTP status out of the breaker.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.code)
}

// callerGone marks a dispatch error caused by the caller's context ending,
// as opposed to the request timeout or the transport failing.
type callerGone struct {
	err error
}

func (e *callerGone) Error() string { return e.err.Error() }
func (e *callerGone) Unwrap() error { return e.err }

// New creates a Client for the given credentials.
func New(token, chatID string, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.Token = tg.SecretToken(token)
	cfg.ChatID = chatID
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig creates a Client from a Config.
// It makes no network call. Options are applied before validation.
// An error is also returned when the WithMetrics registerer holds
// conflicting collectors.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{config: cfg}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.config.Validate(); err != nil {
		return nil, err
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	if c.registerer != nil {
		rec, err := metrics.New(c.registerer)
		if err != nil {
			return nil, fmt.Errorf("teleping: register metrics: %w", err)
		}
		c.metrics = rec
	}

	httpCfg := httpclient.DefaultConfig()
	httpCfg.RequestTimeout = c.config.RequestTimeout
	httpCfg.Token = c.config.Token
	c.rest = httpclient.New(httpCfg, c.httpClient, c.logger)

	c.throttle = resilience.NewThrottle(c.config.RateLimitDelay)

	c.breaker = resilience.NewBreaker[*resty.Response](resilience.BreakerConfig{
		Name:         breakerName,
		MaxRequests:  c.config.BreakerMaxRequests,
		Interval:     c.config.BreakerInterval,
		Timeout:      c.config.BreakerTimeout,
		Threshold:    c.config.BreakerThreshold,
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name, from, to string) {
			c.metrics.SetBreakerOpen(to == gobreaker.StateOpen.String())
			c.logger.Info("circuit breaker state changed",
				"name", name,
				"from", from,
				"to", to,
			)
		},
	})

	c.endpoint = fmt.Sprintf("%s/bot%s/%s",
		strings.TrimRight(c.config.BaseURL, "/"), c.config.Token.Value(), methodSendMessage)

	return c, nil
}

// Close releases idle connections. The client must not be used afterwards.
func (c *Client) Close() error {
	httpclient.CloseIdle(c.rest)
	return nil
}

// ChatID returns the recipient identifier.
func (c *Client) ChatID() string {
	return c.config.ChatID
}

// LastRequest returns when the last attempt was issued, or the zero time if
// none was. Consecutive values are at least the rate limit delay apart.
func (c *Client) LastRequest() time.Time {
	return c.throttle.Last()
}

// RateLimit blocks until the minimum spacing since the previous attempt has
// elapsed and records the current time as the new attempt. It returns early
// with an error only when ctx ends.
func (c *Client) RateLimit(ctx context.Context) error {
	release, err := c.acquire(ctx)
	if err != nil {
		return err
	}
	release()
	return nil
}

// acquire takes the throttle slot. The next slot opens one spacing after
// release is called.
func (c *Client) acquire(ctx context.Context) (func(), error) {
	release, waited, err := c.throttle.Acquire(ctx)
	c.metrics.ObserveThrottle(waited)
	if err != nil {
		return nil, err
	}
	if waited > 0 {
		c.logger.Debug("rate limited", "wait", waited, "spacing", c.throttle.Spacing())
	}
	return release, nil
}

// SendValue formats v with fmt.Sprint and sends it.
func (c *Client) SendValue(ctx context.Context, v any, mode tg.ParseMode) Result {
	return c.Send(ctx, fmt.Sprint(v), mode)
}

// Send delivers text to the configured chat. It never returns an error:
// every failure is reported in the Result. Text that is empty or made only
// of blank characters (Unicode white space and the U+001C to U+001F
// separators) is rejected before the throttle and the network are touched.
// mode is sent only when it is tg.ParseModeHTML or tg.ParseModeMarkdown.
//
// The request is issued while holding the throttle slot, so concurrent
// callers reach the API one spacing apart. Send may block for the spacing
// plus the request timeout of every caller queued ahead of it.
func (c *Client) Send(ctx context.Context, text string, mode tg.ParseMode) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Unexpected error",
				"kind", KindUnexpected.String(),
				"error", scrub.Message(fmt.Errorf("panic: %v", r), c.config.Token),
			)
			res = failed(KindUnexpected, detailUnexpected)
		}
		c.metrics.ObserveSend(res.Kind.String(), time.Since(start))
	}()

	if isBlank(text) {
		c.logger.Warn("Message rejected", "kind", KindInvalidInput.String())
		return failed(KindInvalidInput, detailEmptyText)
	}

	form := map[string]string{
		"chat_id": c.config.ChatID,
		"text":    Sanitize(text),
	}
	if mode.Forwarded() {
		form["parse_mode"] = mode.String()
	} else if mode != tg.ParseModeNone {
		c.logger.Debug("parse mode dropped", "parse_mode", mode.String(), "known", mode.IsValid())
	}

	release, err := c.acquire(ctx)
	if err != nil {
		return c.classifyError(err)
	}
	defer release()

	resp, err := c.breaker.Execute(func() (*resty.Response, error) {
		return c.dispatch(ctx, form)
	})
	if err != nil {
		return c.classifyError(err)
	}
	return c.classifyBody(resp.Body())
}

func (c *Client) dispatch(ctx context.Context, form map[string]string) (*resty.Response, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetFormData(form).
		Post(c.endpoint)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &callerGone{err: err}
		}
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return resp, &statusError{code: resp.StatusCode()}
	}
	return resp, nil
}

func (c *Client) classifyError(err error) Result {
	var statusErr *statusError
	switch {
	case errors.As(err, &statusErr):
		c.logger.Error("HTTP error", "kind", KindHTTP.String(), "status", statusErr.code)
		return httpFailure(statusErr.code)

	case resilience.IsRejection(err):
		c.metrics.IncBreakerRejected()
		c.logger.Error("Request rejected by circuit breaker",
			"kind", KindNetwork.String(),
			"error", err,
		)
		return failed(KindNetwork, detailNetwork)

	case isTimeout(err):
		c.logger.Error("Request timeout",
			"kind", KindTimeout.String(),
			"error", scrub.Message(err, c.config.Token),
		)
		return failed(KindTimeout, detailTimeout)

	default:
		c.logger.Error("Request error",
			"kind", KindNetwork.String(),
			"error", scrub.Message(err, c.config.Token),
		)
		return failed(KindNetwork, detailNetwork)
	}
}

func (c *Client) classifyBody(body []byte) Result {
	if !gjson.ValidBytes(body) {
		c.logger.Error("Unexpected error",
			"kind", KindUnexpected.String(),
			"error", "response body is not valid JSON",
			"size", len(body),
		)
		return failed(KindUnexpected, detailUnexpected)
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		c.logger.Error("Unexpected error",
			"kind", KindUnexpected.String(),
			"error", "response body is not a JSON object",
		)
		return failed(KindUnexpected, detailUnexpected)
	}

	if !parsed.Get("ok").Bool() {
		description := unknownAPIError
		if d := parsed.Get("description"); d.Exists() {
			description = d.String()
		}
		c.logger.Error("API error",
			"kind", KindAPI.String(),
			"description", description,
			"error_code", parsed.Get("error_code").Int(),
		)
		return apiFailure(description)
	}

	messageID := parsed.Get("result.message_id").Int()
	c.logger.Info("Message sent successfully", "message_id", messageID)
	return succeeded(messageID, bytes.Clone(body))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isBreakerSuccess determines if an error should count as a circuit breaker failure.
// Server errors (5xx), transport errors and request timeouts trip the breaker.
// Client errors (4xx) are request problems, not service degradation.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.code < http.StatusInternalServerError
	}
	// The caller giving up is not a service failure
	var gone *callerGone
	return errors.As(err, &gone)
}
