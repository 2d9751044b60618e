// Package httpclient builds the resty client used to reach the Bot API.
package httpclient

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/prilive-com/teleping/internal/scrub"
	"github.com/prilive-com/teleping/tg"
)

// Config holds HTTP client configuration.
type Config struct {
	// Timeouts
	RequestTimeout time.Duration
	ConnectTimeout time.Duration
	TLSTimeout     time.Duration
	IdleTimeout    time.Duration

	// Connection pool
	MaxIdleConns        int
	MaxIdleConnsPerHost int

	UserAgent string

	// Token is scrubbed from anything resty logs.
	Token tg.SecretToken
}

// DefaultConfig returns sensible defaults for the Telegram API.
func DefaultConfig() Config {
	return Config{
		RequestTimeout:      30 * time.Second,
		ConnectTimeout:      10 * time.Second,
		TLSTimeout:          10 * time.Second,
		IdleTimeout:         90 * time.Second,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		UserAgent:           "teleping",
	}
}

// NewHTTPClient creates the net/http client resty runs on.
func NewHTTPClient(cfg Config) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		TLSHandshakeTimeout:   cfg.TLSTimeout,
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:       cfg.IdleTimeout,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.RequestTimeout,
	}
}

// New wraps hc in a resty client. When hc is nil a client is built from cfg.
// Retries stay disabled: every call is exactly one HTTP request.
func New(cfg Config, hc *http.Client, logger *slog.Logger) *resty.Client {
	if hc == nil {
		hc = NewHTTPClient(cfg)
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := resty.NewWithClient(hc)
	client.SetTimeout(cfg.RequestTimeout)
	client.SetRetryCount(0)
	client.SetLogger(slogAdapter{logger: logger.With("component", "resty"), token: cfg.Token})
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}
	client.SetHeader("Accept", "application/json")
	return client
}

// CloseIdle releases idle connections held by the client's transport.
func CloseIdle(client *resty.Client) {
	if client == nil {
		return
	}
	if t, ok := client.GetClient().Transport.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
}

// slogAdapter satisfies resty.Logger. resty formats request URLs into some
// of its messages, so the token is scrubbed from every line.
type slogAdapter struct {
	logger *slog.Logger
	token  tg.SecretToken
}

func (a slogAdapter) Errorf(format string, v ...any) {
	a.logger.Error(a.format(format, v))
}

func (a slogAdapter) Warnf(format string, v ...any) {
	a.logger.Warn(a.format(format, v))
}

func (a slogAdapter) Debugf(format string, v ...any) {
	a.logger.Debug(a.format(format, v))
}

func (a slogAdapter) format(format string, v []any) string {
	return scrub.Text(fmt.Sprintf(format, v...), a.token)
}

var _ resty.Logger = slogAdapter{}
