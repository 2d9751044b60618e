package sender

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/prilive-com/teleping/internal/resilience"
	"github.com/prilive-com/teleping/internal/validate"
	"github.com/prilive-com/teleping/tg"
)

const breakerName = "teleping-sender"

// Environment keys.
const (
	KeyToken              = "TELEGRAM_BOT_TOKEN"
	KeyChatID             = "CHAT_ID"
	KeyBaseURL            = "TELEGRAM_API_BASE_URL"
	KeyRequestTimeout     = "REQUEST_TIMEOUT"
	KeyRateLimitDelay     = "RATE_LIMIT_DELAY"
	KeyBreakerMaxRequests = "BREAKER_MAX_REQUESTS"
	KeyBreakerInterval    = "BREAKER_INTERVAL"
	KeyBreakerTimeout     = "BREAKER_TIMEOUT"
	KeyBreakerThreshold   = "BREAKER_THRESHOLD"
)

// Config holds sender configuration.
type Config struct {
	// Credentials
	Token  tg.SecretToken `mapstructure:"TELEGRAM_BOT_TOKEN"`
	ChatID string         `mapstructure:"CHAT_ID"`

	// API settings
	BaseURL        string        `mapstructure:"TELEGRAM_API_BASE_URL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	// Minimum spacing between two requests. 0 disables the throttle.
	RateLimitDelay time.Duration `mapstructure:"RATE_LIMIT_DELAY"`

	// Circuit breaker
	BreakerMaxRequests uint32        `mapstructure:"BREAKER_MAX_REQUESTS"`
	BreakerInterval    time.Duration `mapstructure:"BREAKER_INTERVAL"`
	BreakerTimeout     time.Duration `mapstructure:"BREAKER_TIMEOUT"`
	BreakerThreshold   uint32        `mapstructure:"BREAKER_THRESHOLD"` // 0 = never open (default)
}

// DefaultConfig returns a Config with sensible defaults and no credentials.
// The circuit breaker is off: every send reaches the API unless
// BreakerThreshold is set.
func DefaultConfig() Config {
	breaker := resilience.DefaultBreakerConfig(breakerName)
	return Config{
		BaseURL:            "https://api.telegram.org",
		RequestTimeout:     30 * time.Second,
		RateLimitDelay:     resilience.DefaultSpacing,
		BreakerMaxRequests: breaker.MaxRequests,
		BreakerInterval:    breaker.Interval,
		BreakerTimeout:     breaker.Timeout,
		BreakerThreshold:   breaker.Threshold,
	}
}

// LoadConfig reads configuration from the environment and, when envFile is
// not empty, from that dotenv file. Environment variables win over the file;
// a missing file is not an error. Durations take Go syntax ("1.5s", "300ms")
// or a bare number of seconds ("1"). LoadConfig does not validate, the
// constructors do.
func LoadConfig(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("teleping: read %s: %w", envFile, err)
			}
		}
	}

	cfg := DefaultConfig()
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsToDurationHook,
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("teleping: decode config: %w", err)
	}
	return &cfg, nil
}

// secondsToDurationHook reads a bare number as seconds. Anything else is left
// to the Go duration parser.
func secondsToDurationHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) || from.Kind() != reflect.String {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return data, nil
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// Every key needs a default, otherwise Unmarshal never asks AutomaticEnv for it.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault(KeyToken, "")
	v.SetDefault(KeyChatID, "")
	v.SetDefault(KeyBaseURL, d.BaseURL)
	v.SetDefault(KeyRequestTimeout, d.RequestTimeout.String())
	v.SetDefault(KeyRateLimitDelay, d.RateLimitDelay.String())
	v.SetDefault(KeyBreakerMaxRequests, d.BreakerMaxRequests)
	v.SetDefault(KeyBreakerInterval, d.BreakerInterval.String())
	v.SetDefault(KeyBreakerTimeout, d.BreakerTimeout.String())
	v.SetDefault(KeyBreakerThreshold, d.BreakerThreshold)
}

// Validate reports every problem with the configuration at once.
// Each one is a *tg.ConfigError matching a tg.Err* sentinel.
func (c Config) Validate() error {
	var errs error

	if c.Token.IsEmpty() {
		errs = multierr.Append(errs, tg.WrapConfigError(KeyToken, "is required", tg.ErrMissingToken))
	} else if err := validate.Token(c.Token.Value()); err != nil {
		errs = multierr.Append(errs, tg.WrapConfigError(KeyToken, reason(err), tg.ErrInvalidToken))
	}

	if c.ChatID == "" {
		errs = multierr.Append(errs, tg.WrapConfigError(KeyChatID, "is required", tg.ErrMissingChatID))
	} else if err := validate.ChatID(c.ChatID); err != nil {
		errs = multierr.Append(errs, tg.WrapConfigError(KeyChatID, reason(err), tg.ErrInvalidChatID))
	}

	if c.BaseURL == "" {
		errs = multierr.Append(errs, tg.NewConfigError(KeyBaseURL, "is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = multierr.Append(errs, tg.NewConfigError(KeyRequestTimeout, "must be positive"))
	}
	if c.RateLimitDelay < 0 {
		errs = multierr.Append(errs, tg.NewConfigError(KeyRateLimitDelay, "cannot be negative"))
	}

	return errs
}

func reason(err error) string {
	var vErr *validate.Error
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return err.Error()
}
