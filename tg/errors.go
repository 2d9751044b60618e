package tg

import (
	"errors"
	"fmt"
)

// Configuration sentinels - use with errors.Is()
var (
	ErrMissingToken  = errors.New("teleping: TELEGRAM_BOT_TOKEN not found in environment variables")
	ErrMissingChatID = errors.New("teleping: CHAT_ID not found in environment variables")
	ErrInvalidToken  = errors.New("teleping: invalid bot token format")
	ErrInvalidChatID = errors.New("teleping: invalid chat ID format")
	ErrInvalidConfig = errors.New("teleping: invalid configuration")
)

// Send outcome sentinels, one per failure kind.
var (
	ErrInvalidInput = errors.New("teleping: invalid input")
	ErrTimeout      = errors.New("teleping: request timeout")
	ErrNetwork      = errors.New("teleping: network error")
	ErrHTTP         = errors.New("teleping: http error")
	ErrAPI          = errors.New("teleping: api error")
	ErrUnexpected   = errors.New("teleping: unexpected error")
)

// ConfigError describes one rejected configuration key.
// errors.Is matches the sentinel it was created with.
type ConfigError struct {
	Key     string
	Message string
	cause   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("teleping: config: %s - %s", e.Key, e.Message)
}

// Unwrap returns the sentinel for errors.Is() support.
func (e *ConfigError) Unwrap() error { return e.cause }

// NewConfigError creates a ConfigError matching ErrInvalidConfig.
func NewConfigError(key, message string) *ConfigError {
	return &ConfigError{Key: key, Message: message, cause: ErrInvalidConfig}
}

// WrapConfigError creates a ConfigError for key that matches sentinel.
func WrapConfigError(key, message string, sentinel error) *ConfigError {
	return &ConfigError{Key: key, Message: message, cause: sentinel}
}
