// Package validate checks credential formats before a client is built.
package validate

import (
	"fmt"
	"regexp"
)

var (
	tokenPattern  = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]+$`)
	chatIDPattern = regexp.MustCompile(`^\d+$`)
)

// Error represents a validation error.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation: %s - %s", e.Field, e.Message)
}

// New creates a new validation error.
func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// Token validates a Telegram bot token.
// Format: {bot_id}:{secret} where bot_id is numeric and the secret uses
// only letters, digits, '_' and '-'.
func Token(token string) error {
	if token == "" {
		return New("token", "cannot be empty")
	}
	if !tokenPattern.MatchString(token) {
		return New("token", "invalid format, expected {bot_id}:{secret}")
	}
	return nil
}

// ChatID validates the recipient identifier: one or more ASCII digits.
// Signed and @username identifiers are rejected.
func ChatID(chatID string) error {
	if chatID == "" {
		return New("chat_id", "cannot be empty")
	}
	if !chatIDPattern.MatchString(chatID) {
		return New("chat_id", "must contain only digits")
	}
	return nil
}
