// Package scrub removes the bot token from errors before they reach a log line.
package scrub

import (
	"strings"

	"github.com/prilive-com/teleping/tg"
)

// TokenFromError replaces every occurrence of the bot token in err's message.
// http.Client and resty both put the request URL, and so the token, into
// transport errors. The error chain is preserved for errors.Is/As.
func TokenFromError(err error, token tg.SecretToken) error {
	if err == nil {
		return nil
	}
	tokenVal := token.Value()
	if tokenVal == "" {
		return err
	}
	msg := err.Error()
	if !strings.Contains(msg, tokenVal) {
		return err
	}
	return &scrubbedError{
		msg: strings.ReplaceAll(msg, tokenVal, token.String()),
		err: err,
	}
}

// Text replaces every occurrence of the bot token in s.
func Text(s string, token tg.SecretToken) string {
	tokenVal := token.Value()
	if tokenVal == "" {
		return s
	}
	return strings.ReplaceAll(s, tokenVal, token.String())
}

// Message returns the scrubbed message of err, or "" for nil.
func Message(err error, token tg.SecretToken) string {
	if err == nil {
		return ""
	}
	return TokenFromError(err, token).Error()
}

type scrubbedError struct {
	msg string
	err error
}

func (e *scrubbedError) Error() string { return e.msg }
func (e *scrubbedError) Unwrap() error { return e.err }
