package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/prilive-com/teleping/tg"
)

// Sender is what callers need from a notification client.
type Sender interface {
	Send(ctx context.Context, text string, mode tg.ParseMode) Result
}

// ErrorKind classifies a failed send.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindInvalidInput
	KindTimeout
	KindNetwork
	KindHTTP
	KindAPI
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "success"
	case KindInvalidInput:
		return "invalid_input"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network_error"
	case KindHTTP:
		return "http_error"
	case KindAPI:
		return "api_error"
	case KindUnexpected:
		return "unexpected"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInvalidInput:
		return tg.ErrInvalidInput
	case KindTimeout:
		return tg.ErrTimeout
	case KindNetwork:
		return tg.ErrNetwork
	case KindHTTP:
		return tg.ErrHTTP
	case KindAPI:
		return tg.ErrAPI
	default:
		return tg.ErrUnexpected
	}
}

// Fixed failure details. Diagnostics beyond these go to the log only.
const (
	detailEmptyText  = "Message text cannot be empty"
	detailTimeout    = "Request timeout"
	detailNetwork    = "Network error"
	detailUnexpected = "Unexpected error occurred"
	unknownAPIError  = "Unknown API error"
)

// Result is the outcome of one Send.
//
// On success MessageID and Response are set. On failure Kind and Detail are
// set; Detail is one of a fixed set of generic strings.
type Result struct {
	Success   bool
	MessageID int64
	Response  json.RawMessage

	Kind   ErrorKind
	Detail string
}

// Err returns nil for a successful result and a *SendError otherwise.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return &SendError{Kind: r.Kind, Detail: r.Detail}
}

// SendError is the error view of a failed Result.
// errors.Is matches the tg sentinel for its kind (tg.ErrTimeout, ...).
type SendError struct {
	Kind   ErrorKind
	Detail string
}

func (e *SendError) Error() string {
	return "teleping: send failed: " + e.Detail
}

// Unwrap returns the sentinel for the error kind.
func (e *SendError) Unwrap() error { return e.Kind.sentinel() }

func succeeded(messageID int64, body []byte) Result {
	return Result{
		Success:   true,
		MessageID: messageID,
		Response:  json.RawMessage(body),
		Kind:      KindNone,
	}
}

func failed(kind ErrorKind, detail string) Result {
	return Result{Kind: kind, Detail: detail}
}

func httpFailure(status int) Result {
	return failed(KindHTTP, fmt.Sprintf("HTTP error: %d", status))
}

func apiFailure(description string) Result {
	return failed(KindAPI, "API error: "+description)
}
