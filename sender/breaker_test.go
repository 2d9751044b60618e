package sender

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBreakerSuccess(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"bad request", &statusError{code: 400}, true},
		{"too many requests", &statusError{code: 429}, true},
		{"internal server error", &statusError{code: 500}, false},
		{"bad gateway", &statusError{code: 502}, false},
		{"wrapped 503", fmt.Errorf("send: %w", &statusError{code: 503}), false},
		{"caller canceled", &callerGone{err: context.Canceled}, true},
		{"caller deadline", &callerGone{err: &url.Error{Op: "Post", URL: "x", Err: context.DeadlineExceeded}}, true},
		{"request timeout", &url.Error{Op: "Post", URL: "x", Err: context.DeadlineExceeded}, false},
		{"bare deadline", context.DeadlineExceeded, false},
		{"connection refused", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, false},
		{"unknown", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBreakerSuccess(tt.err))
		})
	}
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, isTimeout(context.DeadlineExceeded))
	assert.True(t, isTimeout(&url.Error{Op: "Post", URL: "x", Err: context.DeadlineExceeded}))
	assert.True(t, isTimeout(timeoutErr{}))
	assert.True(t, isTimeout(&callerGone{err: context.DeadlineExceeded}))
	assert.False(t, isTimeout(context.Canceled))
	assert.False(t, isTimeout(&callerGone{err: context.Canceled}))
	assert.False(t, isTimeout(errors.New("boom")))
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }
