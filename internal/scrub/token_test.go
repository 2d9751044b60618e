package scrub_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/teleping/internal/scrub"
	"github.com/prilive-com/teleping/tg"
)

func TestTokenFromError_NilError(t *testing.T) {
	assert.Nil(t, scrub.TokenFromError(nil, tg.SecretToken("123:ABC")))
	assert.Empty(t, scrub.Message(nil, tg.SecretToken("123:ABC")))
}

func TestTokenFromError_EmptyToken(t *testing.T) {
	original := errors.New("some error")
	assert.Equal(t, original, scrub.TokenFromError(original, tg.SecretToken("")))
}

func TestTokenFromError_NoTokenInMessage(t *testing.T) {
	original := errors.New("connection refused")
	assert.Equal(t, original, scrub.TokenFromError(original, tg.SecretToken("123:ABC")))
}

func TestTokenFromError_ScrubsEveryOccurrence(t *testing.T) {
	token := tg.SecretToken("123456:ABCdef")
	original := fmt.Errorf("Post https://api.telegram.org/bot123456:ABCdef/sendMessage: token 123456:ABCdef rejected")

	result := scrub.TokenFromError(original, token)

	require.NotEqual(t, original, result)
	assert.NotContains(t, result.Error(), "123456:ABCdef")
	assert.Equal(t, "Post https://api.telegram.org/bot[REDACTED]/sendMessage: token [REDACTED] rejected", result.Error())
}

func TestTokenFromError_PreservesErrorChain(t *testing.T) {
	token := tg.SecretToken("123456:ABCdef")
	netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	wrapped := &url.Error{Op: "Post", URL: "https://api.telegram.org/bot123456:ABCdef/sendMessage", Err: netErr}

	result := scrub.TokenFromError(wrapped, token)

	var opErr *net.OpError
	assert.True(t, errors.As(result, &opErr))
	assert.NotContains(t, result.Error(), "ABCdef")
}

func TestTokenFromError_PreservesTimeout(t *testing.T) {
	token := tg.SecretToken("123456:ABCdef")
	wrapped := &url.Error{Op: "Post", URL: "https://api.telegram.org/bot123456:ABCdef/sendMessage", Err: context.DeadlineExceeded}

	result := scrub.TokenFromError(wrapped, token)

	assert.ErrorIs(t, result, context.DeadlineExceeded)
	var ne net.Error
	require.True(t, errors.As(result, &ne))
	assert.True(t, ne.Timeout())
}

func TestText(t *testing.T) {
	token := tg.SecretToken("123456:ABCdef")

	assert.Equal(t, "GET /bot[REDACTED]/x", scrub.Text("GET /bot123456:ABCdef/x", token))
	assert.Equal(t, "unchanged", scrub.Text("unchanged", token))
	assert.Equal(t, "no token 123456:ABCdef", scrub.Text("no token 123456:ABCdef", tg.SecretToken("")))
}
