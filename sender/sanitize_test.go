package sender_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/prilive-com/teleping/sender"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"trims surrounding whitespace", "  \t hi \n ", "hi"},
		{"crlf", "a\r\nb", "a\nb"},
		{"lone cr", "a\rb\rc", "a\nb\nc"},
		{"mixed endings", "a\r\n\rb\n", "a\n\nb"},
		{"keeps inner spaces", "a  b", "a  b"},
		{"whitespace only", " \r\n ", ""},
		{"trims separator controls", "\x1chi\x1f", "hi"},
		{"keeps inner separators", "a\x1eb", "a\x1eb"},
		{"separators only", "\x1c\x1d\x1e\x1f", ""},
		{"exactly max length", strings.Repeat("x", sender.MaxTextLength), strings.Repeat("x", sender.MaxTextLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sender.Sanitize(tt.in))
		})
	}
}

func TestSanitize_Truncates(t *testing.T) {
	got := sender.Sanitize(strings.Repeat("a", 5000))

	assert.Equal(t, sender.MaxTextLength, utf8.RuneCountInString(got))
	assert.Equal(t, strings.Repeat("a", sender.MaxTextLength-3)+"...", got)
}

func TestSanitize_TruncatesByCharacter(t *testing.T) {
	got := sender.Sanitize(strings.Repeat("é", sender.MaxTextLength+1))

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, sender.MaxTextLength, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestSanitize_TruncatesBeforeTrimming(t *testing.T) {
	// The cut lands on trailing spaces, which are trimmed only if they end the
	// text; here the ellipsis ends it.
	in := strings.Repeat("b", 3990) + strings.Repeat(" ", 20)

	got := sender.Sanitize(in)

	assert.Equal(t, strings.Repeat("b", 3990)+strings.Repeat(" ", 7)+"...", got)
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"hello",
		" a\r\nb ",
		strings.Repeat("z", 4100),
		strings.Repeat("я", 3999) + "\r\n",
	}
	for _, in := range inputs {
		once := sender.Sanitize(in)
		assert.Equal(t, once, sender.Sanitize(once))
		assert.NotContains(t, once, "\r")
		assert.LessOrEqual(t, utf8.RuneCountInString(once), sender.MaxTextLength)
	}
}

func TestSanitizeValue(t *testing.T) {
	assert.Equal(t, "42", sender.SanitizeValue(42))
	assert.Equal(t, "[1 2]", sender.SanitizeValue([]int{1, 2}))
	assert.Equal(t, "<nil>", sender.SanitizeValue(nil))
}
