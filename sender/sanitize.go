package sender

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxTextLength is the longest text sent, in characters. Telegram allows
	// 4096; the remainder is headroom.
	MaxTextLength = 4000

	ellipsis        = "..."
	truncatedLength = MaxTextLength - len(ellipsis)
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Sanitize prepares text for transmission. Text longer than MaxTextLength
// characters is cut and ends with "...", CRLF and lone CR become LF, and
// surrounding blank characters are trimmed, in that order.
func Sanitize(text string) string {
	if utf8.RuneCountInString(text) > MaxTextLength {
		runes := []rune(text)
		text = string(runes[:truncatedLength]) + ellipsis
	}
	text = lineEndings.Replace(text)
	return strings.TrimFunc(text, isBlankRune)
}

// SanitizeValue formats v with fmt.Sprint and sanitizes the result.
func SanitizeValue(v any) string {
	return Sanitize(fmt.Sprint(v))
}

// isBlankRune reports Unicode white space and the ASCII separators
// U+001C to U+001F.
func isBlankRune(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

func isBlank(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool { return !isBlankRune(r) }) < 0
}
