package tg

// ParseMode defines the text formatting mode for messages.
type ParseMode string

// Parse modes known to Telegram.
const (
	ParseModeNone       ParseMode = ""
	ParseModeHTML       ParseMode = "HTML"
	ParseModeMarkdown   ParseMode = "Markdown"
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
)

// String returns the parse mode string value.
func (p ParseMode) String() string {
	return string(p)
}

// IsValid returns true if the parse mode is supported by Telegram.
func (p ParseMode) IsValid() bool {
	switch p {
	case ParseModeHTML, ParseModeMarkdown, ParseModeMarkdownV2, ParseModeNone:
		return true
	default:
		return false
	}
}

// Forwarded reports whether the mode is passed on to sendMessage.
// Only HTML and legacy Markdown are; every other value is dropped
// from the request without error. The match is case-sensitive.
func (p ParseMode) Forwarded() bool {
	return p == ParseModeHTML || p == ParseModeMarkdown
}
