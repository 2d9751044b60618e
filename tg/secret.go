package tg

import "log/slog"

const redacted = "[REDACTED]"

// SecretToken holds a bot token and keeps it out of logs and dumps.
// It implements fmt.Stringer, fmt.GoStringer, slog.LogValuer and encoding.TextMarshaler.
type SecretToken string

// Value returns the raw token. Only the request URL should ever see it.
func (s SecretToken) Value() string { return string(s) }

// String returns a redacted placeholder (fmt.Stringer).
func (s SecretToken) String() string { return redacted }

// GoString returns redacted for %#v (fmt.GoStringer).
func (s SecretToken) GoString() string { return `tg.SecretToken("[REDACTED]")` }

// LogValue keeps the token out of slog output, including %+v.
func (s SecretToken) LogValue() slog.Value {
	return slog.StringValue(redacted)
}

// MarshalText returns redacted bytes so a dumped Config never carries the token.
func (s SecretToken) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// IsEmpty returns true if the token is empty.
func (s SecretToken) IsEmpty() bool {
	return s == ""
}
