package testutil

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Capture represents a captured HTTP request with timestamp.
type Capture struct {
	Method      string
	Path        string
	Headers     http.Header
	Body        []byte
	Form        url.Values // nil unless the body was form-encoded
	ContentType string
	Timestamp   time.Time
}

// AssertPath verifies the request path.
func (c *Capture) AssertPath(t *testing.T, expected string) {
	t.Helper()
	assert.Equal(t, expected, c.Path, "unexpected path")
}

// AssertMethod verifies the HTTP method.
func (c *Capture) AssertMethod(t *testing.T, expected string) {
	t.Helper()
	assert.Equal(t, expected, c.Method, "unexpected method")
}

// AssertContentType verifies the Content-Type header contains expected value.
func (c *Capture) AssertContentType(t *testing.T, expected string) {
	t.Helper()
	assert.Contains(t, c.ContentType, expected, "unexpected content-type")
}

// AssertFormField verifies a form field value.
func (c *Capture) AssertFormField(t *testing.T, field, expected string) {
	t.Helper()
	if !c.Form.Has(field) {
		t.Errorf("form field %q not found", field)
		return
	}
	assert.Equal(t, expected, c.Form.Get(field), "unexpected value for field: "+field)
}

// AssertFormFieldAbsent verifies a field does NOT exist in the form.
func (c *Capture) AssertFormFieldAbsent(t *testing.T, field string) {
	t.Helper()
	assert.False(t, c.Form.Has(field), "field should be absent: "+field)
}

// FormField returns the first value of a form field.
func (c *Capture) FormField(field string) string {
	return c.Form.Get(field)
}

// BodyString returns the body as a string.
func (c *Capture) BodyString() string {
	return string(c.Body)
}
