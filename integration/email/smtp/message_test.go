package smtp

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailrelay/core/email"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := New(Config{
		Host:        "smtp.example.com",
		Port:        587,
		Username:    "user",
		Password:    "pass",
		SenderEmail: "noreply@example.org",
		SenderName:  "Example Sender",
	})
	require.NoError(t, err)
	return c
}

func render(t *testing.T, c *Client, p email.SendEmailParams) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := c.buildMessage(p).WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestNew_DialerSettings(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)

	assert.Equal(t, "smtp.example.com", c.dialer.Host)
	assert.Equal(t, 587, c.dialer.Port)
	assert.False(t, c.dialer.SSL)
	assert.Equal(t, DefaultTimeout, c.dialer.Timeout)
	assert.False(t, c.dialer.RetryFailure)
	assert.Equal(t, "smtp.example.com", c.dialer.TLSConfig.ServerName)
}

func TestBuildMessage_Alternative(t *testing.T) {
	t.Parallel()

	raw := render(t, newTestClient(t), email.SendEmailParams{
		SendTo:     "a@b.com",
		SendToName: "A",
		Subject:    "Hi",
		BodyHTML:   "<p>Hello</p>",
		BodyText:   "Hello",
	})

	assert.Contains(t, raw, "Example Sender")
	assert.Contains(t, raw, "<noreply@example.org>")
	assert.Contains(t, raw, "<a@b.com>")
	assert.Contains(t, raw, "Subject: Hi\r\n")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "text/plain; charset=UTF-8")
	assert.Contains(t, raw, "text/html; charset=UTF-8")
	assert.Contains(t, raw, "<p>Hello</p>")
	assert.Less(t, bytes.Index([]byte(raw), []byte("text/plain")), bytes.Index([]byte(raw), []byte("text/html")),
		"plain text part must come first so HTML is preferred")
	assert.Regexp(t, regexp.MustCompile(`Message-ID: <[0-9a-f-]{36}@example\.org>`), raw)
}

func TestBuildMessage_HTMLOnly(t *testing.T) {
	t.Parallel()

	raw := render(t, newTestClient(t), email.SendEmailParams{
		SendTo:   "a@b.com",
		Subject:  "Hi",
		BodyHTML: "<p>Hello</p>",
	})

	assert.NotContains(t, raw, "multipart/alternative")
	assert.NotContains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html; charset=UTF-8")
}

func TestBuildMessage_UTF8Subject(t *testing.T) {
	t.Parallel()

	raw := render(t, newTestClient(t), email.SendEmailParams{
		SendTo:   "a@b.com",
		Subject:  "Привет",
		BodyHTML: "<p>Привет</p>",
	})

	assert.Contains(t, raw, "Subject: =?UTF-8?")
	assert.NotContains(t, raw, "Subject: Привет")
}

func TestBuildMessage_NormalizedHeaders(t *testing.T) {
	t.Parallel()

	params := email.SendEmailParams{
		SendTo:     " a@b.com ",
		SendToName: "A\r\nBcc: x@y.z",
		Subject:    "Hi\r\nBcc: x@y.z",
		BodyHTML:   "<p>Hello</p>",
	}.Normalize()
	require.NoError(t, params.Validate())

	raw := render(t, newTestClient(t), params)

	assert.Contains(t, raw, "Subject: HiBcc: x@y.z\r\n")
	assert.Contains(t, raw, "<a@b.com>")
	assert.NotContains(t, raw, "\r\nBcc:")
}
