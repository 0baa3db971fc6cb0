package email

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "emails")
	sender := NewDevSender(dir)
	sender.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC) }

	err := sender.SendEmail(context.Background(), SendEmailParams{
		SendTo:     "a@b.com",
		SendToName: "A",
		Subject:    "Hi there!",
		BodyHTML:   "<p>Hello</p>",
		BodyText:   "Hello",
	})
	require.NoError(t, err)

	base := filepath.Join(dir, "2026_01_02_030405_000000006_hi_there")

	html, err := os.ReadFile(base + ".html")
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello</p>", string(html))

	text, err := os.ReadFile(base + ".txt")
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(text))

	raw, err := os.ReadFile(base + ".json")
	require.NoError(t, err)

	var meta emailMetadata
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, emailMetadata{
		Timestamp:  "2026-01-02T03:04:05Z",
		SendTo:     "a@b.com",
		SendToName: "A",
		Subject:    "Hi there!",
	}, meta)
}

func TestDevSender_NormalizesParams(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	err := NewDevSender(dir).SendEmail(context.Background(), SendEmailParams{
		SendTo:     " a@b.com ",
		SendToName: "A\r\n",
		Subject:    "Hi\nthere",
		BodyHTML:   "   ",
	})
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	raw, err := os.ReadFile(files[0])
	require.NoError(t, err)

	var meta emailMetadata
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "a@b.com", meta.SendTo)
	assert.Equal(t, "A", meta.SendToName)
	assert.Equal(t, "Hithere", meta.Subject)
}

func TestDevSender_InvalidParams(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "emails")
	err := NewDevSender(dir).SendEmail(context.Background(), SendEmailParams{SendTo: "a@b.com"})

	assert.ErrorIs(t, err, ErrInvalidParams)
	assert.NoDirExists(t, dir)
}

func TestDevSender_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewDevSender(t.TempDir()).SendEmail(ctx, SendEmailParams{
		SendTo: "a@b.com", Subject: "s", BodyHTML: "<p>x</p>",
	})

	assert.ErrorIs(t, err, ErrFailedToSendEmail)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello_world", sanitizeFilename("Hello World"))
	assert.Equal(t, "email", sanitizeFilename("!!!"))
	assert.Len(t, sanitizeFilename(strings.Repeat("a", 300)), 100)
}
