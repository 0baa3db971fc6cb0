package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender implements EmailSender for local development.
// It saves each message as HTML, text and JSON files in a directory
// instead of delivering it.
type DevSender struct {
	dir string
	now func() time.Time
}

// NewDevSender creates a development email sender that saves emails to disk.
// The directory is created on first send.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir, now: time.Now}
}

// emailMetadata is the JSON sidecar written next to the bodies.
type emailMetadata struct {
	Timestamp  string `json:"timestamp"`
	SendTo     string `json:"send_to"`
	SendToName string `json:"send_to_name,omitempty"`
	Subject    string `json:"subject"`
}

// SendEmail writes <timestamp>_<subject>.{html,txt,json} to the directory.
func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToSendEmail, err)
	}
	params = params.Normalize()
	if err := params.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %w", ErrFailedToSendEmail, err)
	}

	now := d.now()
	// Nanoseconds keep files from the same second apart.
	base := fmt.Sprintf("%s_%09d_%s", now.Format("2006_01_02_150405"), now.Nanosecond(), sanitizeFilename(params.Subject))

	files := map[string][]byte{
		".html": []byte(params.BodyHTML),
		".txt":  []byte(params.BodyText),
	}

	meta, err := json.MarshalIndent(emailMetadata{
		Timestamp:  now.Format(time.RFC3339),
		SendTo:     params.SendTo,
		SendToName: params.SendToName,
		Subject:    params.Subject,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %w", ErrFailedToSendEmail, err)
	}
	files[".json"] = meta

	for ext, data := range files {
		if err := os.WriteFile(filepath.Join(d.dir, base+ext), data, 0o644); err != nil {
			return fmt.Errorf("%w: failed to write %s file: %w", ErrFailedToSendEmail, ext, err)
		}
	}

	return nil
}

var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a string into a safe, lowercase filename fragment.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}

	return strings.ToLower(s)
}
