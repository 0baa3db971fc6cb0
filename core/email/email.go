package email

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// EmailSender delivers a single message. Implementations must be safe for
// concurrent use.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams describes one outbound message to one recipient.
type SendEmailParams struct {
	SendTo     string // recipient address
	SendToName string // optional recipient display name
	Subject    string
	BodyHTML   string
	BodyText   string // plain-text alternative, optional
}

// Normalize returns a copy cleaned up for delivery: the recipient address is
// trimmed, and line breaks are removed from the recipient name and subject,
// which are then trimmed.
func (p SendEmailParams) Normalize() SendEmailParams {
	p.SendTo = strings.TrimSpace(p.SendTo)
	p.SendToName = strings.TrimSpace(lineBreaks.Replace(p.SendToName))
	p.Subject = strings.TrimSpace(lineBreaks.Replace(p.Subject))
	return p
}

var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

// Validate checks that the message can be delivered. Senders call it on
// normalized params. Errors wrap ErrInvalidParams.
func (p SendEmailParams) Validate() error {
	var errs []error

	if p.SendTo == "" {
		errs = append(errs, errors.New("recipient is required"))
	} else if !IsValidAddress(p.SendTo) {
		errs = append(errs, fmt.Errorf("recipient %q is not a valid email address", p.SendTo))
	}
	if strings.ContainsAny(p.SendToName, "\r\n") {
		errs = append(errs, errors.New("recipient name must not contain line breaks"))
	}
	if strings.ContainsAny(p.Subject, "\r\n") {
		errs = append(errs, errors.New("subject must not contain line breaks"))
	}
	if p.BodyHTML == "" {
		errs = append(errs, errors.New("HTML body is required"))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidParams}, errs...)...)
	}
	return nil
}

// IsValidAddress reports whether s is a bare RFC 5322 address (no display name).
func IsValidAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(addr.Address, "@")
}
