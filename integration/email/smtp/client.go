package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/mail.v2"

	"github.com/dmitrymomot/mailrelay/core/email"
)

// Client implements email.EmailSender over SMTP with mandatory STARTTLS.
// Each SendEmail dials a fresh connection; the client is safe for concurrent use.
type Client struct {
	config Config
	dialer *mail.Dialer
}

// New creates an SMTP-backed email sender.
// Host, port, credentials and a valid sender address are required.
func New(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: Host is required", email.ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: Port must be between 1 and 65535", email.ErrInvalidConfig)
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("%w: Username is required", email.ErrInvalidConfig)
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("%w: Password is required", email.ErrInvalidConfig)
	}
	if !email.IsValidAddress(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", email.ErrInvalidConfig)
	}
	if strings.ContainsAny(cfg.SenderName, "\r\n") {
		return nil, fmt.Errorf("%w: SenderName must not contain line breaks", email.ErrInvalidConfig)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	// Always start in plain text and upgrade, whatever the port.
	d.SSL = false
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
	d.Timeout = cfg.Timeout
	d.RetryFailure = false

	return &Client{
		config: cfg,
		dialer: d,
	}, nil
}

// MustNewClient creates an SMTP client that panics on invalid config.
func MustNewClient(cfg Config) *Client {
	client, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail normalizes and validates params, builds the MIME message and delivers it in a
// single SMTP session. The context is only checked before dialing; the
// session itself is bounded by Config.Timeout.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}

	params = params.Normalize()
	if err := params.Validate(); err != nil {
		return err
	}

	if err := c.dialer.DialAndSend(c.buildMessage(params)); err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}

	return nil
}

// buildMessage creates a UTF-8 message. With a text body it is
// multipart/alternative (text/plain first, text/html preferred), otherwise
// a single text/html part.
func (c *Client) buildMessage(params email.SendEmailParams) *mail.Message {
	m := mail.NewMessage(
		mail.SetCharset("UTF-8"),
		mail.SetEncoding(mail.QuotedPrintable),
	)

	m.SetAddressHeader("From", c.config.SenderEmail, c.config.SenderName)
	m.SetAddressHeader("To", params.SendTo, params.SendToName)
	m.SetHeader("Subject", params.Subject)
	m.SetHeader("Message-ID", c.messageID())

	if params.BodyText != "" {
		m.SetBody("text/plain", params.BodyText)
		m.AddAlternative("text/html", params.BodyHTML)
	} else {
		m.SetBody("text/html", params.BodyHTML)
	}

	return m
}

// messageID returns <uuid@sender-domain>.
func (c *Client) messageID() string {
	domain := c.config.Host
	if _, d, ok := strings.Cut(c.config.SenderEmail, "@"); ok && d != "" {
		domain = d
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
