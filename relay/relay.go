package relay

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/mailrelay/core/email"
	"github.com/dmitrymomot/mailrelay/core/logger"
	"github.com/dmitrymomot/mailrelay/integration/email/smtp"
)

// DefaultMaxBodyBytes limits the request body read by the relay.
const DefaultMaxBodyBytes int64 = 1 << 20

// SenderFactory builds a sender for the loaded settings. It is called once per request.
type SenderFactory func(cfg smtp.Config) (email.EmailSender, error)

// SMTPSender is the default SenderFactory.
func SMTPSender(cfg smtp.Config) (email.EmailSender, error) {
	return smtp.New(cfg)
}

// Result is the JSON body of every relay response.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Relay turns a send request into one SMTP message.
type Relay struct {
	settings     *Settings
	newSender    SenderFactory
	logger       *slog.Logger
	maxBodyBytes int64
}

// Option configures a Relay.
type Option func(*Relay)

// WithLogger sets the logger used for dispatch failures.
func WithLogger(l *slog.Logger) Option {
	return func(rl *Relay) {
		if l != nil {
			rl.logger = l
		}
	}
}

// WithSenderFactory replaces the SMTP sender.
func WithSenderFactory(f SenderFactory) Option {
	return func(rl *Relay) {
		if f != nil {
			rl.newSender = f
		}
	}
}

// WithMaxBodyBytes limits the request body size. Larger bodies are rejected
// as invalid JSON.
func WithMaxBodyBytes(n int64) Option {
	return func(rl *Relay) {
		if n > 0 {
			rl.maxBodyBytes = n
		}
	}
}

// New creates a relay reading its SMTP settings from settings.
func New(settings *Settings, opts ...Option) *Relay {
	rl := &Relay{
		settings:     settings,
		newSender:    SMTPSender,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// Serve processes one request and returns the status and body to send.
// Checks run in a fixed order: settings, method, body, fields, dispatch.
func (rl *Relay) Serve(w http.ResponseWriter, r *http.Request) (int, Result) {
	if err := rl.serve(w, r); err != nil {
		var re *Error
		if !errors.As(err, &re) {
			re = dispatchFailed(err)
		}
		return re.Status, Result{Success: false, Message: re.Message}
	}
	return http.StatusOK, Result{Success: true, Message: "Email sent"}
}

func (rl *Relay) serve(w http.ResponseWriter, r *http.Request) error {
	cfg, err := rl.settings.Load()
	if err != nil {
		return err
	}

	if r.Method != http.MethodPost {
		return methodNotAllowed()
	}

	var body io.Reader
	if r.Body != nil {
		body = http.MaxBytesReader(w, r.Body, rl.maxBodyBytes)
	}
	req, err := ParseRequest(body)
	if err != nil {
		return err
	}

	ctx := r.Context()
	log := rl.logger.With(logger.Component("relay"), logger.Action("send_email"))

	sender, err := rl.newSender(cfg)
	if err != nil {
		log.ErrorContext(ctx, "mail sender setup failed", logger.Error(err))
		return dispatchFailed(err)
	}

	if err := sender.SendEmail(ctx, req.Params()); err != nil {
		log.ErrorContext(ctx, "mail dispatch failed", logger.Error(err))
		return dispatchFailed(err)
	}

	log.InfoContext(ctx, "email sent", logger.Event("email.sent"))
	return nil
}
