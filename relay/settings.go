package relay

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/dmitrymomot/mailrelay/core/config"
	"github.com/dmitrymomot/mailrelay/integration/email/smtp"
)

// RequiredKeys are checked in this order; the first missing or empty one is reported.
var RequiredKeys = []string{
	"MAIL_HOST",
	"MAIL_PORT",
	"MAIL_USERNAME",
	"MAIL_PASSWORD",
	"MAIL_FROM_ADDRESS",
	"MAIL_FROM_NAME",
}

// Settings reads the mail settings file. A successful load is kept for the
// lifetime of the loader; a failed one is retried on the next call, so a
// broken file can be fixed without a restart.
type Settings struct {
	path string

	mu     sync.RWMutex
	loaded *smtp.Config
}

// NewSettings returns a loader for the settings file at path.
func NewSettings(path string) *Settings {
	return &Settings{path: path}
}

// Path returns the settings file location.
func (s *Settings) Path() string {
	return s.path
}

// Load returns the validated SMTP configuration or a *Error of kind
// ErrConfigurationMissing / ErrConfigurationInvalid.
func (s *Settings) Load() (smtp.Config, error) {
	s.mu.RLock()
	if s.loaded != nil {
		cfg := *s.loaded
		s.mu.RUnlock()
		return cfg, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded != nil {
		return *s.loaded, nil
	}

	cfg, err := s.read()
	if err != nil {
		return smtp.Config{}, err
	}

	s.loaded = &cfg
	return cfg, nil
}

// Check is a readiness check: it fails until the settings load.
func (s *Settings) Check(context.Context) error {
	_, err := s.Load()
	return err
}

func (s *Settings) read() (smtp.Config, error) {
	values, err := config.ReadFile(s.path)
	if err != nil {
		return smtp.Config{}, configurationMissing(filepath.Base(s.path), err)
	}

	if err := config.Require(present(values), RequiredKeys...); err != nil {
		var mk *config.MissingKeyError
		if errors.As(err, &mk) {
			return smtp.Config{}, missingEnvKey(mk.Key, err)
		}
		return smtp.Config{}, invalidEnvKey("", err)
	}

	cfg, err := config.Decode[smtp.Config](values)
	if err != nil {
		var iv *config.InvalidValueError
		if errors.As(err, &iv) {
			return smtp.Config{}, invalidEnvKey(iv.Key, err)
		}
		return smtp.Config{}, invalidEnvKey("", err)
	}
	cfg.Timeout = smtp.DefaultTimeout

	return cfg, nil
}

// present drops values that count as unset. "0" is treated like an empty
// value, the same rule request fields follow.
func present(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if v == "" || v == "0" {
			continue
		}
		out[k] = v
	}
	return out
}
