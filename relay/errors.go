package relay

import (
	"errors"
	"net/http"
)

// Error kinds. Every *Error matches exactly one of them with errors.Is.
var (
	ErrConfigurationMissing = errors.New("configuration missing")
	ErrConfigurationInvalid = errors.New("configuration invalid")
	ErrMethodNotAllowed     = errors.New("method not allowed")
	ErrMalformedBody        = errors.New("malformed body")
	ErrValidationFailed     = errors.New("validation failed")
	ErrDispatchFailed       = errors.New("dispatch failed")
)

// Error is a terminal request failure. Message is returned to the caller
// as is; Err carries the underlying cause and is never exposed.
type Error struct {
	Kind    error
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// StatusCode reports the HTTP status for the failure.
func (e *Error) StatusCode() int {
	return e.Status
}

// Is matches the error kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func configurationMissing(file string, err error) *Error {
	return &Error{Kind: ErrConfigurationMissing, Status: http.StatusInternalServerError, Message: file + " file not found", Err: err}
}

func missingEnvKey(key string, err error) *Error {
	return &Error{Kind: ErrConfigurationInvalid, Status: http.StatusInternalServerError, Message: "Missing env key: " + key, Err: err}
}

func invalidEnvKey(key string, err error) *Error {
	msg := "Invalid env configuration"
	if key != "" {
		msg = "Invalid env key: " + key
	}
	return &Error{Kind: ErrConfigurationInvalid, Status: http.StatusInternalServerError, Message: msg, Err: err}
}

func methodNotAllowed() *Error {
	return &Error{Kind: ErrMethodNotAllowed, Status: http.StatusMethodNotAllowed, Message: "Method not allowed"}
}

func malformedBody(err error) *Error {
	return &Error{Kind: ErrMalformedBody, Status: http.StatusBadRequest, Message: "Invalid JSON body", Err: err}
}

func missingField(field string) *Error {
	return &Error{Kind: ErrValidationFailed, Status: http.StatusUnprocessableEntity, Message: "Missing field: " + field}
}

func invalidField(field string) *Error {
	return &Error{Kind: ErrValidationFailed, Status: http.StatusUnprocessableEntity, Message: "Invalid field: " + field}
}

func dispatchFailed(err error) *Error {
	return &Error{Kind: ErrDispatchFailed, Status: http.StatusInternalServerError, Message: "Email sending failed", Err: err}
}
